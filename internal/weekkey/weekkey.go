// Package weekkey implements the canonical calendar-week identifier used to
// group teaching schedules. Keys follow the YYYY-Wnn format based on ISO 8601
// week numbering (weeks start on Monday; week 1 contains the first Thursday
// of the year).
package weekkey

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

var keyPattern = regexp.MustCompile(`^(\d{4})-W(\d{2})$`)

// Of returns the week key of the calendar week containing t.
func Of(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// Current returns the week key of the current week.
func Current() string {
	return Of(time.Now())
}

// Next returns the week key of the week after the current one.
func Next() string {
	return Of(time.Now().AddDate(0, 0, 7))
}

// Parse splits a week key into its ISO year and week components.
func Parse(key string) (year, week int, err error) {
	m := keyPattern.FindStringSubmatch(key)
	if m == nil {
		return 0, 0, fmt.Errorf("invalid week key %q", key)
	}
	year, _ = strconv.Atoi(m[1])
	week, _ = strconv.Atoi(m[2])
	if week < 1 || week > 53 {
		return 0, 0, fmt.Errorf("invalid week key %q: week out of range", key)
	}
	return year, week, nil
}

// IsValid reports whether key is a well-formed week key.
func IsValid(key string) bool {
	_, _, err := Parse(key)
	return err == nil
}

// Compare orders two well-formed week keys chronologically, returning -1, 0
// or 1. Canonical zero-padded keys also sort correctly as plain strings, but
// Compare is the sanctioned way to order keys in code: it parses both sides
// and therefore cannot be fooled by malformed input.
func Compare(a, b string) (int, error) {
	ay, aw, err := Parse(a)
	if err != nil {
		return 0, err
	}
	by, bw, err := Parse(b)
	if err != nil {
		return 0, err
	}
	switch {
	case ay != by:
		if ay < by {
			return -1, nil
		}
		return 1, nil
	case aw != bw:
		if aw < bw {
			return -1, nil
		}
		return 1, nil
	}
	return 0, nil
}
