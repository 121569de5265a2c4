package service

import (
	"errors"
	"testing"
)

func TestMonthBounds(t *testing.T) {
	cases := []struct {
		month    string
		from, to string
	}{
		{"2026-08", "2026-08-01", "2026-09-01"},
		{"2026-12", "2026-12-01", "2027-01-01"},
		{"2024-02", "2024-02-01", "2024-03-01"},
	}
	for _, c := range cases {
		from, to, err := monthBounds(c.month)
		if err != nil {
			t.Errorf("monthBounds(%s): %v", c.month, err)
			continue
		}
		if from != c.from || to != c.to {
			t.Errorf("monthBounds(%s) = (%s, %s), want (%s, %s)",
				c.month, from, to, c.from, c.to)
		}
	}
}

func TestMonthBoundsInvalid(t *testing.T) {
	for _, month := range []string{"", "2026", "2026-13", "08-2026", "2026-08-01"} {
		if _, _, err := monthBounds(month); !errors.Is(err, ErrInvalidMonth) {
			t.Errorf("monthBounds(%q): expected ErrInvalidMonth, got %v", month, err)
		}
	}
}
