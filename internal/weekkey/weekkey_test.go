package weekkey

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestOf(t *testing.T) {
	cases := []struct {
		in   time.Time
		want string
	}{
		{date(2025, time.June, 16), "2025-W25"}, // Monday
		{date(2025, time.June, 22), "2025-W25"}, // Sunday of the same week
		{date(2025, time.June, 23), "2025-W26"},
		// ISO year boundaries: Jan 1st can belong to the previous ISO year
		// and late December to week 1 of the next.
		{date(2021, time.January, 1), "2020-W53"},
		{date(2024, time.December, 30), "2025-W01"},
		{date(2026, time.January, 4), "2026-W01"},
	}
	for _, c := range cases {
		if got := Of(c.in); got != c.want {
			t.Errorf("Of(%s) = %q, want %q", c.in.Format("2006-01-02"), got, c.want)
		}
	}
}

func TestOfSameKeyAcrossWholeWeek(t *testing.T) {
	monday := date(2025, time.June, 16)
	for i := 0; i < 7; i++ {
		if got := Of(monday.AddDate(0, 0, i)); got != "2025-W25" {
			t.Fatalf("day %d of week: got %q, want 2025-W25", i, got)
		}
	}
}

func TestParse(t *testing.T) {
	y, w, err := Parse("2025-W05")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if y != 2025 || w != 5 {
		t.Errorf("Parse = (%d, %d), want (2025, 5)", y, w)
	}

	for _, bad := range []string{"", "2025-W5", "2025W05", "25-W05", "2025-W00", "2025-W54", "2025-w05"} {
		if _, _, err := Parse(bad); err == nil {
			t.Errorf("Parse(%q): expected error", bad)
		}
	}
}

func TestIsValid(t *testing.T) {
	if !IsValid("2025-W25") {
		t.Error("expected 2025-W25 to be valid")
	}
	if IsValid("2025-25") {
		t.Error("expected 2025-25 to be invalid")
	}
}

func TestCompare(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"2025-W25", "2025-W25", 0},
		{"2025-W25", "2025-W30", -1},
		{"2025-W52", "2026-W01", -1},
		{"2026-W01", "2025-W52", 1},
	}
	for _, c := range cases {
		got, err := Compare(c.a, c.b)
		if err != nil {
			t.Fatalf("Compare(%q, %q): %v", c.a, c.b, err)
		}
		if got != c.want {
			t.Errorf("Compare(%q, %q) = %d, want %d", c.a, c.b, got, c.want)
		}
	}

	if _, err := Compare("2025-W25", "garbage"); err == nil {
		t.Error("expected error for malformed key")
	}
}
