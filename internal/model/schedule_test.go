package model

import "testing"

func TestTimesOverlap(t *testing.T) {
	cases := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{"contained", "08:00", "10:00", "08:30", "09:30", true},
		{"partial front", "08:00", "10:00", "07:00", "08:30", true},
		{"partial back", "08:00", "10:00", "09:30", "11:00", true},
		{"identical", "08:00", "10:00", "08:00", "10:00", true},
		{"back to back before", "08:00", "10:00", "06:00", "08:00", false},
		{"back to back after", "08:00", "10:00", "10:00", "12:00", false},
		{"disjoint", "08:00", "10:00", "14:00", "16:00", false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := TimesOverlap(c.aStart, c.aEnd, c.bStart, c.bEnd); got != c.want {
				t.Errorf("TimesOverlap(%s-%s, %s-%s) = %v, want %v",
					c.aStart, c.aEnd, c.bStart, c.bEnd, got, c.want)
			}
			// Overlap is symmetric.
			if got := TimesOverlap(c.bStart, c.bEnd, c.aStart, c.aEnd); got != c.want {
				t.Errorf("TimesOverlap not symmetric for %s", c.name)
			}
		})
	}
}

func TestScheduleScopeKey(t *testing.T) {
	s := &Schedule{ClassID: 3, TeacherID: 7}
	if got := s.ScopeKey(ConflictScopeTeacher); got != 7 {
		t.Errorf("teacher scope key = %d, want 7", got)
	}
	if got := s.ScopeKey(ConflictScopeClass); got != 3 {
		t.Errorf("class scope key = %d, want 3", got)
	}
}
