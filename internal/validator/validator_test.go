package validator

import "testing"

func TestIsHHMM(t *testing.T) {
	valid := []string{"00:00", "08:30", "13:05", "23:59"}
	for _, v := range valid {
		if !IsHHMM(v) {
			t.Errorf("IsHHMM(%q) = false, want true", v)
		}
	}

	invalid := []string{"", "8:30", "24:00", "12:60", "12:5", "12-30", "12:30:00", "ab:cd"}
	for _, v := range invalid {
		if IsHHMM(v) {
			t.Errorf("IsHHMM(%q) = true, want false", v)
		}
	}
}
