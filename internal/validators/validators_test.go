package validators

import "testing"

func TestIsClock(t *testing.T) {
	valid := []string{"00:00", "09:30", "23:59"}
	invalid := []string{"", "9:30", "24:00", "12:60", "12-30", "12:30:00", "ab:cd"}

	for _, s := range valid {
		if !IsClock(s) {
			t.Errorf("%q should be a valid clock time", s)
		}
	}
	for _, s := range invalid {
		if IsClock(s) {
			t.Errorf("%q should be rejected", s)
		}
	}
}

func TestIsWeekday(t *testing.T) {
	if !IsWeekday("Monday") || !IsWeekday("Sunday") {
		t.Error("expected full English day names to be valid")
	}
	if IsWeekday("monday") || IsWeekday("Mon") {
		t.Error("day names are case-sensitive and unabbreviated")
	}
}

func TestIsEmailDomainValidRejectsMalformed(t *testing.T) {
	for _, email := range []string{"no-at-sign", "trailing@"} {
		if IsEmailDomainValid(email) {
			t.Errorf("%q should be rejected", email)
		}
	}
}
