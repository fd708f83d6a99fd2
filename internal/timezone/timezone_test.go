package timezone

import (
	"testing"
	"time"
)

func TestParseDatePlain(t *testing.T) {
	d, err := ParseDate("2026-05-01", "America/Sao_Paulo")
	if err != nil {
		t.Fatal(err)
	}
	if !d.Equal(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("unexpected date %v", d)
	}
}

func TestParseDateTimestampUsesZone(t *testing.T) {
	// 01:00 UTC on May 2nd is still May 1st in Sao Paulo.
	d, err := ParseDate("2026-05-02T01:00:00Z", "America/Sao_Paulo")
	if err != nil {
		t.Fatal(err)
	}
	if d.Day() != 1 || d.Location() != time.UTC {
		t.Errorf("unexpected date %v", d)
	}
}

func TestParseDateInvalid(t *testing.T) {
	if _, err := ParseDate("01/05/2026", "UTC"); err != ErrInvalidDate {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
}

func TestLocationFallback(t *testing.T) {
	if Location("Not/AZone") != time.UTC {
		t.Error("unknown zones fall back to UTC")
	}
}
