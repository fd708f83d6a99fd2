package appointment

import (
	"testing"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"Pending", "Confirmed", "Cancelled", "Completed"} {
		if _, ok := ParseStatus(s); !ok {
			t.Errorf("%s should parse", s)
		}
	}
	for _, s := range []string{"", "pending", "Done"} {
		if _, ok := ParseStatus(s); ok {
			t.Errorf("%q should not parse", s)
		}
	}
}

func TestCancel(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	for _, st := range []Status{StatusPending, StatusConfirmed} {
		ap := &models.Appointment{Status: string(st)}
		if err := Cancel(ap, now); err != nil {
			t.Fatalf("%s: unexpected error %v", st, err)
		}
		if ap.Status != string(StatusCancelled) || ap.CancelledAt == nil {
			t.Errorf("%s: not cancelled: %+v", st, ap)
		}
	}

	for _, st := range []Status{StatusCancelled, StatusCompleted} {
		ap := &models.Appointment{Status: string(st)}
		err := Cancel(ap, now)
		if httperr.KindOf(err) != httperr.KindInvalidInput {
			t.Fatalf("%s: expected invalid input, got %v", st, err)
		}
		if err.Error() != "Cannot cancel appointment with status: "+string(st) {
			t.Errorf("unexpected message %q", err.Error())
		}
		if ap.Status != string(st) {
			t.Errorf("status changed on failed cancel: %s", ap.Status)
		}
	}
}

func TestSetStatusAcceptsAnyValue(t *testing.T) {
	now := time.Now()
	ap := &models.Appointment{Status: string(StatusCompleted)}

	SetStatus(ap, StatusPending, now)

	if ap.Status != string(StatusPending) || ap.CompletedAt != nil {
		t.Errorf("unexpected appointment %+v", ap)
	}

	SetStatus(ap, StatusCompleted, now)
	if ap.CompletedAt == nil {
		t.Error("completedAt not stamped")
	}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		a1, a2, b1, b2 string
		want           bool
	}{
		{"10:00", "11:00", "10:30", "11:30", true},
		{"10:00", "11:00", "11:00", "12:00", false},
		{"10:00", "11:00", "09:00", "10:00", false},
		{"10:00", "11:00", "09:00", "12:00", true},
	}
	for _, c := range cases {
		if got := Overlaps(c.a1, c.a2, c.b1, c.b2); got != c.want {
			t.Errorf("Overlaps(%s-%s, %s-%s) = %v", c.a1, c.a2, c.b1, c.b2, got)
		}
	}
}

func TestStatusPredicates(t *testing.T) {
	if !StatusCancelled.IsTerminal() || !StatusCompleted.IsTerminal() || StatusPending.IsTerminal() {
		t.Error("terminal statuses wrong")
	}
	if !StatusConfirmed.IsActive() || StatusCancelled.IsActive() {
		t.Error("active statuses wrong")
	}
}
