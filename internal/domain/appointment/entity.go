package appointment

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

// SetStatus applies an administrative status change. Any of the four statuses
// is accepted from any current status.
func SetStatus(ap *models.Appointment, next Status, now time.Time) {
	ap.Status = string(next)

	switch next {
	case StatusCancelled:
		ap.CancelledAt = &now
		ap.CompletedAt = nil
	case StatusCompleted:
		ap.CompletedAt = &now
		ap.CancelledAt = nil
	default:
		ap.CancelledAt = nil
		ap.CompletedAt = nil
	}
}

// Overlaps reports whether two HH:MM windows on the same day intersect.
func Overlaps(startA, endA, startB, endB string) bool {
	return startA < endB && endA > startB
}
