package appointment

import (
	"fmt"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "Pending"
	StatusConfirmed Status = "Confirmed"
	StatusCancelled Status = "Cancelled"
	StatusCompleted Status = "Completed"
)

var validStatuses = []Status{
	StatusPending,
	StatusConfirmed,
	StatusCancelled,
	StatusCompleted,
}

// ParseStatus accepts only the four exact status names.
func ParseStatus(s string) (Status, bool) {
	for _, st := range validStatuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// IsTerminal reports whether no further transition leaves this status.
func (s Status) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// IsActive reports whether the appointment still holds its time slot.
func (s Status) IsActive() bool {
	return s == StatusPending || s == StatusConfirmed
}

// ActiveStatuses lists the statuses that hold a slot, for store queries.
func ActiveStatuses() []string {
	return []string{string(StatusPending), string(StatusConfirmed)}
}

// ===============================
// Validations
// ===============================

// CanCancel defines whether an appointment in the current status can be cancelled.
func CanCancel(current Status) error {
	if current.IsTerminal() {
		return httperr.InvalidInput(
			"invalid_state",
			fmt.Sprintf("Cannot cancel appointment with status: %s", current),
		)
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
