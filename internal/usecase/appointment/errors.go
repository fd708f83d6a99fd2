package appointment

import (
	"errors"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

var (
	ErrAppointmentNotFound = httperr.NotFound("appointment_not_found", "Appointment not found")
	ErrSalonNotFound       = httperr.NotFound("salon_not_found", "Salon not found")
	ErrServiceNotFound     = httperr.NotFound("service_not_found", "Service not found")
	ErrNotAuthorized       = httperr.Forbidden("not_authorized", "Not authorized")
	ErrInvalidStatus       = httperr.InvalidInput("invalid_status", "Invalid status value provided")
	ErrInvalidInput        = httperr.InvalidInput("invalid_input", "Invalid input data")
	ErrInvalidTimeRange    = httperr.InvalidInput("invalid_time_range", "End time must be after start time")
	ErrTimeConflict        = httperr.Conflict("time_conflict", "Time slot is already booked")
	ErrConcurrentUpdate    = httperr.Conflict("stale_version", "Appointment was modified by another request, reload and retry")

	ErrInvalidAppointmentID = httperr.InvalidInput("invalid_id", "Invalid Appointment ID format")
	ErrInvalidSalonID       = httperr.InvalidInput("invalid_id", "Invalid Salon ID format")
)

// storeErr maps repository errors; notFound is returned for domain.ErrNotFound.
func storeErr(err error, notFound error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return notFound
	case errors.Is(err, domain.ErrStaleVersion):
		return ErrConcurrentUpdate
	default:
		return httperr.Internal("appointment_store_error", err)
	}
}

// canAccess reports whether actor booked ap or is an admin.
func canAccess(actor *models.User, ap *models.Appointment) bool {
	return actor != nil && (actor.IsAdmin || ap.UserID == actor.ID)
}
