package appointment

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain"
	domainAppointment "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type UpdateAppointmentStatus struct {
	repo     domainAppointment.Repository
	audit    *audit.Dispatcher
	metrics  *metrics.Metrics
	timezone string
}

func NewUpdateAppointmentStatus(
	repo domainAppointment.Repository,
	audit *audit.Dispatcher,
	metrics *metrics.Metrics,
	tz string,
) *UpdateAppointmentStatus {
	return &UpdateAppointmentStatus{
		repo:     repo,
		audit:    audit,
		metrics:  metrics,
		timezone: tz,
	}
}

// Execute sets any of the four statuses regardless of the current one. The
// write is rejected with a conflict if the appointment changed since it was
// read.
func (uc *UpdateAppointmentStatus) Execute(
	ctx context.Context,
	actorID string,
	id string,
	status string,
) (*models.Appointment, error) {

	next, ok := domainAppointment.ParseStatus(status)
	if !ok {
		return nil, ErrInvalidStatus
	}
	if !domain.ValidID(id) {
		return nil, ErrInvalidAppointmentID
	}

	ap, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, ErrAppointmentNotFound)
	}

	previous := ap.Status
	domainAppointment.SetStatus(ap, next, timezone.NowIn(uc.timezone))

	if err := uc.repo.UpdateStatus(ctx, ap); err != nil {
		return nil, storeErr(err, ErrAppointmentNotFound)
	}

	uc.metrics.StatusChanged(ap.Status)
	uc.audit.Dispatch(audit.Event{
		ActorID:  actorID,
		Action:   "appointment_status_changed",
		Entity:   "appointment",
		EntityID: ap.ID,
		Metadata: map[string]any{"from": previous, "to": ap.Status},
	})

	return ap, nil
}
