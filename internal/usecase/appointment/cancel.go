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

type CancelAppointment struct {
	repo     domainAppointment.Repository
	audit    *audit.Dispatcher
	metrics  *metrics.Metrics
	timezone string
}

func NewCancelAppointment(
	repo domainAppointment.Repository,
	audit *audit.Dispatcher,
	metrics *metrics.Metrics,
	tz string,
) *CancelAppointment {
	return &CancelAppointment{
		repo:     repo,
		audit:    audit,
		metrics:  metrics,
		timezone: tz,
	}
}

func (uc *CancelAppointment) Execute(
	ctx context.Context,
	actor *models.User,
	id string,
) (*models.Appointment, error) {

	if !domain.ValidID(id) {
		return nil, ErrInvalidAppointmentID
	}

	ap, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, ErrAppointmentNotFound)
	}

	if !canAccess(actor, ap) {
		return nil, ErrNotAuthorized
	}

	if err := domainAppointment.Cancel(ap, timezone.NowIn(uc.timezone)); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateStatus(ctx, ap); err != nil {
		return nil, storeErr(err, ErrAppointmentNotFound)
	}

	uc.metrics.StatusChanged(ap.Status)
	uc.audit.Dispatch(audit.Event{
		ActorID:  actor.ID,
		Action:   "appointment_cancelled",
		Entity:   "appointment",
		EntityID: ap.ID,
	})

	return ap, nil
}
