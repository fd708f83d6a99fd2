package appointment

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain"
	domainAppointment "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	domainSalon "github.com/BruksfildServices01/salon-scheduler/internal/domain/salon"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	UserID    string
	SalonID   string
	ServiceID string
	Date      string
	StartTime string
	EndTime   string
	Notes     string
}

type CreateOptions struct {
	// ConflictCheck rejects a booking that overlaps a Pending or Confirmed
	// appointment of the same salon on the same day.
	ConflictCheck bool
	Timezone      string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	appointments domainAppointment.Repository
	salons       domainSalon.Repository
	audit        *audit.Dispatcher
	metrics      *metrics.Metrics
	opts         CreateOptions
}

func NewCreateAppointment(
	appointments domainAppointment.Repository,
	salons domainSalon.Repository,
	audit *audit.Dispatcher,
	metrics *metrics.Metrics,
	opts CreateOptions,
) *CreateAppointment {
	return &CreateAppointment{
		appointments: appointments,
		salons:       salons,
		audit:        audit,
		metrics:      metrics,
		opts:         opts,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Input
	// --------------------------------------------------
	if !domain.ValidID(in.SalonID) {
		return nil, ErrInvalidSalonID
	}

	date, err := timezone.ParseDate(in.Date, uc.opts.Timezone)
	if err != nil {
		return nil, ErrInvalidInput
	}

	if !validators.IsClock(in.StartTime) || !validators.IsClock(in.EndTime) {
		return nil, ErrInvalidInput
	}
	if in.EndTime <= in.StartTime {
		return nil, ErrInvalidTimeRange
	}

	// --------------------------------------------------
	// Salon + service
	// --------------------------------------------------
	salon, err := uc.salons.GetByID(ctx, in.SalonID)
	if err != nil {
		return nil, storeErr(err, ErrSalonNotFound)
	}

	service, ok := domainSalon.FindService(salon, in.ServiceID)
	if !ok {
		return nil, ErrServiceNotFound
	}

	// --------------------------------------------------
	// Overlap
	// --------------------------------------------------
	if uc.opts.ConflictCheck {
		n, err := uc.appointments.CountOverlapping(ctx, salon.ID, date, in.StartTime, in.EndTime)
		if err != nil {
			return nil, httperr.Internal("appointment_store_error", err)
		}
		if n > 0 {
			uc.audit.Dispatch(audit.Event{
				ActorID:  in.UserID,
				Action:   "appointment_conflict",
				Entity:   "salon",
				EntityID: salon.ID,
				Metadata: map[string]any{
					"date":  in.Date,
					"start": in.StartTime,
					"end":   in.EndTime,
				},
			})
			return nil, ErrTimeConflict
		}
	}

	// --------------------------------------------------
	// Create, price snapshotted from the service
	// --------------------------------------------------
	ap := &models.Appointment{
		ID:         domain.NewID(),
		UserID:     in.UserID,
		SalonID:    salon.ID,
		ServiceID:  service.ID,
		Date:       date,
		StartTime:  in.StartTime,
		EndTime:    in.EndTime,
		Status:     string(domainAppointment.InitialStatus()),
		Notes:      in.Notes,
		TotalPrice: service.Price,
		Version:    1,
	}

	if err := uc.appointments.Create(ctx, ap); err != nil {
		return nil, httperr.Internal("appointment_store_error", err)
	}

	uc.metrics.AppointmentCreated()
	uc.audit.Dispatch(audit.Event{
		ActorID:  in.UserID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: ap.ID,
		Metadata: map[string]any{"service": service.ID, "price": service.Price},
	})

	return ap, nil
}
