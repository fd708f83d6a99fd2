package appointment

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain"
	domainAppointment "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	domainSalon "github.com/BruksfildServices01/salon-scheduler/internal/domain/salon"
	domainUser "github.com/BruksfildServices01/salon-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type GetAppointment struct {
	appointments domainAppointment.Repository
	salons       domainSalon.Repository
	users        domainUser.Repository
}

func NewGetAppointment(
	appointments domainAppointment.Repository,
	salons domainSalon.Repository,
	users domainUser.Repository,
) *GetAppointment {
	return &GetAppointment{appointments: appointments, salons: salons, users: users}
}

// Execute returns the appointment with salon and user details. Only the
// booking user or an admin may read it.
func (uc *GetAppointment) Execute(
	ctx context.Context,
	actor *models.User,
	id string,
) (*dto.AppointmentDTO, error) {

	if !domain.ValidID(id) {
		return nil, ErrInvalidAppointmentID
	}

	ap, err := uc.appointments.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, ErrAppointmentNotFound)
	}

	if !canAccess(actor, ap) {
		return nil, ErrNotAuthorized
	}

	view := dto.NewAppointmentDTO(*ap)

	salon, err := uc.salons.GetByID(ctx, ap.SalonID)
	switch {
	case err == nil:
		view.Salon = dto.SalonDetail(*salon)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, httperr.Internal("salon_store_error", err)
	}

	user, err := uc.users.GetByID(ctx, ap.UserID)
	switch {
	case err == nil:
		view.User = dto.UserContact(*user)
	case !errors.Is(err, domain.ErrNotFound):
		return nil, httperr.Internal("user_store_error", err)
	}

	return &view, nil
}
