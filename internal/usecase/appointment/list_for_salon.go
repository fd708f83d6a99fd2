package appointment

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain"
	domainAppointment "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	domainSalon "github.com/BruksfildServices01/salon-scheduler/internal/domain/salon"
	domainUser "github.com/BruksfildServices01/salon-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ListSalonAppointments struct {
	appointments domainAppointment.Repository
	salons       domainSalon.Repository
	users        domainUser.Repository
}

func NewListSalonAppointments(
	appointments domainAppointment.Repository,
	salons domainSalon.Repository,
	users domainUser.Repository,
) *ListSalonAppointments {
	return &ListSalonAppointments{appointments: appointments, salons: salons, users: users}
}

func (uc *ListSalonAppointments) Execute(ctx context.Context, salonID string) ([]dto.AppointmentDTO, error) {
	_, apps, err := uc.load(ctx, salonID)
	if err != nil {
		return nil, err
	}
	return withUsers(ctx, uc.users, apps)
}

// load returns the salon and its appointments, failing when the salon is gone.
func (uc *ListSalonAppointments) load(ctx context.Context, salonID string) (*models.Salon, []models.Appointment, error) {
	if !domain.ValidID(salonID) {
		return nil, nil, ErrInvalidSalonID
	}

	salon, err := uc.salons.GetByID(ctx, salonID)
	if err != nil {
		return nil, nil, storeErr(err, ErrSalonNotFound)
	}

	apps, err := uc.appointments.ListBySalon(ctx, salonID)
	if err != nil {
		return nil, nil, httperr.Internal("appointment_store_error", err)
	}
	return salon, apps, nil
}
