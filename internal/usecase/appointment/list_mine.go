package appointment

import (
	"context"

	domainAppointment "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	domainSalon "github.com/BruksfildServices01/salon-scheduler/internal/domain/salon"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

type ListMyAppointments struct {
	appointments domainAppointment.Repository
	salons       domainSalon.Repository
}

func NewListMyAppointments(
	appointments domainAppointment.Repository,
	salons domainSalon.Repository,
) *ListMyAppointments {
	return &ListMyAppointments{appointments: appointments, salons: salons}
}

func (uc *ListMyAppointments) Execute(ctx context.Context, userID string) ([]dto.AppointmentDTO, error) {
	apps, err := uc.appointments.ListByUser(ctx, userID)
	if err != nil {
		return nil, httperr.Internal("appointment_store_error", err)
	}
	return withSalons(ctx, uc.salons, apps)
}
