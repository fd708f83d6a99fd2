package appointment

import (
	"context"

	domainSalon "github.com/BruksfildServices01/salon-scheduler/internal/domain/salon"
	domainUser "github.com/BruksfildServices01/salon-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func uniqueIDs(apps []models.Appointment, id func(models.Appointment) string) []string {
	seen := make(map[string]bool, len(apps))
	out := make([]string, 0, len(apps))
	for _, ap := range apps {
		v := id(ap)
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}

// withSalons fills each appointment's salon with name and address. Salons
// that no longer exist are left as a bare id.
func withSalons(
	ctx context.Context,
	salons domainSalon.Repository,
	apps []models.Appointment,
) ([]dto.AppointmentDTO, error) {

	found, err := salons.GetByIDs(ctx, uniqueIDs(apps, func(ap models.Appointment) string { return ap.SalonID }))
	if err != nil {
		return nil, httperr.Internal("salon_store_error", err)
	}

	out := make([]dto.AppointmentDTO, 0, len(apps))
	for _, ap := range apps {
		view := dto.NewAppointmentDTO(ap)
		if s, ok := found[ap.SalonID]; ok {
			view.Salon = dto.SalonSummary(s)
		}
		out = append(out, view)
	}
	return out, nil
}

// withUsers fills each appointment's user with contact details.
func withUsers(
	ctx context.Context,
	users domainUser.Repository,
	apps []models.Appointment,
) ([]dto.AppointmentDTO, error) {

	found, err := users.GetByIDs(ctx, uniqueIDs(apps, func(ap models.Appointment) string { return ap.UserID }))
	if err != nil {
		return nil, httperr.Internal("user_store_error", err)
	}

	out := make([]dto.AppointmentDTO, 0, len(apps))
	for _, ap := range apps {
		view := dto.NewAppointmentDTO(ap)
		if u, ok := found[ap.UserID]; ok {
			view.User = dto.UserContact(u)
		}
		out = append(out, view)
	}
	return out, nil
}
