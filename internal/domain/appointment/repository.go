package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Repository interface {
	Create(
		ctx context.Context,
		ap *models.Appointment,
	) error

	GetByID(
		ctx context.Context,
		id string,
	) (*models.Appointment, error)

	// ListByUser and ListBySalon return appointments ordered by date, then start time.
	ListByUser(
		ctx context.Context,
		userID string,
	) ([]models.Appointment, error)

	ListBySalon(
		ctx context.Context,
		salonID string,
	) ([]models.Appointment, error)

	// CountOverlapping counts Pending/Confirmed appointments of the salon on
	// date whose window intersects [start, end).
	CountOverlapping(
		ctx context.Context,
		salonID string,
		date time.Time,
		start string,
		end string,
	) (int64, error)

	// UpdateStatus persists status fields only if the stored version still
	// equals ap.Version, then bumps ap.Version. Returns domain.ErrStaleVersion
	// when another writer got there first.
	UpdateStatus(
		ctx context.Context,
		ap *models.Appointment,
	) error
}
