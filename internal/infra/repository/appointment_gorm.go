package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain"
	domainAppointment "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Appointment (create / read)
// --------------------------------------------------

func (r *AppointmentGormRepository) Create(
	ctx context.Context,
	ap *models.Appointment,
) error {
	if ap.Version == 0 {
		ap.Version = 1
	}
	return translate(r.db.WithContext(ctx).Create(ap).Error)
}

func (r *AppointmentGormRepository) GetByID(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).First(&ap, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListByUser(
	ctx context.Context,
	userID string,
) ([]models.Appointment, error) {
	return r.list(ctx, "user_id = ?", userID)
}

func (r *AppointmentGormRepository) ListBySalon(
	ctx context.Context,
	salonID string,
) ([]models.Appointment, error) {
	return r.list(ctx, "salon_id = ?", salonID)
}

func (r *AppointmentGormRepository) list(
	ctx context.Context,
	where string,
	arg string,
) ([]models.Appointment, error) {

	apps := []models.Appointment{}
	if err := r.db.WithContext(ctx).
		Where(where, arg).
		Order("date ASC").
		Order("start_time ASC").
		Find(&apps).Error; err != nil {
		return nil, translate(err)
	}
	return apps, nil
}

// --------------------------------------------------
// Appointment (conflict)
// --------------------------------------------------

func (r *AppointmentGormRepository) CountOverlapping(
	ctx context.Context,
	salonID string,
	date time.Time,
	start string,
	end string,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"salon_id = ? AND date = ? AND status IN ? AND start_time < ? AND end_time > ?",
			salonID,
			date,
			domainAppointment.ActiveStatuses(),
			end,
			start,
		).
		Count(&count).Error; err != nil {
		return 0, translate(err)
	}

	return count, nil
}

// --------------------------------------------------
// Appointment (state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) UpdateStatus(
	ctx context.Context,
	ap *models.Appointment,
) error {

	now := time.Now().UTC()
	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND version = ?", ap.ID, ap.Version).
		Updates(map[string]any{
			"status":       ap.Status,
			"cancelled_at": ap.CancelledAt,
			"completed_at": ap.CompletedAt,
			"version":      gorm.Expr("version + 1"),
			"updated_at":   now,
		})
	if res.Error != nil {
		return translate(res.Error)
	}

	if res.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&models.Appointment{}).
			Where("id = ?", ap.ID).
			Count(&count).Error; err != nil {
			return translate(err)
		}
		if count == 0 {
			return domain.ErrNotFound
		}
		return domain.ErrStaleVersion
	}

	ap.Version++
	ap.UpdatedAt = now
	return nil
}

// Compile-time check
var _ domainAppointment.Repository = (*AppointmentGormRepository)(nil)
