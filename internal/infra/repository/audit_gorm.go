package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type AuditGormRepository struct {
	db *gorm.DB
}

func NewAuditGormRepository(db *gorm.DB) *AuditGormRepository {
	return &AuditGormRepository{db: db}
}

func (r *AuditGormRepository) CreateAuditLog(ctx context.Context, entry *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// NewGormStore wires every gorm repository on one connection.
func NewGormStore(db *gorm.DB) *Store {
	return &Store{
		Users:        NewUserGormRepository(db),
		Salons:       NewSalonGormRepository(db),
		Appointments: NewAppointmentGormRepository(db),
		Audit:        NewAuditGormRepository(db),
		Close: func(context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}
