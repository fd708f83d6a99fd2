package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/salon"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type SalonGormRepository struct {
	db *gorm.DB
}

func NewSalonGormRepository(db *gorm.DB) *SalonGormRepository {
	return &SalonGormRepository{db: db}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (r *SalonGormRepository) filtered(ctx context.Context, keyword string) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Salon{})
	if keyword != "" {
		q = q.Where("name ILIKE ?", "%"+likeEscaper.Replace(keyword)+"%")
	}
	return q
}

func (r *SalonGormRepository) List(ctx context.Context, q salon.Query) ([]models.Salon, int64, error) {
	var total int64
	if err := r.filtered(ctx, q.Keyword).Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	var salons []models.Salon
	if err := r.filtered(ctx, q.Keyword).
		Order("created_at ASC").
		Limit(q.Limit).
		Offset(q.Offset).
		Find(&salons).Error; err != nil {
		return nil, 0, translate(err)
	}

	return salons, total, nil
}

func (r *SalonGormRepository) GetByID(ctx context.Context, id string) (*models.Salon, error) {
	var s models.Salon
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *SalonGormRepository) GetByIDs(ctx context.Context, ids []string) (map[string]models.Salon, error) {
	out := make(map[string]models.Salon, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var salons []models.Salon
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&salons).Error; err != nil {
		return nil, translate(err)
	}
	for _, s := range salons {
		out[s.ID] = s
	}
	return out, nil
}

func (r *SalonGormRepository) Create(ctx context.Context, s *models.Salon) error {
	return translate(r.db.WithContext(ctx).Create(s).Error)
}

func (r *SalonGormRepository) Update(ctx context.Context, s *models.Salon) error {
	return translate(r.db.WithContext(ctx).Save(s).Error)
}

func (r *SalonGormRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Salon{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Compile-time check
var _ salon.Repository = (*SalonGormRepository)(nil)
