package salon

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Query struct {
	Keyword string
	Limit   int
	Offset  int
}

type Repository interface {
	// List returns one page of salons whose name contains Keyword
	// (case-insensitive) and the total number of matches.
	List(ctx context.Context, q Query) ([]models.Salon, int64, error)
	GetByID(ctx context.Context, id string) (*models.Salon, error)
	GetByIDs(ctx context.Context, ids []string) (map[string]models.Salon, error)
	Create(ctx context.Context, s *models.Salon) error
	Update(ctx context.Context, s *models.Salon) error
	Delete(ctx context.Context, id string) error
}
