package salon

import (
	"context"

	domainSalon "github.com/BruksfildServices01/salon-scheduler/internal/domain/salon"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type GetSalon struct {
	repo domainSalon.Repository
}

func NewGetSalon(repo domainSalon.Repository) *GetSalon {
	return &GetSalon{repo: repo}
}

func (uc *GetSalon) Execute(ctx context.Context, id string) (*models.Salon, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}

	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}
	return s, nil
}
