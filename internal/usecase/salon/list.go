package salon

import (
	"context"

	domainSalon "github.com/BruksfildServices01/salon-scheduler/internal/domain/salon"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
)

type ListSalonsInput struct {
	Keyword string
	Page    int
}

type ListSalons struct {
	repo domainSalon.Repository
}

func NewListSalons(repo domainSalon.Repository) *ListSalons {
	return &ListSalons{repo: repo}
}

// Execute returns one page of salons. Pages are 1-based; anything below 1
// reads the first page.
func (uc *ListSalons) Execute(ctx context.Context, in ListSalonsInput) (*dto.SalonPageDTO, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}

	salons, total, err := uc.repo.List(ctx, domainSalon.Query{
		Keyword: in.Keyword,
		Limit:   domainSalon.PageSize,
		Offset:  (page - 1) * domainSalon.PageSize,
	})
	if err != nil {
		return nil, storeErr(err)
	}

	return &dto.SalonPageDTO{
		Salons: salons,
		Page:   page,
		Pages:  int((total + domainSalon.PageSize - 1) / domainSalon.PageSize),
	}, nil
}
