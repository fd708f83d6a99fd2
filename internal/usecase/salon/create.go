package salon

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain"
	domainSalon "github.com/BruksfildServices01/salon-scheduler/internal/domain/salon"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type CreateSalonInput struct {
	Name          string
	Description   string
	Address       models.Address
	ContactNumber string
	Email         string
	Images        []string
	Services      []models.Service
	WorkingHours  []models.WorkingHours
}

type CreateSalon struct {
	repo  domainSalon.Repository
	audit *audit.Dispatcher
}

func NewCreateSalon(repo domainSalon.Repository, audit *audit.Dispatcher) *CreateSalon {
	return &CreateSalon{repo: repo, audit: audit}
}

func (uc *CreateSalon) Execute(ctx context.Context, ownerID string, in CreateSalonInput) (*models.Salon, error) {
	s := &models.Salon{
		ID:            domain.NewID(),
		OwnerID:       ownerID,
		Name:          in.Name,
		Description:   in.Description,
		Address:       in.Address,
		ContactNumber: in.ContactNumber,
		Email:         in.Email,
		Images:        in.Images,
		Services:      in.Services,
		WorkingHours:  in.WorkingHours,
	}

	if err := domainSalon.Validate(s); err != nil {
		return nil, err
	}
	domainSalon.Normalize(s)

	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, httperr.Internal("salon_store_error", err)
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  ownerID,
		Action:   "salon_created",
		Entity:   "salon",
		EntityID: s.ID,
	})

	return s, nil
}
