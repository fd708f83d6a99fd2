package salon

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domainSalon "github.com/BruksfildServices01/salon-scheduler/internal/domain/salon"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type UpdateSalon struct {
	repo  domainSalon.Repository
	audit *audit.Dispatcher
}

func NewUpdateSalon(repo domainSalon.Repository, audit *audit.Dispatcher) *UpdateSalon {
	return &UpdateSalon{repo: repo, audit: audit}
}

// Execute overwrites the fields set in patch and leaves the rest untouched.
func (uc *UpdateSalon) Execute(
	ctx context.Context,
	actorID string,
	id string,
	patch domainSalon.Patch,
) (*models.Salon, error) {

	if err := checkID(id); err != nil {
		return nil, err
	}
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err)
	}

	patch.Apply(s)

	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, storeErr(err)
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actorID,
		Action:   "salon_updated",
		Entity:   "salon",
		EntityID: s.ID,
	})

	return s, nil
}
