package salon

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domainSalon "github.com/BruksfildServices01/salon-scheduler/internal/domain/salon"
)

// DeleteSalon removes the salon only. Appointments that reference it stay in
// the ledger and are shown without salon details.
type DeleteSalon struct {
	repo  domainSalon.Repository
	audit *audit.Dispatcher
}

func NewDeleteSalon(repo domainSalon.Repository, audit *audit.Dispatcher) *DeleteSalon {
	return &DeleteSalon{repo: repo, audit: audit}
}

func (uc *DeleteSalon) Execute(ctx context.Context, actorID string, id string) error {
	if err := checkID(id); err != nil {
		return err
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return storeErr(err)
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  actorID,
		Action:   "salon_deleted",
		Entity:   "salon",
		EntityID: id,
	})
	return nil
}
