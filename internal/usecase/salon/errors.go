package salon

import (
	"errors"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
)

var (
	ErrSalonNotFound = httperr.NotFound("salon_not_found", "Salon not found")
	ErrInvalidID     = httperr.InvalidInput("invalid_id", "Invalid Salon ID format")
)

func checkID(id string) error {
	if !domain.ValidID(id) {
		return ErrInvalidID
	}
	return nil
}

func storeErr(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return ErrSalonNotFound
	}
	return httperr.Internal("salon_store_error", err)
}
