package repository

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/salon"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/user"
)

// Store is the set of repositories one backend provides.
type Store struct {
	Users        user.Repository
	Salons       salon.Repository
	Appointments appointment.Repository
	Audit        audit.Store
	Close        func(ctx context.Context) error
}
