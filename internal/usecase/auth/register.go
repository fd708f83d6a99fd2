package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain"
	domainUser "github.com/BruksfildServices01/salon-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	PhoneNumber string
}

type Register struct {
	service
	audit *audit.Dispatcher
}

func NewRegister(users domainUser.Repository, tokens TokenIssuer, audit *audit.Dispatcher, opts Options) *Register {
	return &Register{service: service{users: users, tokens: tokens, opts: opts}, audit: audit}
}

func (uc *Register) Execute(ctx context.Context, in RegisterInput) (*dto.AuthDTO, error) {
	email := validators.NormalizeEmail(in.Email)

	if uc.opts.ValidateEmailDomain && !validators.IsEmailDomainValid(email) {
		return nil, ErrInvalidEmailDomain
	}

	_, err := uc.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, ErrUserExists
	case !errors.Is(err, domain.ErrNotFound):
		return nil, httperr.Internal("user_store_error", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, httperr.Internal("password_hash_error", err)
	}

	u := &models.User{
		ID:           domain.NewID(),
		Name:         in.Name,
		Email:        email,
		PasswordHash: string(hash),
		PhoneNumber:  in.PhoneNumber,
		IsAdmin:      uc.opts.isAdmin(email),
	}

	if err := uc.users.Create(ctx, u); err != nil {
		return nil, userStoreErr(err)
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  u.ID,
		Action:   "user_registered",
		Entity:   "user",
		EntityID: u.ID,
	})

	return uc.respond(u)
}
