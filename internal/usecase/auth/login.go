package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain"
	domainUser "github.com/BruksfildServices01/salon-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

type Login struct {
	service
}

func NewLogin(users domainUser.Repository, tokens TokenIssuer, opts Options) *Login {
	return &Login{service: service{users: users, tokens: tokens, opts: opts}}
}

func (uc *Login) Execute(ctx context.Context, email, password string) (*dto.AuthDTO, error) {
	u, err := uc.users.GetByEmail(ctx, validators.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, httperr.Internal("user_store_error", err)
	}

	// OAuth-only accounts have no password to compare against.
	if u.PasswordHash == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !u.IsAdmin && uc.opts.isAdmin(u.Email) {
		u.IsAdmin = true
		if err := uc.users.Update(ctx, u); err != nil {
			return nil, userStoreErr(err)
		}
	}

	return uc.respond(u)
}
