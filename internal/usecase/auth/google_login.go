package auth

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain"
	domainUser "github.com/BruksfildServices01/salon-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

// GoogleProfile is the subset of the Google userinfo response we use.
type GoogleProfile struct {
	Subject       string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
}

var ErrGoogleEmailUnverified = httperr.Unauthenticated("oauth_email_unverified", "Google account email is not verified")

type GoogleLogin struct {
	service
	audit *audit.Dispatcher
}

func NewGoogleLogin(users domainUser.Repository, tokens TokenIssuer, audit *audit.Dispatcher, opts Options) *GoogleLogin {
	return &GoogleLogin{service: service{users: users, tokens: tokens, opts: opts}, audit: audit}
}

// Execute finds the user by Google subject, then by email (linking the
// account), and creates one when neither exists. Linking and creating need
// an email Google has verified.
func (uc *GoogleLogin) Execute(ctx context.Context, p GoogleProfile) (*dto.AuthDTO, error) {
	if p.Subject == "" || p.Email == "" {
		return nil, httperr.Unauthenticated("oauth_profile_incomplete", "Google account did not provide an email")
	}
	email := validators.NormalizeEmail(p.Email)

	u, err := uc.users.GetByGoogleID(ctx, p.Subject)
	if err == nil {
		return uc.respond(u)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, httperr.Internal("user_store_error", err)
	}

	if !p.EmailVerified {
		return nil, ErrGoogleEmailUnverified
	}

	u, err = uc.users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		u.GoogleID = &p.Subject
		if err := uc.users.Update(ctx, u); err != nil {
			return nil, userStoreErr(err)
		}
		return uc.respond(u)

	case !errors.Is(err, domain.ErrNotFound):
		return nil, httperr.Internal("user_store_error", err)
	}

	name := p.Name
	if name == "" {
		name = email
	}

	u = &models.User{
		ID:       domain.NewID(),
		Name:     name,
		Email:    email,
		GoogleID: &p.Subject,
		IsAdmin:  uc.opts.isAdmin(email),
	}
	if err := uc.users.Create(ctx, u); err != nil {
		return nil, userStoreErr(err)
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:  u.ID,
		Action:   "user_registered",
		Entity:   "user",
		EntityID: u.ID,
		Metadata: map[string]any{"provider": "google"},
	})

	return uc.respond(u)
}
