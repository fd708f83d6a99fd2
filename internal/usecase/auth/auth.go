package auth

import (
	"errors"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain"
	domainUser "github.com/BruksfildServices01/salon-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

var (
	ErrUserExists         = httperr.InvalidInput("user_exists", "User already exists")
	ErrInvalidCredentials = httperr.Unauthenticated("invalid_credentials", "Invalid email or password")
	ErrInvalidEmailDomain = httperr.InvalidInput("invalid_email_domain", "The email domain does not appear to be valid")
)

type TokenIssuer interface {
	Issue(userID string, admin bool) (string, error)
}

type Options struct {
	// IsAdminEmail grants the admin flag to accounts with a listed email.
	IsAdminEmail        func(email string) bool
	ValidateEmailDomain bool
}

func (o Options) isAdmin(email string) bool {
	return o.IsAdminEmail != nil && o.IsAdminEmail(email)
}

type service struct {
	users  domainUser.Repository
	tokens TokenIssuer
	opts   Options
}

func (s service) respond(u *models.User) (*dto.AuthDTO, error) {
	tok, err := s.tokens.Issue(u.ID, u.IsAdmin)
	if err != nil {
		return nil, httperr.Internal("token_error", err)
	}

	return &dto.AuthDTO{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		PhoneNumber: u.PhoneNumber,
		IsAdmin:     u.IsAdmin,
		Token:       tok,
	}, nil
}

func userStoreErr(err error) error {
	if errors.Is(err, domain.ErrDuplicateKey) {
		return ErrUserExists
	}
	return httperr.Internal("user_store_error", err)
}
