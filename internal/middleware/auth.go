package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain"
	domainUser "github.com/BruksfildServices01/salon-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const ContextUser = "user"

var (
	ErrNoToken      = httperr.Unauthenticated("no_token", "Not authorized, no token provided")
	ErrInvalidToken = httperr.Unauthenticated("invalid_token", "Not authorized, token failed or invalid")
	ErrUserNotFound = httperr.Unauthenticated("user_not_found", "Not authorized, user not found")
	ErrNotAdmin     = httperr.Forbidden("not_admin", "Not authorized as an admin")
)

// TokenParser verifies a bearer token and returns the user id it was issued for.
type TokenParser interface {
	Parse(token string) (string, error)
}

// AuthMiddleware resolves the bearer token to a stored user and puts it on
// the context under ContextUser.
func AuthMiddleware(tokens TokenParser, users domainUser.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			httperr.Respond(c, ErrNoToken)
			return
		}

		userID, err := tokens.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.Respond(c, ErrInvalidToken)
			return
		}

		user, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				httperr.Respond(c, ErrUserNotFound)
				return
			}
			httperr.Respond(c, httperr.Internal("user_store_error", err))
			return
		}

		c.Set(ContextUser, user)
		c.Next()
	}
}

// RequireAdmin must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil || !user.IsAdmin {
			httperr.Respond(c, ErrNotAdmin)
			return
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user, or nil on public routes.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(ContextUser)
	if !ok {
		return nil
	}
	user, _ := v.(*models.User)
	return user
}
