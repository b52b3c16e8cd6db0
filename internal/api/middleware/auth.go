package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"talentflow/internal/auth"
	"talentflow/pkg/models"
)

const (
	userIDKey   = "user_id"
	identityKey = "identity"
)

// Authenticator resolves bearer tokens.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (auth.Session, error)
}

// Auth rejects requests without a valid bearer token and stores the caller
// on the context.
func Auth(a Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := BearerToken(c)
			if token == "" {
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "No token provided"})
			}

			session, err := a.Authenticate(c.Request().Context(), token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid token"})
			}

			c.Set(userIDKey, session.UserID)
			if session.Identity != nil {
				c.Set(identityKey, *session.Identity)
			}
			return next(c)
		}
	}
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// UserID returns the authenticated user id.
func UserID(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}

// CurrentIdentity returns the authenticated caller, if the account still exists.
func CurrentIdentity(c echo.Context) (models.Identity, bool) {
	id, ok := c.Get(identityKey).(models.Identity)
	return id, ok
}
