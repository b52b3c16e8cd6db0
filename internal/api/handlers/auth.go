package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"talentflow/internal/api/middleware"
	"talentflow/internal/api/validation"
	"talentflow/internal/auth"
	"talentflow/internal/logging"
	"talentflow/pkg/models"
	"talentflow/pkg/utils"
)

// Auth serves the login, signup, logout and me endpoints. Errors use the
// bare {error} body.
type Auth struct {
	Service *auth.Service
	Logger  logging.Logger
}

func (h *Auth) Login(c echo.Context) error {
	var req models.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Email and password are required"})
	}

	resp, err := h.Service.Login(req)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Auth) Signup(c echo.Context) error {
	var req models.SignupRequest
	problems, err := validation.DecodeJSON(c.Request().Body, &req)
	if err != nil {
		return h.fail(c, err)
	}

	resp, err := h.Service.Signup(req, problems...)
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusCreated, resp)
}

// Logout revokes the presented token, if any. It always succeeds.
func (h *Auth) Logout(c echo.Context) error {
	if token := middleware.BearerToken(c); token != "" {
		if err := h.Service.Logout(c.Request().Context(), token); err != nil {
			h.Logger.Warn("Failed to revoke token on logout", map[string]interface{}{
				"request_id": middleware.GetRequestID(c),
				"error":      err.Error(),
			})
		}
	}
	return c.JSON(http.StatusOK, models.MessageResponse{Message: "Logged out successfully"})
}

// Me returns the caller resolved by the auth gate.
func (h *Auth) Me(c echo.Context) error {
	identity, found := middleware.CurrentIdentity(c)
	if !found {
		return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid token"})
	}
	return ok(c, http.StatusOK, identity)
}

func (h *Auth) fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, auth.ErrMissingCredentials):
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "Email and password are required"})
	case errors.Is(err, auth.ErrInvalidCredentials):
		return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid credentials"})
	case errors.Is(err, auth.ErrEmailTaken):
		return c.JSON(http.StatusConflict, models.ErrorResponse{Error: "Email already exists"})
	}

	if ce, ok := utils.AsCustomError(err); ok {
		if len(ce.Errors) > 0 {
			return c.JSON(ce.Code, models.FailureResponse{Errors: ce.Errors})
		}
		return c.JSON(ce.Code, models.ErrorResponse{Error: ce.Message})
	}

	h.Logger.Error("Auth request failed", map[string]interface{}{
		"request_id": middleware.GetRequestID(c),
		"error":      err.Error(),
	})
	return c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
}
