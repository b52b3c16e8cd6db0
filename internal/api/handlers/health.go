package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"

	"talentflow/internal/api/middleware"
	"talentflow/internal/logging"
	"talentflow/pkg/models"
)

// Version is reported by the banner and health endpoints.
const Version = "1.0.0"

var startTime = time.Now()

// Check probes one dependency.
type Check func(ctx context.Context) error

// Health serves the probe endpoints.
type Health struct {
	Checks map[string]Check
	Logger logging.Logger
}

// Banner describes the service at GET /.
func Banner(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "TalentFlow API Server",
		"status":  "running",
		"version": Version,
		"endpoints": map[string]string{
			"health":      "/api/health",
			"auth":        "/api/auth",
			"candidates":  "/api/candidates",
			"interviews":  "/api/interviews",
			"employees":   "/api/employees",
			"onboarding":  "/api/onboarding",
			"offboarding": "/api/offboarding",
			"documents":   "/api/documents",
			"analytics":   "/api/analytics",
			"dashboard":   "/api/dashboard",
		},
		"documentation": "All API endpoints except /api/auth/login, /api/auth/signup and /api/auth/logout require a Bearer token",
	})
}

// APIHealth is the lightweight probe at /api/health.
func APIHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "TalentFlow API is running",
	})
}

// Healthy reports overall health and the state of each dependency. It
// answers 503 when any check fails.
func (h *Health) Healthy(c echo.Context) error {
	return h.report(c, "healthy")
}

// Ready is the readiness probe; it runs the same checks.
func (h *Health) Ready(c echo.Context) error {
	return h.report(c, "ready")
}

// Live only reports that the process is serving.
func (h *Health) Live(c echo.Context) error {
	return c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   Version,
		Uptime:    time.Since(startTime),
	})
}

func (h *Health) report(c echo.Context, okStatus string) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 3*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.Checks))
	for name := range h.Checks {
		names = append(names, name)
	}
	sort.Strings(names)

	checks := map[string]string{"api": "ok"}
	status, code := okStatus, http.StatusOK
	for _, name := range names {
		if err := h.Checks[name](ctx); err != nil {
			checks[name] = "error: " + err.Error()
			status, code = "degraded", http.StatusServiceUnavailable
			h.Logger.Warn("Health check failed", map[string]interface{}{
				"request_id": middleware.GetRequestID(c),
				"check":      name,
				"error":      err.Error(),
			})
			continue
		}
		checks[name] = "ok"
	}

	return c.JSON(code, models.HealthResponse{
		Status:    status,
		Timestamp: time.Now(),
		Version:   Version,
		Uptime:    time.Since(startTime),
		Checks:    checks,
	})
}
