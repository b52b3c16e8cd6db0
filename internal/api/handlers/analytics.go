package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"talentflow/internal/hr"
	"talentflow/pkg/models"
)

// AnalyticsHandler returns aggregates computed from the live stores.
func AnalyticsHandler(a *hr.Analytics) echo.HandlerFunc {
	return func(c echo.Context) error {
		return ok(c, http.StatusOK, a.Compute())
	}
}

// DashboardStatsHandler returns the cached dashboard snapshot.
func DashboardStatsHandler(d *hr.Dashboard) echo.HandlerFunc {
	return func(c echo.Context) error {
		stats, at := d.Stats()
		return c.JSON(http.StatusOK, models.DataResponse[models.DashboardStats]{Success: true, Data: stats, Timestamp: &at})
	}
}

// DashboardRefreshHandler recomputes the dashboard snapshot.
func DashboardRefreshHandler(d *hr.Dashboard) echo.HandlerFunc {
	return func(c echo.Context) error {
		stats, at := d.Refresh()
		return c.JSON(http.StatusOK, models.DataResponse[models.DashboardStats]{Success: true, Data: stats, Timestamp: &at})
	}
}
