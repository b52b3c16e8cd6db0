package middleware

import (
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// TimeoutConfig returns timeout middleware configuration. Uploads and
// downloads stream bodies and are exempt.
func TimeoutConfig(timeout time.Duration) echo.MiddlewareFunc {
	return middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return strings.HasSuffix(path, "/upload") || strings.HasSuffix(path, "/download")
		},
		Timeout:      timeout,
		ErrorMessage: `{"success":false,"error":"Request timed out"}`,
	})
}
