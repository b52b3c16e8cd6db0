package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"talentflow/internal/api/middleware"
	"talentflow/internal/hr"
	"talentflow/internal/logging"
	"talentflow/internal/store"
	"talentflow/pkg/models"
	"talentflow/pkg/utils"
)

// fail renders err as a resource error body. name labels not-found messages.
func fail(c echo.Context, logger logging.Logger, err error, name string) error {
	if ce, ok := utils.AsCustomError(err); ok {
		if len(ce.Errors) > 0 {
			return c.JSON(ce.Code, models.FailureResponse{Errors: ce.Errors})
		}
		return c.JSON(ce.Code, models.FailureResponse{Error: ce.Message})
	}

	switch {
	case errors.Is(err, store.ErrNotFound):
		return c.JSON(http.StatusNotFound, models.FailureResponse{Error: name + " not found"})
	case errors.Is(err, hr.ErrDuplicateEmail):
		return c.JSON(http.StatusBadRequest, models.FailureResponse{Error: "Email already exists"})
	}

	logger.Error("Request failed", map[string]interface{}{
		"request_id": middleware.GetRequestID(c),
		"path":       c.Path(),
		"error":      err.Error(),
	})
	return c.JSON(http.StatusInternalServerError, models.FailureResponse{Error: "Internal server error"})
}

func ok[T any](c echo.Context, status int, data T) error {
	return c.JSON(status, models.DataResponse[T]{Success: true, Data: data})
}
