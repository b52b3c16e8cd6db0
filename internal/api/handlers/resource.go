package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"talentflow/internal/api/validation"
	"talentflow/internal/hr"
	"talentflow/internal/logging"
	"talentflow/internal/query"
	"talentflow/internal/store"
	"talentflow/pkg/models"
)

// Resource serves list, get, create, update and delete for one entity kind.
// In is the create payload and Patch the partial update payload.
type Resource[T any, P interface {
	*T
	store.Record
}, In any, Patch any] struct {
	// Name is the singular label used in messages, e.g. "Candidate".
	Name    string
	Service *hr.Service[T, P]
	Build   func(in In) T
	Apply   func(patch Patch, rec *T)
	Logger  logging.Logger
}

// Register mounts the routes on g.
func (r *Resource[T, P, In, Patch]) Register(g *echo.Group) {
	g.GET("", r.List)
	g.POST("", r.Create)
	g.GET("/:id", r.Get)
	g.PUT("/:id", r.Update)
	g.DELETE("/:id", r.Delete)
}

func (r *Resource[T, P, In, Patch]) List(c echo.Context) error {
	params := query.ParamsFromValues(c.QueryParams(), r.Service.Schema())
	page := r.Service.List(params)
	return c.JSON(http.StatusOK, listResponse(page))
}

func (r *Resource[T, P, In, Patch]) Get(c echo.Context) error {
	rec, err := r.Service.Get(c.Param("id"))
	if err != nil {
		return fail(c, r.Logger, err, r.Name)
	}
	return ok(c, http.StatusOK, rec)
}

func (r *Resource[T, P, In, Patch]) Create(c echo.Context) error {
	var in In
	problems, err := validation.DecodeJSON(c.Request().Body, &in)
	if err != nil {
		return fail(c, r.Logger, err, r.Name)
	}

	created, err := r.Service.Create(r.Build(in), problems...)
	if err != nil {
		return fail(c, r.Logger, err, r.Name)
	}
	return ok(c, http.StatusCreated, created)
}

func (r *Resource[T, P, In, Patch]) Update(c echo.Context) error {
	var patch Patch
	problems, err := validation.DecodeJSON(c.Request().Body, &patch)
	if err != nil {
		return fail(c, r.Logger, err, r.Name)
	}

	updated, err := r.Service.Update(c.Param("id"), func(rec *T) { r.Apply(patch, rec) }, problems...)
	if err != nil {
		return fail(c, r.Logger, err, r.Name)
	}
	return ok(c, http.StatusOK, updated)
}

func (r *Resource[T, P, In, Patch]) Delete(c echo.Context) error {
	removed, err := r.Service.Delete(c.Param("id"))
	if err != nil {
		return fail(c, r.Logger, err, r.Name)
	}
	return c.JSON(http.StatusOK, models.DataResponse[T]{
		Success: true,
		Message: r.Name + " deleted",
		Data:    removed,
	})
}

func listResponse[T any](page query.Result[T]) models.ListResponse[T] {
	return models.ListResponse[T]{
		Success: true,
		Data:    page.Items,
		Pagination: models.Pagination{
			Total: page.Total,
			Page:  page.Page,
			Limit: page.PageSize,
			Pages: page.PageCount,
		},
	}
}
