package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/talenthub/talenthub-api/internal/core/domain"
	"github.com/talenthub/talenthub-api/internal/core/ports"
)

// Options carries the settings shared by every resource handler.
type Options struct {
	// MaxPageLimit caps the :limit path parameter; zero disables the cap.
	MaxPageLimit int
	Logger       zerolog.Logger
}

// ResourceHandler adapts the six CRUD operations of one resource to HTTP.
// C and U are the create and update request bodies.
type ResourceHandler[T any, C fieldsMapper, U fieldsMapper] struct {
	service  ports.ResourceService[T]
	name     string
	plural   string
	maxLimit int
	logger   zerolog.Logger
}

func newResourceHandler[T any, C fieldsMapper, U fieldsMapper](service ports.ResourceService[T], name, plural string, opts Options) *ResourceHandler[T, C, U] {
	return &ResourceHandler[T, C, U]{
		service:  service,
		name:     name,
		plural:   plural,
		maxLimit: opts.MaxPageLimit,
		logger:   opts.Logger.With().Str("resource", plural).Logger(),
	}
}

// Create handles POST /api/{resource}.
//
// @Summary      Create a record
// @Tags         resources
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        resource  path      string  true  "Resource"  Enums(users, jobs, projects)
// @Param        body      body      object  true  "Record fields"
// @Success      201       {object}  object
// @Failure      400       {object}  map[string]string
// @Failure      401       {object}  map[string]string
// @Failure      403       {object}  map[string]string
// @Failure      500       {object}  map[string]string
// @Router       /api/{resource} [post]
func (h *ResourceHandler[T, C, U]) Create(c echo.Context) error {
	fields, err := bindFields[C](c)
	if err != nil {
		return h.invalidData(c, err)
	}

	created, err := h.service.Create(c.Request().Context(), fields)
	if err != nil {
		return h.fail(c, err, "Failed to create "+h.name)
	}
	return c.JSON(http.StatusCreated, created)
}

// GetAll handles GET /api/{resource}.
//
// @Summary      List every record
// @Tags         resources
// @Produce      json
// @Security     BearerAuth
// @Param        resource  path      string  true  "Resource"  Enums(users, jobs, projects)
// @Success      200       {array}   object
// @Failure      500       {object}  map[string]string
// @Router       /api/{resource} [get]
func (h *ResourceHandler[T, C, U]) GetAll(c echo.Context) error {
	items, err := h.service.GetAll(c.Request().Context())
	if err != nil {
		return h.fail(c, err, "Failed to get "+h.plural)
	}
	return c.JSON(http.StatusOK, items)
}

// GetByID handles GET /api/{resource}/:id.
//
// @Summary      Get a record by id
// @Tags         resources
// @Produce      json
// @Security     BearerAuth
// @Param        resource  path      string  true  "Resource"  Enums(users, jobs, projects)
// @Param        id        path      string  true  "Record id (UUID)"
// @Success      200       {object}  object
// @Failure      400       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Failure      500       {object}  map[string]string
// @Router       /api/{resource}/{id} [get]
func (h *ResourceHandler[T, C, U]) GetByID(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return h.invalidID(c)
	}

	item, err := h.service.GetByID(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err, "Failed to get "+h.name)
	}
	return c.JSON(http.StatusOK, item)
}

// GetPaginated handles GET /api/{resource}/page/:page/limit/:limit.
//
// @Summary      List one page of records
// @Tags         resources
// @Produce      json
// @Security     BearerAuth
// @Param        resource  path      string  true  "Resource"  Enums(users, jobs, projects)
// @Param        page      path      int     true  "Page number, starting at 1"
// @Param        limit     path      int     true  "Page size"
// @Success      200       {array}   object
// @Failure      400       {object}  map[string]string
// @Failure      500       {object}  map[string]string
// @Router       /api/{resource}/page/{page}/limit/{limit} [get]
func (h *ResourceHandler[T, C, U]) GetPaginated(c echo.Context) error {
	page, limit, ok := pageParams(c, h.maxLimit)
	if !ok {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid page or limit"})
	}

	items, err := h.service.GetPaginated(c.Request().Context(), page, limit)
	if err != nil {
		return h.fail(c, err, "Failed to get "+h.plural)
	}
	return c.JSON(http.StatusOK, items)
}

// UpdateByID handles PUT /api/{resource}/:id. Only supplied fields change.
//
// @Summary      Update a record
// @Tags         resources
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        resource  path      string  true  "Resource"  Enums(users, jobs, projects)
// @Param        id        path      string  true  "Record id (UUID)"
// @Param        body      body      object  true  "Fields to change"
// @Success      200       {object}  object
// @Failure      400       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Failure      500       {object}  map[string]string
// @Router       /api/{resource}/{id} [put]
func (h *ResourceHandler[T, C, U]) UpdateByID(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return h.invalidID(c)
	}
	fields, err := bindFields[U](c)
	if err != nil {
		return h.invalidData(c, err)
	}

	updated, err := h.service.UpdateByID(c.Request().Context(), id, fields)
	if err != nil {
		return h.fail(c, err, "Failed to update "+h.name)
	}
	return c.JSON(http.StatusOK, updated)
}

// DeleteByID handles DELETE /api/{resource}/:id and returns the removed record.
//
// @Summary      Delete a record
// @Tags         resources
// @Produce      json
// @Security     BearerAuth
// @Param        resource  path      string  true  "Resource"  Enums(users, jobs, projects)
// @Param        id        path      string  true  "Record id (UUID)"
// @Success      200       {object}  object
// @Failure      400       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Failure      500       {object}  map[string]string
// @Router       /api/{resource}/{id} [delete]
func (h *ResourceHandler[T, C, U]) DeleteByID(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return h.invalidID(c)
	}

	deleted, err := h.service.DeleteByID(c.Request().Context(), id)
	if err != nil {
		return h.fail(c, err, "Failed to delete "+h.name)
	}
	return c.JSON(http.StatusOK, deleted)
}

// bindFields decodes, validates and maps a request body of type R.
func bindFields[R fieldsMapper](c echo.Context) (domain.Fields, error) {
	var req R
	members, err := decodeObject(c, &req)
	if err != nil {
		return nil, errEmptyBody
	}
	if err := c.Validate(req); err != nil {
		return nil, err
	}
	fields, err := req.fields()
	if err != nil {
		return nil, err
	}
	if cl, ok := any(req).(clearer); ok {
		clearNulls(fields, members, cl.clearable())
	}
	if len(fields) == 0 {
		return nil, errNoFields
	}
	return fields, nil
}

func (h *ResourceHandler[T, C, U]) invalidData(c echo.Context, err error) error {
	msg := "Invalid " + h.name + " data"
	if !errors.Is(err, errEmptyBody) && !errors.Is(err, errNoFields) {
		msg += ": " + err.Error()
	}
	return c.JSON(http.StatusBadRequest, map[string]string{"error": msg})
}

func (h *ResourceHandler[T, C, U]) invalidID(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid " + h.name + " id"})
}

// fail is the single translation point from service errors to responses:
// not found is 404, rejected input 400, anything else a logged 500 with a
// generic message.
func (h *ResourceHandler[T, C, U]) fail(c echo.Context, err error, msg string) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.JSON(http.StatusNotFound, map[string]string{"error": capitalize(h.name) + " not found"})
	case errors.Is(err, domain.ErrValidation):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid " + h.name + " data"})
	}

	h.logger.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg(msg)
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": msg})
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
