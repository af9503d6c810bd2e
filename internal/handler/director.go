package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/queue"
)

// ListDirectors handles GET /directors/.
func (h *CatalogHandler) ListDirectors(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()
	directors, err := h.Directors.ListAll(ctx)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]NamedResponse, 0, len(directors))
	for _, d := range directors {
		out = append(out, newDirectorResponse(d))
	}
	return c.JSON(http.StatusOK, out)
}

// GetDirector handles GET /directors/:id.
func (h *CatalogHandler) GetDirector(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	ctx, cancel := dbContext(c)
	defer cancel()
	d, err := h.Directors.GetByID(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newDirectorResponse(d))
}

// CreateDirector handles POST /directors/ with body {"name": "..."}.  It
// answers 201 with an empty body and a Location header for the new row.
func (h *CatalogHandler) CreateDirector(c echo.Context) error {
	req, err := bindNameRequest(c)
	if err != nil {
		return respondError(c, err)
	}
	d := req.toDirector()
	ctx, cancel := dbContext(c)
	defer cancel()
	if err := h.Directors.Create(ctx, d); err != nil {
		return respondError(c, err)
	}
	h.publish(c, queue.NewCatalogEvent(queue.EntityDirector, queue.ActionCreated, d.ID, d.Name))
	c.Response().Header().Set(echo.HeaderLocation, "/directors/"+strconv.FormatInt(d.ID, 10))
	return c.NoContent(http.StatusCreated)
}

// UpdateDirector handles PUT /directors/:id.  Only the name can change; an
// unknown id is a 404.
func (h *CatalogHandler) UpdateDirector(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	req, err := bindNameRequest(c)
	if err != nil {
		return respondError(c, err)
	}
	d := req.toDirector()
	ctx, cancel := dbContext(c)
	defer cancel()
	if err := h.Directors.UpdateName(ctx, id, d.Name); err != nil {
		return respondError(c, err)
	}
	h.publish(c, queue.NewCatalogEvent(queue.EntityDirector, queue.ActionUpdated, id, d.Name))
	return c.NoContent(http.StatusNoContent)
}

// DeleteDirector handles DELETE /directors/:id.  Deleting an unknown id
// still answers 204; movies keep their director_id.
func (h *CatalogHandler) DeleteDirector(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	ctx, cancel := dbContext(c)
	defer cancel()
	existed, err := h.Directors.Delete(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	if existed {
		h.publish(c, queue.NewCatalogEvent(queue.EntityDirector, queue.ActionDeleted, id, ""))
	}
	return c.NoContent(http.StatusNoContent)
}
