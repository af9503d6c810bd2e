package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/queue"
)

// ListGenres handles GET /genres/.
func (h *CatalogHandler) ListGenres(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()
	genres, err := h.Genres.ListAll(ctx)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]NamedResponse, 0, len(genres))
	for _, g := range genres {
		out = append(out, newGenreResponse(g))
	}
	return c.JSON(http.StatusOK, out)
}

// GetGenre handles GET /genres/:id.
func (h *CatalogHandler) GetGenre(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	ctx, cancel := dbContext(c)
	defer cancel()
	g, err := h.Genres.GetByID(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newGenreResponse(g))
}

// CreateGenre handles POST /genres/ with body {"name": "..."}.  It
// answers 201 with an empty body and a Location header for the new row.
func (h *CatalogHandler) CreateGenre(c echo.Context) error {
	req, err := bindNameRequest(c)
	if err != nil {
		return respondError(c, err)
	}
	g := req.toGenre()
	ctx, cancel := dbContext(c)
	defer cancel()
	if err := h.Genres.Create(ctx, g); err != nil {
		return respondError(c, err)
	}
	h.publish(c, queue.NewCatalogEvent(queue.EntityGenre, queue.ActionCreated, g.ID, g.Name))
	c.Response().Header().Set(echo.HeaderLocation, "/genres/"+strconv.FormatInt(g.ID, 10))
	return c.NoContent(http.StatusCreated)
}

// UpdateGenre handles PUT /genres/:id.  Only the name can change; an
// unknown id is a 404.
func (h *CatalogHandler) UpdateGenre(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	req, err := bindNameRequest(c)
	if err != nil {
		return respondError(c, err)
	}
	g := req.toGenre()
	ctx, cancel := dbContext(c)
	defer cancel()
	if err := h.Genres.UpdateName(ctx, id, g.Name); err != nil {
		return respondError(c, err)
	}
	h.publish(c, queue.NewCatalogEvent(queue.EntityGenre, queue.ActionUpdated, id, g.Name))
	return c.NoContent(http.StatusNoContent)
}

// DeleteGenre handles DELETE /genres/:id.  Deleting an unknown id
// still answers 204; movies keep their genre_id.
func (h *CatalogHandler) DeleteGenre(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	ctx, cancel := dbContext(c)
	defer cancel()
	existed, err := h.Genres.Delete(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	if existed {
		h.publish(c, queue.NewCatalogEvent(queue.EntityGenre, queue.ActionDeleted, id, ""))
	}
	return c.NoContent(http.StatusNoContent)
}
