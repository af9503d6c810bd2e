// Package handler exposes the HTTP handlers of the catalog API.  Handlers
// translate requests into repository calls and rows into response structs;
// they hold no state of their own.
package handler

import (
	"context"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/queue"
	"github.com/iliyamo/movie-catalog/internal/repository"
)

// dbTimeout bounds every repository call made by a handler.
const dbTimeout = 5 * time.Second

// EventPublisher receives change events after successful writes.
type EventPublisher interface {
	Publish(ctx context.Context, ev queue.CatalogEvent) error
}

// CatalogHandler bundles the repositories behind the catalog routes.
type CatalogHandler struct {
	Movies    *repository.MovieRepo
	Directors *repository.DirectorRepo
	Genres    *repository.GenreRepo
	Events    EventPublisher
}

// NewCatalogHandler constructs a CatalogHandler and panics if any dependency is nil.
func NewCatalogHandler(movies *repository.MovieRepo, directors *repository.DirectorRepo, genres *repository.GenreRepo, events EventPublisher) *CatalogHandler {
	if movies == nil || directors == nil || genres == nil || events == nil {
		panic("nil dependency passed to NewCatalogHandler")
	}
	return &CatalogHandler{Movies: movies, Directors: directors, Genres: genres, Events: events}
}

func dbContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, validationf("invalid id")
	}
	return id, nil
}

// queryID parses an optional integer query parameter.  A missing or empty
// value yields nil.
func queryID(c echo.Context, name string) (*int64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, validationf("%s must be an integer", name)
	}
	return &id, nil
}

// publish emits ev in the background.  The response never waits on the
// broker and a failed publish is only logged.
func (h *CatalogHandler) publish(c echo.Context, ev queue.CatalogEvent) {
	logger := c.Logger()
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := h.Events.Publish(ctx, ev); err != nil {
			logger.Warnf("publish %s for id=%d: %v", ev.Type, ev.EntityID, err)
		}
	}()
}
