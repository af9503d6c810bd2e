package handler // declare the package name; contains HTTP handlers

import (
	"net/http" // net/http provides status codes and response helpers

	"github.com/labstack/echo/v4" // echo is the web framework used for this project
)

// Health is the health-check endpoint used by load balancers and
// monitoring systems.  It answers a plain text "ok" once the catalog store
// can be queried, and 503 otherwise.
func (h *CatalogHandler) Health(c echo.Context) error {
	ctx, cancel := dbContext(c)
	defer cancel()
	if _, err := h.Movies.Count(ctx); err != nil { // a failed count means the store is unreachable
		c.Logger().Warnf("health: store unavailable: %v", err)
		return c.String(http.StatusServiceUnavailable, "store unavailable")
	}
	return c.String(http.StatusOK, "ok") // write "ok" with a 200 OK status
}
