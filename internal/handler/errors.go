package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/repository"
)

// ValidationError reports a request that cannot be served as sent: a bad
// path id, a bad query value or a malformed body.  It maps to 400.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationf(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// respondError converts err into the JSON error response.  Validation
// failures become 400, missing rows 404, anything else a logged 500.
func respondError(c echo.Context, err error) error {
	var ve *ValidationError
	switch {
	case errors.As(err, &ve):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": ve.Message})
	case errors.Is(err, repository.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	default:
		c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
}
