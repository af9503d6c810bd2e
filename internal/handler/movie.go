package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/repository"
)

// ListMovies handles GET /movies/.  The optional director_id and genre_id
// query parameters are combined with AND; without them every movie is
// returned.  The response is always a JSON array.
func (h *CatalogHandler) ListMovies(c echo.Context) error {
	directorID, err := queryID(c, "director_id")
	if err != nil {
		return respondError(c, err)
	}
	genreID, err := queryID(c, "genre_id")
	if err != nil {
		return respondError(c, err)
	}

	ctx, cancel := dbContext(c)
	defer cancel()
	movies, err := h.Movies.Find(ctx, repository.MovieFilter{DirectorID: directorID, GenreID: genreID})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newMovieResponses(movies))
}

// GetMovie handles GET /movies/:id.  An unknown id is a 404.
func (h *CatalogHandler) GetMovie(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, err)
	}
	ctx, cancel := dbContext(c)
	defer cancel()
	m, err := h.Movies.GetByID(ctx, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newMovieResponse(m))
}
