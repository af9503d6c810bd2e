package handler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"io"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/movie-catalog/internal/model"
)

// MovieResponse is the JSON shape of a movie.  Missing references are
// rendered as null.
type MovieResponse struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Trailer     string  `json:"trailer"`
	Year        int     `json:"year"`
	Rating      float64 `json:"rating"`
	GenreID     *int64  `json:"genre_id"`
	DirectorID  *int64  `json:"director_id"`
}

// NamedResponse is the JSON shape of a director or a genre.
type NamedResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// nameRequest is the only body accepted by director and genre writes.
// Ids are never taken from the body.
type nameRequest struct {
	Name *string `json:"name"`
}

func newMovieResponse(m *model.Movie) MovieResponse {
	return MovieResponse{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		Trailer:     m.Trailer,
		Year:        m.Year,
		Rating:      m.Rating,
		GenreID:     refPtr(m.GenreID),
		DirectorID:  refPtr(m.DirectorID),
	}
}

func newMovieResponses(ms []*model.Movie) []MovieResponse {
	out := make([]MovieResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, newMovieResponse(m))
	}
	return out
}

func newDirectorResponse(d *model.Director) NamedResponse {
	return NamedResponse{ID: d.ID, Name: d.Name}
}

func newGenreResponse(g *model.Genre) NamedResponse {
	return NamedResponse{ID: g.ID, Name: g.Name}
}

func (r nameRequest) toDirector() *model.Director {
	return &model.Director{Name: strings.TrimSpace(*r.Name)}
}

func (r nameRequest) toGenre() *model.Genre {
	return &model.Genre{Name: strings.TrimSpace(*r.Name)}
}

func refPtr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	id := v.Int64
	return &id
}

// bindNameRequest decodes the body strictly: exactly one JSON object, no
// unknown keys, and a non-blank string name.
func bindNameRequest(c echo.Context) (nameRequest, error) {
	var req nameRequest
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			return req, validationf("%s must be a %s", typeErr.Field, typeErr.Type)
		}
		return req, validationf("invalid request body")
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return req, validationf("invalid request body")
	}
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		return req, validationf("name is required")
	}
	return req, nil
}
