// Package seed loads the fixture dataset into the store before the HTTP
// server starts.  Any failure aborts startup; the store is never served
// half-seeded.
package seed

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/iliyamo/movie-catalog/internal/fixture"
	"github.com/iliyamo/movie-catalog/internal/model"
	"github.com/iliyamo/movie-catalog/internal/repository"
)

// Repos bundles the repositories the seed writes to.
type Repos struct {
	Movies    *repository.MovieRepo
	Directors *repository.DirectorRepo
	Genres    *repository.GenreRepo
}

// Counts reports how many rows of each table exist after seeding.
type Counts struct {
	Movies    int
	Directors int
	Genres    int
}

func (c Counts) String() string {
	return fmt.Sprintf("movies=%d directors=%d genres=%d", c.Movies, c.Directors, c.Genres)
}

// Run clears the catalog tables and inserts the dataset with its own
// primary keys.  Directors and genres go in before movies so that every
// movie reference already exists.  The resulting row counts must equal the
// dataset lengths.
func Run(ctx context.Context, r Repos, ds *fixture.Dataset) (Counts, error) {
	if err := ds.Validate(); err != nil {
		return Counts{}, fmt.Errorf("seed: invalid dataset: %w", err)
	}

	if err := r.Movies.Clear(ctx); err != nil {
		return Counts{}, fmt.Errorf("seed: clear movies: %w", err)
	}
	if err := r.Directors.Clear(ctx); err != nil {
		return Counts{}, fmt.Errorf("seed: clear directors: %w", err)
	}
	if err := r.Genres.Clear(ctx); err != nil {
		return Counts{}, fmt.Errorf("seed: clear genres: %w", err)
	}

	for _, d := range ds.Directors {
		if err := r.Directors.Insert(ctx, &model.Director{ID: d.PK, Name: d.Name}); err != nil {
			return Counts{}, fmt.Errorf("seed: director %d: %w", d.PK, err)
		}
	}
	for _, g := range ds.Genres {
		if err := r.Genres.Insert(ctx, &model.Genre{ID: g.PK, Name: g.Name}); err != nil {
			return Counts{}, fmt.Errorf("seed: genre %d: %w", g.PK, err)
		}
	}
	for _, m := range ds.Movies {
		if err := r.Movies.Insert(ctx, movieFromRecord(m)); err != nil {
			return Counts{}, fmt.Errorf("seed: movie %d: %w", m.PK, err)
		}
	}

	got, err := count(ctx, r)
	if err != nil {
		return Counts{}, err
	}
	want := Counts{Movies: len(ds.Movies), Directors: len(ds.Directors), Genres: len(ds.Genres)}
	if got != want {
		return got, fmt.Errorf("seed: row counts %s do not match dataset %s", got, want)
	}
	log.Printf("seed: loaded %s", got)
	return got, nil
}

func count(ctx context.Context, r Repos) (Counts, error) {
	var (
		c   Counts
		err error
	)
	if c.Movies, err = r.Movies.Count(ctx); err != nil {
		return Counts{}, fmt.Errorf("seed: count movies: %w", err)
	}
	if c.Directors, err = r.Directors.Count(ctx); err != nil {
		return Counts{}, fmt.Errorf("seed: count directors: %w", err)
	}
	if c.Genres, err = r.Genres.Count(ctx); err != nil {
		return Counts{}, fmt.Errorf("seed: count genres: %w", err)
	}
	return c, nil
}

func movieFromRecord(m fixture.MovieRecord) *model.Movie {
	return &model.Movie{
		ID:          m.PK,
		Title:       m.Title,
		Description: m.Description,
		Trailer:     m.Trailer,
		Year:        m.Year,
		Rating:      m.Rating,
		GenreID:     nullable(m.GenreID),
		DirectorID:  nullable(m.DirectorID),
	}
}

func nullable(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}
