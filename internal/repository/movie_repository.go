// Package repository contains data access logic separated from HTTP handlers.
// This file holds the movie queries.  Movies are inserted once by the seed
// and only read afterwards.
package repository

import (
	"context"      // context allows passing deadlines and cancellation signals to DB operations
	"database/sql" // sql provides generic database operations and drivers
	"errors"       // errors maps sql.ErrNoRows onto the package sentinel
	"strings"      // strings joins the WHERE clause

	"github.com/iliyamo/movie-catalog/internal/model"
)

const movieColumns = "id, title, description, trailer, year, rating, genre_id, director_id"

// MovieFilter narrows Find.  A nil field is not filtered on; supplied fields
// are combined with AND.
type MovieFilter struct {
	DirectorID *int64
	GenreID    *int64
}

// MovieRepo encapsulates all database queries related to movies.
type MovieRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewMovieRepo constructs a MovieRepo with the provided DB handle.
func NewMovieRepo(db *sql.DB) *MovieRepo {
	return &MovieRepo{db: db}
}

// ListAll returns every movie ordered by id.
func (r *MovieRepo) ListAll(ctx context.Context) ([]*model.Movie, error) {
	return r.Find(ctx, MovieFilter{})
}

// Find returns the movies matching every supplied filter, ordered by id.
func (r *MovieRepo) Find(ctx context.Context, f MovieFilter) ([]*model.Movie, error) {
	var (
		where []string
		args  []any
	)
	if f.DirectorID != nil {
		where = append(where, "director_id = ?")
		args = append(args, *f.DirectorID)
	}
	if f.GenreID != nil {
		where = append(where, "genre_id = ?")
		args = append(args, *f.GenreID)
	}
	q := "SELECT " + movieColumns + " FROM movies"
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY id"

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Movie{}
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a movie by its id.  It returns ErrMovieNotFound if no row
// is found.
func (r *MovieRepo) GetByID(ctx context.Context, id int64) (*model.Movie, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+movieColumns+" FROM movies WHERE id = ?", id)
	m, err := scanMovie(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMovieNotFound
		}
		return nil, err
	}
	return m, nil
}

// Insert stores m with its own id.  Used by the fixture seed.
func (r *MovieRepo) Insert(ctx context.Context, m *model.Movie) error {
	const q = `INSERT INTO movies (id, title, description, trailer, year, rating, genre_id, director_id)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		m.ID, m.Title, m.Description, m.Trailer, m.Year, m.Rating, m.GenreID, m.DirectorID)
	return err
}

// Clear removes every movie.  Used by the fixture seed before reloading.
func (r *MovieRepo) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM movies")
	return err
}

// Count returns the number of movies.
func (r *MovieRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM movies").Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanMovie(s scanner) (*model.Movie, error) {
	m := new(model.Movie)
	if err := s.Scan(&m.ID, &m.Title, &m.Description, &m.Trailer, &m.Year, &m.Rating, &m.GenreID, &m.DirectorID); err != nil {
		return nil, err
	}
	return m, nil
}
