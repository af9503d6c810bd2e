package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/movie-catalog/internal/model"
)

// GenreRepo encapsulates all database queries related to genres.
type GenreRepo struct {
	t namedTable
}

// NewGenreRepo constructs a GenreRepo with the provided DB handle.
func NewGenreRepo(db *sql.DB) *GenreRepo {
	return &GenreRepo{t: namedTable{db: db, table: "genres", notFound: ErrGenreNotFound}}
}

// ListAll returns every genre ordered by id.
func (r *GenreRepo) ListAll(ctx context.Context) ([]*model.Genre, error) {
	rows, err := r.t.listAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*model.Genre, 0, len(rows))
	for _, row := range rows {
		out = append(out, &model.Genre{ID: row.ID, Name: row.Name})
	}
	return out, nil
}

// GetByID fetches a genre by id.  It returns ErrGenreNotFound if no
// row is found.
func (r *GenreRepo) GetByID(ctx context.Context, id int64) (*model.Genre, error) {
	row, err := r.t.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.Genre{ID: row.ID, Name: row.Name}, nil
}

// Create inserts a new genre.  On success d.ID holds the generated id.
func (r *GenreRepo) Create(ctx context.Context, d *model.Genre) error {
	id, err := r.t.create(ctx, d.Name)
	if err != nil {
		return err
	}
	d.ID = id
	return nil
}

// Insert stores d with its own id.  Used by the fixture seed.
func (r *GenreRepo) Insert(ctx context.Context, d *model.Genre) error {
	return r.t.insert(ctx, d.ID, d.Name)
}

// UpdateName replaces the genre's name.  It returns ErrGenreNotFound
// when the id does not exist.
func (r *GenreRepo) UpdateName(ctx context.Context, id int64, name string) error {
	return r.t.updateName(ctx, id, name)
}

// Delete removes a genre.  The boolean reports whether a row existed;
// a missing id is not an error.
func (r *GenreRepo) Delete(ctx context.Context, id int64) (bool, error) {
	return r.t.delete(ctx, id)
}

// Clear removes every genre.  Used by the fixture seed before reloading.
func (r *GenreRepo) Clear(ctx context.Context) error {
	return r.t.clear(ctx)
}

// Count returns the number of genres.
func (r *GenreRepo) Count(ctx context.Context) (int, error) {
	return r.t.count(ctx)
}
