package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/movie-catalog/internal/model"
)

// DirectorRepo encapsulates all database queries related to directors.
type DirectorRepo struct {
	t namedTable
}

// NewDirectorRepo constructs a DirectorRepo with the provided DB handle.
func NewDirectorRepo(db *sql.DB) *DirectorRepo {
	return &DirectorRepo{t: namedTable{db: db, table: "directors", notFound: ErrDirectorNotFound}}
}

// ListAll returns every director ordered by id.
func (r *DirectorRepo) ListAll(ctx context.Context) ([]*model.Director, error) {
	rows, err := r.t.listAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*model.Director, 0, len(rows))
	for _, row := range rows {
		out = append(out, &model.Director{ID: row.ID, Name: row.Name})
	}
	return out, nil
}

// GetByID fetches a director by id.  It returns ErrDirectorNotFound if no
// row is found.
func (r *DirectorRepo) GetByID(ctx context.Context, id int64) (*model.Director, error) {
	row, err := r.t.getByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.Director{ID: row.ID, Name: row.Name}, nil
}

// Create inserts a new director.  On success d.ID holds the generated id.
func (r *DirectorRepo) Create(ctx context.Context, d *model.Director) error {
	id, err := r.t.create(ctx, d.Name)
	if err != nil {
		return err
	}
	d.ID = id
	return nil
}

// Insert stores d with its own id.  Used by the fixture seed.
func (r *DirectorRepo) Insert(ctx context.Context, d *model.Director) error {
	return r.t.insert(ctx, d.ID, d.Name)
}

// UpdateName replaces the director's name.  It returns ErrDirectorNotFound
// when the id does not exist.
func (r *DirectorRepo) UpdateName(ctx context.Context, id int64, name string) error {
	return r.t.updateName(ctx, id, name)
}

// Delete removes a director.  The boolean reports whether a row existed;
// a missing id is not an error.
func (r *DirectorRepo) Delete(ctx context.Context, id int64) (bool, error) {
	return r.t.delete(ctx, id)
}

// Clear removes every director.  Used by the fixture seed before reloading.
func (r *DirectorRepo) Clear(ctx context.Context) error {
	return r.t.clear(ctx)
}

// Count returns the number of directors.
func (r *DirectorRepo) Count(ctx context.Context) (int, error) {
	return r.t.count(ctx)
}
