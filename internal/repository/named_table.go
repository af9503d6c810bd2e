package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// namedTable holds the queries shared by the two `{id, name}` tables,
// directors and genres.  The table name is fixed by the repo
// constructors, never caller input.
type namedTable struct {
	db       *sql.DB
	table    string
	notFound error
}

type namedRow struct {
	ID   int64
	Name string
}

func (t namedTable) listAll(ctx context.Context) ([]namedRow, error) {
	q := fmt.Sprintf("SELECT id, name FROM %s ORDER BY id", t.table)
	rows, err := t.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []namedRow
	for rows.Next() {
		var r namedRow
		if err := rows.Scan(&r.ID, &r.Name); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (t namedTable) getByID(ctx context.Context, id int64) (namedRow, error) {
	q := fmt.Sprintf("SELECT id, name FROM %s WHERE id = ?", t.table)
	var r namedRow
	if err := t.db.QueryRowContext(ctx, q, id).Scan(&r.ID, &r.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return namedRow{}, t.notFound
		}
		return namedRow{}, err
	}
	return r, nil
}

// create inserts a row and lets the database assign the id.
func (t namedTable) create(ctx context.Context, name string) (int64, error) {
	q := fmt.Sprintf("INSERT INTO %s (name) VALUES (?)", t.table)
	res, err := t.db.ExecContext(ctx, q, name)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// insert stores a row with an explicit id.  Only the fixture seed uses it.
func (t namedTable) insert(ctx context.Context, id int64, name string) error {
	q := fmt.Sprintf("INSERT INTO %s (id, name) VALUES (?, ?)", t.table)
	_, err := t.db.ExecContext(ctx, q, id, name)
	return err
}

// updateName renames the row in one statement.  RowsAffected counts
// matched rows (SQLite always, MySQL with clientFoundRows), so zero means the
// id does not exist, even when the name is unchanged.
func (t namedTable) updateName(ctx context.Context, id int64, name string) error {
	q := fmt.Sprintf("UPDATE %s SET name = ? WHERE id = ?", t.table)
	res, err := t.db.ExecContext(ctx, q, name, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return t.notFound
	}
	return nil
}

// delete removes the row if present.  Deleting a missing id is not an error.
func (t namedTable) delete(ctx context.Context, id int64) (bool, error) {
	q := fmt.Sprintf("DELETE FROM %s WHERE id = ?", t.table)
	res, err := t.db.ExecContext(ctx, q, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// clear removes every row.  Only the fixture seed uses it.
func (t namedTable) clear(ctx context.Context) error {
	_, err := t.db.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", t.table))
	return err
}

func (t namedTable) count(ctx context.Context) (int, error) {
	var n int
	q := fmt.Sprintf("SELECT COUNT(*) FROM %s", t.table)
	if err := t.db.QueryRowContext(ctx, q).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}
