package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/iliyamo/movie-catalog/internal/config"
)

// Foreign key columns are indexed but deliberately not enforced: deleting a
// director or genre leaves movies pointing at the old id.  Reference checks
// happen once, when the fixture is seeded.
var schemaDDL = map[string][]string{
	config.DriverSQLite: {
		`CREATE TABLE IF NOT EXISTS directors (
			id   INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS genres (
			id   INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS movies (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			title       TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			trailer     TEXT NOT NULL DEFAULT '',
			year        INTEGER NOT NULL DEFAULT 0,
			rating      REAL NOT NULL DEFAULT 0,
			genre_id    INTEGER NULL REFERENCES genres(id),
			director_id INTEGER NULL REFERENCES directors(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_movies_director ON movies (director_id)`,
		`CREATE INDEX IF NOT EXISTS idx_movies_genre ON movies (genre_id)`,
	},
	config.DriverMySQL: {
		`CREATE TABLE IF NOT EXISTS directors (
			id   BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS genres (
			id   BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			name VARCHAR(255) NOT NULL
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
		`CREATE TABLE IF NOT EXISTS movies (
			id          BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
			title       VARCHAR(255) NOT NULL DEFAULT '',
			description TEXT NOT NULL,
			trailer     VARCHAR(255) NOT NULL DEFAULT '',
			year        INT NOT NULL DEFAULT 0,
			rating      DOUBLE NOT NULL DEFAULT 0,
			genre_id    BIGINT NULL,
			director_id BIGINT NULL,
			INDEX idx_movies_director (director_id),
			INDEX idx_movies_genre (genre_id)
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
	},
}

// Migrate creates the catalog tables for the given driver.  Statements are
// idempotent so calling it against an existing schema is harmless.
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	stmts, ok := schemaDDL[driver]
	if !ok {
		return fmt.Errorf("no schema for driver %q", driver)
	}
	for _, ddl := range stmts {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
