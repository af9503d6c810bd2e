package repository

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-catalog/internal/config"
	"github.com/iliyamo/movie-catalog/internal/database"
	"github.com/iliyamo/movie-catalog/internal/model"
)

// newTestDB opens a fresh in-memory catalog with the schema applied.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(context.Background(), config.Config{
		DBDriver:  config.DriverSQLite,
		SQLiteDSN: ":memory:",
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func nullID(id int64) sql.NullInt64 {
	return sql.NullInt64{Int64: id, Valid: true}
}

func int64p(v int64) *int64 { return &v }

// seedMovies inserts a small catalog covering every filter combination.
func seedMovies(t *testing.T, repo *MovieRepo) {
	t.Helper()
	movies := []*model.Movie{
		{ID: 1, Title: "Get Out", Year: 2017, Rating: 7.8, DirectorID: nullID(2), GenreID: nullID(7)},
		{ID: 2, Title: "Us", Year: 2019, Rating: 6.8, DirectorID: nullID(2), GenreID: nullID(7)},
		{ID: 3, Title: "Nope", Year: 2022, Rating: 6.8, DirectorID: nullID(2), GenreID: nullID(6)},
		{ID: 4, Title: "The Shining", Year: 1980, Rating: 8.4, DirectorID: nullID(5), GenreID: nullID(7)},
		{ID: 5, Title: "Untitled", Year: 2024},
	}
	for _, m := range movies {
		require.NoError(t, repo.Insert(context.Background(), m))
	}
}
