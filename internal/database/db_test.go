package database

import (
	"context"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/movie-catalog/internal/config"
)

func TestOpenSQLiteCreatesTables(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, config.Config{DBDriver: config.DriverSQLite, SQLiteDSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	for _, table := range []string{"movies", "directors", "genres"} {
		var name string
		err := db.QueryRowContext(ctx,
			"SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&name)
		require.NoError(t, err, table)
		assert.Equal(t, table, name)
	}
}

func TestOpenSQLiteSharesOneDatabase(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, config.Config{DBDriver: config.DriverSQLite, SQLiteDSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = db.ExecContext(ctx, "INSERT INTO genres (name) VALUES (?)", "Drama")
	require.NoError(t, err)

	// A second statement must see the row even though the pool could in
	// principle hand out a fresh connection.
	var n int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM genres").Scan(&n))
	assert.Equal(t, 1, n)
}

func TestMigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, config.Config{DBDriver: config.DriverSQLite, SQLiteDSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	assert.NoError(t, Migrate(ctx, db, config.DriverSQLite))
}

func TestMigrateUnknownDriver(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, config.Config{DBDriver: config.DriverSQLite, SQLiteDSN: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	err = Migrate(ctx, db, "postgres")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres")
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestMySQLDSN(t *testing.T) {
	dsn := mysqlDSN(config.Config{
		DBUser: "catalog", DBPass: "secret", DBHost: "db", DBPort: "3306", DBName: "movies",
	})
	parsed, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "catalog", parsed.User)
	assert.Equal(t, "secret", parsed.Passwd)
	assert.Equal(t, "db:3306", parsed.Addr)
	assert.Equal(t, "movies", parsed.DBName)
	assert.True(t, parsed.ClientFoundRows, "UPDATE must report matched rows")
	assert.True(t, parsed.ParseTime)
}
