package config // package config loads application configuration from environment variables

import (
	"errors"  // errors builds validation failures
	"fmt"     // fmt formats validation messages
	"os"      // os provides access to environment variables
	"strings" // strings normalizes the driver name
)

// Supported values for DB_DRIVER.
const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Only the MySQL fields are required, and only when
// DB_DRIVER selects MySQL; everything else falls back to a default that runs
// the catalog fully in memory.
type Config struct {
	Env         string // application environment (e.g. "dev", "prod")
	Port        string // HTTP port to listen on
	DBDriver    string // "sqlite" (default, in-memory) or "mysql"
	SQLiteDSN   string // DSN handed to the sqlite driver
	DBUser      string // database username (mysql)
	DBPass      string // database password (optional)
	DBHost      string // database host address (mysql)
	DBPort      string // database port number (mysql)
	DBName      string // database name (mysql)
	FixturePath string // optional path to a fixture YAML file; empty uses the embedded dataset
}

// Load reads configuration values from environment variables and returns a
// Config.  Call Validate before using the result to open a database.
func Load() Config {
	return Config{
		Env:         envStr("APP_ENV", "dev"),                                 // environment (dev/test/prod)
		Port:        envStr("APP_PORT", "8080"),                               // port to bind the HTTP server
		DBDriver:    strings.ToLower(envStr("DB_DRIVER", DriverSQLite)),       // storage engine
		SQLiteDSN:   envStr("SQLITE_DSN", ":memory:"),                         // in-memory by default
		DBUser:      os.Getenv("DB_USER"),                                     // database user
		DBPass:      os.Getenv("DB_PASS"),                                     // database password (empty allowed)
		DBHost:      envStr("DB_HOST", "127.0.0.1"),                           // database host
		DBPort:      envStr("DB_PORT", "3306"),                                // database port
		DBName:      os.Getenv("DB_NAME"),                                     // database name
		FixturePath: os.Getenv("FIXTURE_PATH"),                                // fixture override
	}
}

// Validate reports configuration that cannot be used to start the service.
func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("APP_PORT must not be empty")
	}
	switch c.DBDriver {
	case DriverSQLite:
		if c.SQLiteDSN == "" {
			return errors.New("SQLITE_DSN must not be empty")
		}
	case DriverMySQL:
		var missing []string
		if c.DBUser == "" {
			missing = append(missing, "DB_USER")
		}
		if c.DBName == "" {
			missing = append(missing, "DB_NAME")
		}
		if len(missing) > 0 {
			return fmt.Errorf("missing required env var(s) for mysql: %s", strings.Join(missing, ", "))
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	return nil
}
