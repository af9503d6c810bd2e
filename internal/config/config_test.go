package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "APP_PORT", "DB_DRIVER", "SQLITE_DSN", "FIXTURE_PATH"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, DriverSQLite, cfg.DBDriver)
	assert.Equal(t, ":memory:", cfg.SQLiteDSN)
	assert.Empty(t, cfg.FixturePath)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "sqlite in memory",
			cfg:  Config{Port: "8080", DBDriver: DriverSQLite, SQLiteDSN: ":memory:"},
		},
		{
			name:    "mysql without credentials",
			cfg:     Config{Port: "8080", DBDriver: DriverMySQL},
			wantErr: "DB_USER, DB_NAME",
		},
		{
			name: "mysql complete",
			cfg:  Config{Port: "8080", DBDriver: DriverMySQL, DBUser: "root", DBName: "catalog"},
		},
		{
			name:    "unknown driver",
			cfg:     Config{Port: "8080", DBDriver: "oracle"},
			wantErr: "unsupported DB_DRIVER",
		},
		{
			name:    "empty port",
			cfg:     Config{DBDriver: DriverSQLite, SQLiteDSN: ":memory:"},
			wantErr: "APP_PORT",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadRateLimitConfigClamps(t *testing.T) {
	t.Setenv("RATE_LIMIT_CAPACITY", "0")
	t.Setenv("RATE_LIMIT_REFILL_INTERVAL", "2s")
	t.Setenv("RATE_LIMIT_TTL", "1s")
	t.Setenv("RATE_LIMIT_ENABLED", "off")

	cfg := LoadRateLimitConfig()
	assert.False(t, cfg.Enabled)
	assert.Equal(t, 1, cfg.Capacity)
	assert.Equal(t, 2*time.Second, cfg.RefillInterval)
	assert.Equal(t, 10*time.Second, cfg.TTL)
	assert.Equal(t, "ip_route", cfg.KeyStrategy)
}

func TestLoadCacheConfigMethods(t *testing.T) {
	t.Setenv("CACHE_METHODS", "get, head,,")
	t.Setenv("CACHE_TTL", "not-a-duration")

	cfg := LoadCacheConfig()
	assert.Equal(t, map[string]bool{"GET": true, "HEAD": true}, cfg.Methods)
	assert.Equal(t, 30*time.Second, cfg.TTL)
}

func TestLoadRedisConfigHostPortWins(t *testing.T) {
	t.Setenv("REDIS_ADDR", "cache:6380")
	t.Setenv("REDIS_HOST", "redis")
	t.Setenv("REDIS_PORT", "6379")
	t.Setenv("REDIS_TLS", "1")

	cfg := LoadRedisConfig()
	assert.Equal(t, "redis:6379", cfg.Addr)
	assert.True(t, cfg.TLS)
}

func TestNewRedisClientDisabled(t *testing.T) {
	client, err := NewRedisClient(RedisConfig{Enabled: false})
	assert.NoError(t, err)
	assert.Nil(t, client)
}

func TestLoadEventsConfig(t *testing.T) {
	t.Setenv("RABBITMQ_URL", "")
	t.Setenv("AMQP_URL", "amqp://user:pw@broker:5672/")
	t.Setenv("EVENTS_ENABLED", "true")

	cfg := LoadEventsConfig()
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "amqp://user:pw@broker:5672/", cfg.URL)
	assert.Equal(t, "catalog.changed", cfg.Queue)
	assert.Equal(t, "logs", cfg.LogDir)
}
