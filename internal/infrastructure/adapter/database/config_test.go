package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPostgresConfig() *Config {
	config := DefaultConfig()
	config.Username = "app"
	config.Password = "secret"
	return config
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid postgres", func(c *Config) {}, ""},
		{"valid sqlite", func(c *Config) { c.Driver = DriverSQLite; c.Username = "" }, ""},
		{"unknown driver", func(c *Config) { c.Driver = "mysql" }, "unsupported database driver"},
		{"missing host", func(c *Config) { c.Host = "" }, "host is required"},
		{"bad port", func(c *Config) { c.Port = 70000 }, "invalid port number"},
		{"missing username", func(c *Config) { c.Username = "" }, "username is required"},
		{"missing password", func(c *Config) { c.Password = "" }, "password is required"},
		{"missing name", func(c *Config) { c.Database = "" }, "name is required"},
		{"bad ssl mode", func(c *Config) { c.SSLMode = "sometimes" }, "invalid SSL mode"},
		{"empty sqlite path", func(c *Config) { c.Driver = DriverSQLite; c.Path = " " }, "sqlite path is required"},
		{"no open conns", func(c *Config) { c.MaxOpenConns = 0 }, "max open connections"},
		{"no idle conns", func(c *Config) { c.MaxIdleConns = 0 }, "max idle connections"},
		{"no query timeout", func(c *Config) { c.QueryTimeout = 0 }, "query timeout"},
		{"no retry attempts", func(c *Config) { c.RetryAttempts = 0 }, "retry attempts"},
		{"negative retry delay", func(c *Config) { c.RetryDelay = -time.Second }, "retry delay"},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "invalid database log level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := validPostgresConfig()
			tt.mutate(config)

			err := config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestConfig_DSN(t *testing.T) {
	t.Run("postgres", func(t *testing.T) {
		config := validPostgresConfig()
		assert.Equal(t,
			"host=localhost port=5432 user=app password=secret dbname=transaction_processor sslmode=disable",
			config.DSN())
	})

	t.Run("sqlite file", func(t *testing.T) {
		config := DefaultConfig()
		config.Driver = DriverSQLite
		config.Path = "data/tx.db"
		assert.Equal(t, "data/tx.db?_busy_timeout=5000&_foreign_keys=on", config.DSN())
	})

	t.Run("sqlite file with options", func(t *testing.T) {
		config := DefaultConfig()
		config.Driver = DriverSQLite
		config.Path = "tx.db?cache=shared"
		assert.Equal(t, "tx.db?cache=shared&_busy_timeout=5000&_foreign_keys=on", config.DSN())
	})

	t.Run("sqlite in memory", func(t *testing.T) {
		config := DefaultConfig()
		config.Driver = DriverSQLite
		config.Path = MemoryPath
		assert.Equal(t, "file::memory:?_busy_timeout=5000&_foreign_keys=on", config.DSN())
	})
}

func TestConfig_RedactedHidesCredentials(t *testing.T) {
	config := validPostgresConfig()

	redacted := config.Redacted()

	assert.Equal(t, "postgres://localhost:5432/transaction_processor", redacted)
	assert.NotContains(t, redacted, "secret")
	assert.NotContains(t, redacted, "app")
}
