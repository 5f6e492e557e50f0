package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
[server]
http_port = 9090

[database]
host = "db"
dbname = "rooms"

[auth]
jwt_secret = "from-file"

[booking]
timezone = "UTC"
notification_required = false
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "db", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "rooms", cfg.Database.DBName)
	assert.Equal(t, 20, cfg.Booking.PageSize)
	assert.Equal(t, 30*time.Minute, cfg.Booking.MinDuration())
	assert.Equal(t, 8*time.Hour, cfg.Booking.MaxDuration())
	assert.False(t, cfg.Booking.NotificationRequired)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	t.Setenv("ROOMBOOKING_AUTH_JWT_SECRET", "from-env")
	t.Setenv("ROOMBOOKING_DATABASE_PASSWORD", "s3cret")
	t.Setenv("ROOMBOOKING_BOOKING_PAGE_SIZE", "50")

	cfg, err := Load(writeConfig(t, sampleConfig))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Auth.JWTSecret)
	assert.Equal(t, "s3cret", cfg.Database.Password)
	assert.Equal(t, 50, cfg.Booking.PageSize)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("ROOMBOOKING_AUTH_JWT_SECRET", "only-env")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.True(t, cfg.Booking.NotificationRequired)
	assert.Equal(t, "Europe/Kyiv", cfg.Booking.Timezone)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "missing jwt secret", mutate: func(c *Config) { c.Auth.JWTSecret = "" }},
		{name: "bad port", mutate: func(c *Config) { c.Server.HTTPPort = 0 }},
		{name: "unknown timezone", mutate: func(c *Config) { c.Booking.Timezone = "Mars/Olympus" }},
		{name: "zero page size", mutate: func(c *Config) { c.Booking.PageSize = 0 }},
		{name: "max below min", mutate: func(c *Config) { c.Booking.MaxDurationMinutes = 10 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Auth.JWTSecret = "secret"
			tt.mutate(cfg)

			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestDatabaseConfig_URL(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss", DBName: "rooms", SSLMode: "disable"}

	assert.Equal(t, "postgres://app:p%40ss@db:5432/rooms?sslmode=disable", d.URL())
	assert.Contains(t, d.DSN(), "dbname=rooms")
}

func TestLoad_IgnoresUnprefixedVariables(t *testing.T) {
	t.Setenv("ROOMBOOKING_AUTH_JWT_SECRET", "secret")
	t.Setenv("USER", "intruder")
	t.Setenv("PORT", "1")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.User)
	assert.Equal(t, 5432, cfg.Database.Port)
}
