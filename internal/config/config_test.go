package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_DefaultsAndFile(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db"
user = "barber"
dbname = "turnos"

[schedule]
opening_time = "9:00"
interval_minutes = 60

[cors]
allowed_origins = ["http://localhost:5173"]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 15, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "09:00", cfg.Schedule.OpeningTime, "time is normalized")
	assert.Equal(t, "20:00", cfg.Schedule.ClosingTime)
	assert.Equal(t, 360, cfg.Schedule.LeadTimeMinutes)
	assert.Equal(t, 8*time.Hour, cfg.Admin.SessionTTL())
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "host=db port=5432 user=barber password= dbname=turnos sslmode=disable", cfg.Database.DSN())

	defaults := cfg.Schedule.Defaults()
	assert.Equal(t, types.TimeString("09:00"), defaults.OpeningTime)
	assert.Equal(t, 60, defaults.IntervalMinutes)

	loc, err := cfg.Schedule.Location()
	require.NoError(t, err)
	assert.Equal(t, "America/Argentina/Buenos_Aires", loc.String())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$hash")
	t.Setenv("REDIS_PASSWORD", "redis-secret")
	t.Setenv("HTTP_PORT", "8181")

	cfg, err := Load(writeConfig(t, `[database]
password = "from-file"
`))
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, "$2a$10$hash", cfg.Admin.PasswordHash)
	assert.Equal(t, "redis-secret", cfg.Redis.Password)
	assert.Equal(t, 8181, cfg.Server.HTTPPort)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "interval", body: "[schedule]\ninterval_minutes = 0\n"},
		{name: "bounds", body: "[schedule]\nopening_time = \"20:00\"\nclosing_time = \"10:00\"\n"},
		{name: "bad time", body: "[schedule]\nopening_time = \"diez\"\n"},
		{name: "timezone", body: "[schedule]\ntimezone = \"Mars/Olympus\"\n"},
		{name: "port", body: "[server]\nhttp_port = 70000\n"},
		{name: "session ttl", body: "[admin]\nsession_ttl_minutes = 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}
