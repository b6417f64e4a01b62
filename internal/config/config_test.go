package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("JWT_SECRET_KEY", "jwt-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, []string{"*"}, cfg.App.AllowedOrigins)
	assert.Equal(t, "168h", cfg.JWT.AccessExpiration)
	assert.Equal(t, 15*time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, 100, cfg.RateLimit.MaxRequests)
	assert.Equal(t, time.Hour, cfg.Attendance.StaleSweepInterval)

	policy := cfg.Policy()
	assert.Equal(t, 15, policy.LateThresholdMinutes)
	assert.Equal(t, 4.0, policy.HalfDayHours)
	assert.Equal(t, time.UTC, policy.Location)
}

func TestLoad_AttendanceOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ATTENDANCE_TIMEZONE", "Asia/Jakarta")
	t.Setenv("LATE_THRESHOLD_MINUTES", "5")
	t.Setenv("HALF_DAY_HOURS", "4.5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	policy := cfg.Policy()
	assert.Equal(t, "Asia/Jakarta", policy.Location.String())
	assert.Equal(t, 5, policy.LateThresholdMinutes)
	assert.Equal(t, 4.5, policy.HalfDayHours)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.App.AllowedOrigins)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"missing db password":    {"DB_PASSWORD": "", "JWT_SECRET_KEY": "x"},
		"missing jwt secret":     {"DB_PASSWORD": "x", "JWT_SECRET_KEY": ""},
		"unknown time zone":      {"ATTENDANCE_TIMEZONE": "Mars/Olympus"},
		"late threshold too big": {"LATE_THRESHOLD_MINUTES": "60"},
		"negative threshold":     {"LATE_THRESHOLD_MINUTES": "-1"},
		"zero half day":          {"HALF_DAY_HOURS": "0"},
		"half day over a day":    {"HALF_DAY_HOURS": "25"},
		"malformed half day":     {"HALF_DAY_HOURS": "four"},
		"malformed interval":     {"STALE_SESSION_SWEEP_INTERVAL": "hourly"},
		"malformed port":         {"APP_PORT": "eighty"},
	}

	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			setRequiredEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestDatabaseURL_EscapesCredentials(t *testing.T) {
	cfg := Config{Database: DatabaseConfig{
		Host: "db", Port: 5432, User: "app", Password: "p@ss:word", Name: "attendance", SSLMode: "disable",
	}}

	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/attendance?sslmode=disable", cfg.DatabaseURL())
}
