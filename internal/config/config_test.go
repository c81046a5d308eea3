package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 7, cfg.Schedule.WindowDays)
	assert.Equal(t, 9, cfg.Schedule.OpenHour)
	assert.Equal(t, 18, cfg.Schedule.CloseHour)
	assert.Equal(t, uint64(3), cfg.PersistMaxRetries)
	assert.False(t, cfg.Inngest.Enabled())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("OPEN_HOUR", "7")
	t.Setenv("CLOSE_HOUR", "22")
	t.Setenv("CLUB_TIMEZONE", "Europe/Copenhagen")
	t.Setenv("INNGEST_DEV", "true")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 7, cfg.Schedule.OpenHour)
	assert.Equal(t, 22, cfg.Schedule.CloseHour)
	assert.Equal(t, "Europe/Copenhagen", cfg.Location().String())
	assert.True(t, cfg.Inngest.Enabled())
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"closing before opening", "CLOSE_HOUR", "8"},
		{"non numeric window", "SLOT_WINDOW_DAYS", "week"},
		{"zero window", "SLOT_WINDOW_DAYS", "0"},
		{"unknown zone", "CLUB_TIMEZONE", "Mars/Olympus"},
		{"bad log level", "LOG_LEVEL", "chatty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
