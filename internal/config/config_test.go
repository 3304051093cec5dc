package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db"
user = "clinic"
dbname = "clinic"

[booking]
move_auto_substitute = true
`)
	t.Setenv("DB_PASSWORD", "secret")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.True(t, cfg.Booking.MoveAutoSubstitute)
	assert.Equal(t, 30, cfg.Availability.DayIntervalMinutes)
	assert.Equal(t, 15, cfg.Availability.TeamIntervalMinutes)
	assert.Contains(t, cfg.Database.DSN(), "password=secret")
}

func TestLoad_InvalidValues(t *testing.T) {
	path := writeConfig(t, `
[kafka]
enabled = true
`)

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate_SlotCacheWithinRangeLimit(t *testing.T) {
	tests := []struct {
		name      string
		daysAhead int
		maxRange  int
		wantErr   bool
	}{
		{name: "в пределах лимита", daysAhead: 14, maxRange: 62},
		{name: "ровно лимит", daysAhead: 62, maxRange: 62},
		{name: "больше лимита", daysAhead: 90, maxRange: 62, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			cfg.SlotCache.Enabled = true
			cfg.SlotCache.DaysAhead = tt.daysAhead
			cfg.Availability.MaxRangeDays = tt.maxRange

			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
