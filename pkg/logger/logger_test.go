package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(&buf, "warn")
	require.NoError(t, err)

	log.Info("GetAvailability: date=%s", "2024-03-10")
	log.Warn("GetAvailability: working hours missing for day=%d", 0)

	out := buf.String()
	assert.NotContains(t, out, "date=2024-03-10")
	assert.Contains(t, out, "working hours missing for day=0")
	assert.Contains(t, out, "level=WARN")
}

func TestNew_UnknownLevel(t *testing.T) {
	_, err := New("", "verbose")
	assert.Error(t, err)
}
