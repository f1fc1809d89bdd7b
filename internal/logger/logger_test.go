package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/sentry-coach/internal/config"
)

func TestSetup_ProductionJSON(t *testing.T) {
	var buf bytes.Buffer
	log := setup(&config.Config{Environment: "production", LogLevel: slog.LevelInfo}, &buf)

	WithError(WithSessionID(log, "abc"), errors.New("boom")).Info("turn failed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "turn failed", entry["msg"])
	assert.Equal(t, "abc", entry["session_id"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "sentry-coach", entry["service"])
}

func TestSetup_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log := setup(&config.Config{Environment: "development", LogLevel: slog.LevelWarn}, &buf)

	log.Info("hidden")
	assert.Zero(t, buf.Len())

	WithRequestID(log, "req-1").Warn("shown")
	assert.Contains(t, buf.String(), "request_id=req-1")
}
