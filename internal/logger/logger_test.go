package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/chronicle/internal/config"
)

func TestSetupTo_Production(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	var buf bytes.Buffer
	log := SetupTo(&config.Config{Environment: "production", LogLevel: slog.LevelInfo}, &buf)

	WithRequestID(log, "abc").Info("Request completed", "status", 200)
	log.Debug("hidden")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "Request completed", entry["msg"])
	assert.Equal(t, "abc", entry["request_id"])
	assert.EqualValues(t, 200, entry["status"])
}

func TestSetupTo_Development(t *testing.T) {
	defer slog.SetDefault(slog.Default())

	var buf bytes.Buffer
	SetupTo(&config.Config{Environment: "development", LogLevel: slog.LevelDebug}, &buf)

	slog.Debug("Narration started", "key", "rome")

	out := buf.String()
	assert.True(t, strings.Contains(out, "msg=\"Narration started\""), out)
	assert.Contains(t, out, "key=rome")
}
