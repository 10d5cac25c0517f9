package config

import (
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"PORT", "ENVIRONMENT", "LOG_LEVEL", "REDIS_URL", "DATA_DIR",
	"SESSION_TTL", "NARRATION_SEED", "SPEECH_COMMAND", "API_BASE_URL", "CORS_ORIGINS",
	"STORAGE_DRIVER", "SQLITE_PATH", "WATCH_ERAS", "RATE_LIMIT", "RATE_BURST", "MCP_ADDR",
}

func clearEnv(t *testing.T) {
	t.Helper()
	// the working directory is the package directory, which has no .env file
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, "localhost:6379", cfg.RedisURL)
	assert.Equal(t, "./data", cfg.DataDir)
	assert.Equal(t, "redis", cfg.StorageDriver)
	assert.Equal(t, filepath.Join("data", "chronicle.db"), cfg.SQLitePath)
	assert.True(t, cfg.WatchEras)
	assert.Equal(t, 20.0, cfg.RateLimit)
	assert.Equal(t, 40, cfg.RateBurst)
	assert.Empty(t, cfg.MCPAddr)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Nil(t, cfg.NarrationSeed)
	assert.Empty(t, cfg.SpeechCommand)
	assert.Equal(t, "http://localhost:8080", cfg.APIBaseURL)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("REDIS_URL", "redis://cache:6379/1")
	t.Setenv("DATA_DIR", "/srv/chronicle")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("NARRATION_SEED", "42")
	t.Setenv("SPEECH_COMMAND", "espeak -s 150")
	t.Setenv("API_BASE_URL", "http://api:8080/")
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("STORAGE_DRIVER", "SQLite")
	t.Setenv("WATCH_ERAS", "false")
	t.Setenv("RATE_LIMIT", "0")
	t.Setenv("RATE_BURST", "5")
	t.Setenv("MCP_ADDR", ":8090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, "redis://cache:6379/1", cfg.RedisURL)
	assert.Equal(t, "/srv/chronicle", cfg.DataDir)
	assert.Equal(t, 90*time.Minute, cfg.SessionTTL)
	require.NotNil(t, cfg.NarrationSeed)
	assert.Equal(t, uint64(42), *cfg.NarrationSeed)
	assert.Equal(t, "espeak -s 150", cfg.SpeechCommand)
	assert.Equal(t, "http://api:8080", cfg.APIBaseURL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, "sqlite", cfg.StorageDriver)
	assert.Equal(t, "/srv/chronicle/chronicle.db", cfg.SQLitePath)
	assert.False(t, cfg.WatchEras)
	assert.Zero(t, cfg.RateLimit)
	assert.Equal(t, 5, cfg.RateBurst)
	assert.Equal(t, ":8090", cfg.MCPAddr)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"SESSION_TTL", "forever"},
		{"SESSION_TTL", "-1h"},
		{"NARRATION_SEED", "-3"},
		{"NARRATION_SEED", "abc"},
		{"STORAGE_DRIVER", "postgres"},
		{"WATCH_ERAS", "sometimes"},
		{"RATE_LIMIT", "-1"},
		{"RATE_LIMIT", "fast"},
		{"RATE_BURST", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.ErrorContains(t, err, tt.key)
		})
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, parseLogLevel(tt.input), tt.input)
	}
}
