package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	// StorageDriver selects the session store: "redis" or "sqlite".
	StorageDriver string
	RedisURL      string
	SQLitePath    string
	DataDir       string
	SessionTTL    time.Duration
	// WatchEras reloads the era files in DataDir/eras when they change.
	WatchEras bool

	// RateLimit is the sustained number of API requests per second; 0 disables limiting.
	RateLimit float64
	RateBurst int

	// NarrationSeed makes narrations reproducible when set.
	NarrationSeed *uint64
	// SpeechCommand is an external text-to-speech command line, e.g. "espeak -s 150".
	SpeechCommand string
	// APIBaseURL is where the console finds the API.
	APIBaseURL string
	// CORSOrigins are the browser origins allowed to call the API.
	CORSOrigins []string
	// MCPAddr serves the MCP server over HTTP when set; stdio otherwise.
	MCPAddr string
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first when present; real environment
// variables take precedence over it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),
		LogLevel:      parseLogLevel(getEnv("LOG_LEVEL", "info")),
		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", "redis")),
		RedisURL:      getEnv("REDIS_URL", "localhost:6379"),
		DataDir:       getEnv("DATA_DIR", "./data"),
		SpeechCommand: getEnv("SPEECH_COMMAND", ""),
		APIBaseURL:    strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:8080"), "/"),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		MCPAddr:       getEnv("MCP_ADDR", ""),
	}

	switch cfg.StorageDriver {
	case "redis", "sqlite":
	default:
		return nil, fmt.Errorf("invalid STORAGE_DRIVER: %q (want redis or sqlite)", cfg.StorageDriver)
	}
	cfg.SQLitePath = getEnv("SQLITE_PATH", filepath.Join(cfg.DataDir, "chronicle.db"))

	watch, err := strconv.ParseBool(getEnv("WATCH_ERAS", "true"))
	if err != nil {
		return nil, fmt.Errorf("invalid WATCH_ERAS: %w", err)
	}
	cfg.WatchEras = watch

	rateLimit, err := strconv.ParseFloat(getEnv("RATE_LIMIT", "20"), 64)
	if err != nil || rateLimit < 0 {
		return nil, fmt.Errorf("invalid RATE_LIMIT: %q", os.Getenv("RATE_LIMIT"))
	}
	cfg.RateLimit = rateLimit

	burst, err := strconv.Atoi(getEnv("RATE_BURST", "40"))
	if err != nil || burst < 1 {
		return nil, fmt.Errorf("invalid RATE_BURST: %q", os.Getenv("RATE_BURST"))
	}
	cfg.RateBurst = burst

	ttl, err := time.ParseDuration(getEnv("SESSION_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("invalid SESSION_TTL: must be positive, got %s", ttl)
	}
	cfg.SessionTTL = ttl

	if raw := getEnv("NARRATION_SEED", ""); raw != "" {
		seed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid NARRATION_SEED: %w", err)
		}
		cfg.NarrationSeed = &seed
	}

	return cfg, nil
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
