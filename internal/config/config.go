package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all application configuration.
// Values are loaded from environment variables with sensible defaults.
type Config struct {
	// Backend
	APIBaseURL  string
	HTTPTimeout time.Duration // 0 means no timeout

	// Resilience
	MaxRetries     int
	InitialBackoff time.Duration

	// Session
	SessionFile string

	// UI
	FlashTTL time.Duration

	// Logging
	LogLevel string
	LogFile  string

	// Observability
	OTLPEndpoint string
	OpsAddr      string // empty disables the ops HTTP server
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	dir := defaultDir()

	return &Config{
		APIBaseURL:  getEnv("API_BASE_URL", "http://localhost:8080/api"),
		HTTPTimeout: getEnvDuration("HTTP_TIMEOUT", 0),

		MaxRetries:     getEnvInt("MAX_RETRIES", 0),
		InitialBackoff: getEnvDuration("INITIAL_BACKOFF", 100*time.Millisecond),

		SessionFile: getEnv("SESSION_FILE", filepath.Join(dir, "session.json")),

		FlashTTL: getEnvDuration("FLASH_TTL", 3*time.Second),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", filepath.Join(dir, "luxe.log")),

		OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OpsAddr:      getEnv("OPS_ADDR", ""),
	}
}

// defaultDir is the per-user config directory for the client.
func defaultDir() string {
	if base, err := os.UserConfigDir(); err == nil {
		return filepath.Join(base, "luxe")
	}
	return ".luxe"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
