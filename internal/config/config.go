package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds server settings and the EAN affiliate credentials, loaded
// from the environment (with optional .env file support). Credentials
// are passed explicitly into the client; nothing reads them from ambient
// process state after Load.
type Config struct {
	Addr     string
	LogLevel slog.Level

	EANHost     string
	EANCID      string
	EANAPIKey   string
	EANMinorRev string
	EANTimeout  time.Duration
}

// Load reads the .env file (if any) and the environment. CID and API key
// are required; Load fails without them.
func Load() (*Config, error) {
	// Missing .env just means the system environment is used directly.
	_ = godotenv.Load()

	cfg := &Config{
		Addr:     getEnv("ADDR", ":8080"),
		LogLevel: parseLevel(getEnv("LOG_LEVEL", "info")),

		EANHost:     getEnv("EAN_HOST", ""),
		EANCID:      os.Getenv("EAN_CID"),
		EANAPIKey:   os.Getenv("EAN_API_KEY"),
		EANMinorRev: getEnv("EAN_MINOR_REV", "30"),
		EANTimeout:  getEnvDuration("EAN_TIMEOUT", 30*time.Second),
	}

	if cfg.EANCID == "" {
		return nil, fmt.Errorf("EAN_CID is required")
	}
	if cfg.EANAPIKey == "" {
		return nil, fmt.Errorf("EAN_API_KEY is required")
	}

	return cfg, nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
