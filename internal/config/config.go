// Package config reads service settings from environment variables, with a
// .env file in the working directory loaded first when present.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/KARTHI-MAKES/event-booking/internal/database"
	"github.com/KARTHI-MAKES/event-booking/internal/logging"
)

// Catalog source kinds.
const (
	SourceFile     = "file"
	SourceHTTP     = "http"
	SourcePostgres = "postgres"
)

// Config is the full service configuration.
type Config struct {
	Port    string
	WebDir  string
	Logging logging.Config

	CatalogSource string
	CatalogPath   string
	CatalogURL    string

	// RedisAddr enables the shared catalog cache when set.
	RedisAddr       string
	RedisDB         int
	CatalogCacheTTL time.Duration

	SessionIdleTTL time.Duration
	ViewCacheTTL   time.Duration

	DB database.Config
}

// Load reads the configuration. Variables already set in the environment
// take precedence over the .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:   getEnv("PORT", "8080"),
		WebDir: getEnv("WEB_DIR", "./web"),
		Logging: logging.Config{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
		},
		CatalogSource: getEnv("CATALOG_SOURCE", SourceFile),
		CatalogPath:   getEnv("CATALOG_PATH", "./web/events.json"),
		CatalogURL:    getEnv("CATALOG_URL", ""),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		DB: database.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "eventbooking"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
	}

	var err error
	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return Config{}, err
	}
	if cfg.DB.Attempts, err = getInt("DB_CONNECT_ATTEMPTS", 5); err != nil {
		return Config{}, err
	}
	if cfg.DB.RetryDelay, err = getDuration("DB_RETRY_DELAY", 2*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.CatalogCacheTTL, err = getDuration("CATALOG_CACHE_TTL", 5*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.SessionIdleTTL, err = getDuration("SESSION_IDLE_TTL", 30*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.ViewCacheTTL, err = getDuration("VIEW_CACHE_TTL", 2*time.Minute); err != nil {
		return Config{}, err
	}

	switch cfg.CatalogSource {
	case SourceFile, SourcePostgres:
	case SourceHTTP:
		if cfg.CatalogURL == "" {
			return Config{}, fmt.Errorf("CATALOG_URL is required when CATALOG_SOURCE=%s", SourceHTTP)
		}
	default:
		return Config{}, fmt.Errorf("unknown CATALOG_SOURCE %q", cfg.CatalogSource)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}
