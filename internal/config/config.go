// Package config loads service configuration from the environment,
// with optional .env file support for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the service reads from the environment.
type Config struct {
	Port string

	RoutesAPIKey string
	PlacesAPIKey string

	// Cache backend selection. DatabaseURL wins over RedisAddr wins
	// over DBPath; all empty disables caching.
	DatabaseURL string
	RedisAddr   string
	DBPath      string

	CacheTTL          time.Duration
	RequestsPerMinute int

	LogLevel  string
	LogPretty bool
}

// Load reads configuration from the environment. A missing .env file
// is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	routesKey := strings.TrimSpace(os.Getenv("GOOGLE_ROUTES_API_KEY"))
	if routesKey == "" {
		return nil, fmt.Errorf("config: GOOGLE_ROUTES_API_KEY is required")
	}

	placesKey := strings.TrimSpace(os.Getenv("GOOGLE_PLACES_API_KEY"))
	if placesKey == "" {
		placesKey = routesKey
	}

	ttl, err := durationEnv("CACHE_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}

	rpm, err := intEnv("REQUESTS_PER_MINUTE", 0)
	if err != nil {
		return nil, err
	}
	if rpm < 0 {
		return nil, fmt.Errorf("config: REQUESTS_PER_MINUTE must not be negative, got %d", rpm)
	}

	return &Config{
		Port:              Get("PORT", "8080"),
		RoutesAPIKey:      routesKey,
		PlacesAPIKey:      placesKey,
		DatabaseURL:       strings.TrimSpace(os.Getenv("DATABASE_URL")),
		RedisAddr:         strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		DBPath:            strings.TrimSpace(os.Getenv("DB_PATH")),
		CacheTTL:          ttl,
		RequestsPerMinute: rpm,
		LogLevel:          Get("LOG_LEVEL", "info"),
		LogPretty:         boolEnv("LOG_PRETTY"),
	}, nil
}

// Get returns the env value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be an integer, got %q", key, raw)
	}
	return v, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}

	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be a duration like 24h, got %q", key, raw)
	}
	if v <= 0 {
		return 0, fmt.Errorf("config: %s must be positive, got %q", key, raw)
	}
	return v, nil
}

func boolEnv(key string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(os.Getenv(key)))
	return err == nil && v
}
