package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all tool settings, populated from environment variables.
type Config struct {
	DataDir      string
	BaseURL      string
	CacheTTL     time.Duration
	FetchTimeout time.Duration
	FetchRetries int
	LogLevel     string
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	cacheTTL, err := parseDuration("FLIGHTBRIEF_CACHE_TTL", "10m")
	if err != nil {
		return nil, err
	}

	fetchTimeout, err := parseDuration("FLIGHTBRIEF_FETCH_TIMEOUT", "30s")
	if err != nil {
		return nil, err
	}

	retries, err := strconv.Atoi(envOrDefault("FLIGHTBRIEF_FETCH_RETRIES", "3"))
	if err != nil || retries < 0 {
		return nil, errors.New("invalid FLIGHTBRIEF_FETCH_RETRIES")
	}

	cfg := &Config{
		DataDir:      envOrDefault("FLIGHTBRIEF_DATA_DIR", defaultDataDir()),
		BaseURL:      envOrDefault("FLIGHTBRIEF_BASE_URL", "https://aviationweather.gov/api/data"),
		CacheTTL:     cacheTTL,
		FetchTimeout: fetchTimeout,
		FetchRetries: retries,
		LogLevel:     envOrDefault("FLIGHTBRIEF_LOG_LEVEL", "warn"),
	}

	if cfg.BaseURL == "" {
		return nil, errors.New("FLIGHTBRIEF_BASE_URL is required")
	}
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return d, nil
}

func defaultDataDir() string {
	base, err := os.UserCacheDir()
	if err != nil {
		return "."
	}
	return filepath.Join(base, "flightbrief")
}
