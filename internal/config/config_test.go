package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.DataDir)
	assert.Equal(t, "https://aviationweather.gov/api/data", cfg.BaseURL)
	assert.Equal(t, 10*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 3, cfg.FetchRetries)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("FLIGHTBRIEF_DATA_DIR", "/tmp/fb-test")
	t.Setenv("FLIGHTBRIEF_BASE_URL", "http://localhost:8181/api/data")
	t.Setenv("FLIGHTBRIEF_CACHE_TTL", "5m")
	t.Setenv("FLIGHTBRIEF_FETCH_TIMEOUT", "10s")
	t.Setenv("FLIGHTBRIEF_FETCH_RETRIES", "1")
	t.Setenv("FLIGHTBRIEF_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/fb-test", cfg.DataDir)
	assert.Equal(t, "http://localhost:8181/api/data", cfg.BaseURL)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 1, cfg.FetchRetries)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("FLIGHTBRIEF_CACHE_TTL", "never")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_NegativeRetries(t *testing.T) {
	t.Setenv("FLIGHTBRIEF_FETCH_RETRIES", "-1")
	_, err := Load()
	assert.Error(t, err)
}
