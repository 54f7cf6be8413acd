package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEngineDefaults(t *testing.T) {
	cfg, err := LoadEngine()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.APIBaseURL)
	assert.Equal(t, 300*time.Millisecond, cfg.DebounceWindow)
	assert.Equal(t, 3, cfg.MinSearchLen)
	assert.Equal(t, 5*time.Minute, cfg.StaleTime)
	assert.Equal(t, 30*time.Minute, cfg.Retention)
	assert.Equal(t, 150*time.Millisecond, cfg.PrefetchDelay)
	assert.Equal(t, 25, cfg.PageSize)
}

func TestLoadEngineOverrides(t *testing.T) {
	t.Setenv("API_BASE_URL", "http://backend:9000")
	t.Setenv("DEBOUNCE_WINDOW", "150ms")
	t.Setenv("PAGE_SIZE", "50")

	cfg, err := LoadEngine()
	require.NoError(t, err)
	assert.Equal(t, "http://backend:9000", cfg.APIBaseURL)
	assert.Equal(t, 150*time.Millisecond, cfg.DebounceWindow)
	assert.Equal(t, 50, cfg.PageSize)
}

func TestLoadServerDefaults(t *testing.T) {
	cfg, err := LoadServer()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, 500, cfg.DatasetSize)
}
