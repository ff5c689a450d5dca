package capture

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.Enabled, "capture must be off by default")
	assert.Equal(t, 10000, cfg.TimeoutMs)
	assert.NotEmpty(t, cfg.Endpoint)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("TIMECLOCK_CAPTURE_ENABLED", "true")
	t.Setenv("TIMECLOCK_CAPTURE_ENDPOINT", "http://agent:9000")
	t.Setenv("TIMECLOCK_CAPTURE_TIMEOUT_MS", "2500")
	t.Setenv("TIMECLOCK_CAPTURE_LOG_CALLS", "1")

	cfg := LoadConfig(DefaultConfig())
	assert.True(t, cfg.Enabled)
	assert.Equal(t, "http://agent:9000", cfg.Endpoint)
	assert.Equal(t, 2500, cfg.TimeoutMs)
	assert.True(t, cfg.LogCalls)
}

func TestLoadConfig_IgnoresInvalidValues(t *testing.T) {
	t.Setenv("TIMECLOCK_CAPTURE_TIMEOUT_MS", "-5")

	cfg := LoadConfig(DefaultConfig())
	assert.Equal(t, 10000, cfg.TimeoutMs, "non-positive timeout must fall back to base")
}
