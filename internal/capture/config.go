package capture

import (
	"os"
	"strconv"
)

// Config holds configuration for the capture-gate subsystem.
type Config struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint"`
	TimeoutMs int    `yaml:"timeout_ms"`
	LogCalls  bool   `yaml:"log_calls"`
}

// DefaultConfig returns a Config with sensible defaults. Capture is
// disabled by default so a standalone install works without a
// monitoring agent.
func DefaultConfig() Config {
	return Config{
		Enabled:   false,
		Endpoint:  "http://localhost:9823",
		TimeoutMs: 10000,
		LogCalls:  false,
	}
}

// LoadConfig applies environment-variable overrides on top of base,
// falling back to defaults for any unset values.
func LoadConfig(base Config) Config {
	cfg := base

	if v := os.Getenv("TIMECLOCK_CAPTURE_ENABLED"); v != "" {
		cfg.Enabled, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("TIMECLOCK_CAPTURE_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("TIMECLOCK_CAPTURE_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TimeoutMs = n
		}
	}
	if v := os.Getenv("TIMECLOCK_CAPTURE_LOG_CALLS"); v != "" {
		cfg.LogCalls, _ = strconv.ParseBool(v)
	}

	return cfg
}
