// Package config loads the timeclock configuration file and applies
// environment-variable overrides on top of it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/agencyops/timeclock/internal/capture"
	"gopkg.in/yaml.v3"
)

// HTTPConfig holds settings for the serve command.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// Config is the full timeclock configuration.
type Config struct {
	DBPath      string         `yaml:"db_path"`
	LogUseCases bool           `yaml:"log_use_cases"`
	HTTP        HTTPConfig     `yaml:"http"`
	Capture     capture.Config `yaml:"capture"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		DBPath:  "",
		HTTP:    HTTPConfig{Addr: ":8734"},
		Capture: capture.DefaultConfig(),
	}
}

// DefaultPath returns ~/.timeclock/config.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".timeclock", "config.yaml"), nil
}

// Load reads the config file at path (or the default path when path is
// empty), fills in defaults for anything unset, and applies
// environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("reading config file: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, fmt.Errorf("finding home directory: %w", err)
		}
		cfg.DBPath = filepath.Join(home, ".timeclock", "timeclock.db")
	}

	if v := os.Getenv("TIMECLOCK_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("TIMECLOCK_HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("TIMECLOCK_LOG_USE_CASES"); v != "" {
		cfg.LogUseCases = v == "1" || v == "true"
	}
	cfg.Capture = capture.LoadConfig(cfg.Capture)

	return cfg, nil
}
