package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":8734", cfg.HTTP.Addr)
	assert.False(t, cfg.Capture.Enabled)
	assert.NotEmpty(t, cfg.DBPath)
}

func TestLoad_FileValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `db_path: /var/lib/timeclock/tc.db
http:
  addr: ":9001"
capture:
  enabled: true
  endpoint: http://agent:9823
  timeout_ms: 3000
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/timeclock/tc.db", cfg.DBPath)
	assert.Equal(t, ":9001", cfg.HTTP.Addr)
	assert.True(t, cfg.Capture.Enabled)
	assert.Equal(t, "http://agent:9823", cfg.Capture.Endpoint)
	assert.Equal(t, 3000, cfg.Capture.TimeoutMs)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_path: /from/file.db\n"), 0644))

	t.Setenv("TIMECLOCK_DB", "/from/env.db")
	t.Setenv("TIMECLOCK_HTTP_ADDR", ":7000")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/from/env.db", cfg.DBPath)
	assert.Equal(t, ":7000", cfg.HTTP.Addr)
}

func TestLoad_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":: not yaml ::"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}
