package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stockd.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewDefaultConfig_Valid(t *testing.T) {
	cfg, err := LoadFromFiles()
	require.NoError(t, err)

	assert.Equal(t, 8090, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 5*time.Minute, cfg.Extractor.CacheTTL)
	assert.Equal(t, 2*time.Second, cfg.Refresh.Delay)
	assert.False(t, cfg.Refresh.Enabled)
}

func TestLoadFromFiles_FileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
port = 9001

[extractor]
cache_ttl = "90s"
local_relay_url = "http://relay.internal:9999"
`)

	cfg, err := LoadFromFiles(path)
	require.NoError(t, err)

	assert.Equal(t, 9001, cfg.Server.Port)
	assert.Equal(t, 90*time.Second, cfg.Extractor.CacheTTL)
	assert.Equal(t, "http://relay.internal:9999", cfg.Extractor.LocalRelayURL)
	// Untouched settings keep their defaults.
	assert.Equal(t, "localhost", cfg.Server.Host)
}

func TestLoadFromFiles_LaterFilesWin(t *testing.T) {
	first := writeConfig(t, "[server]\nport = 9001\n")
	second := writeConfig(t, "[server]\nport = 9002\n")

	cfg, err := LoadFromFiles(first, second)
	require.NoError(t, err)
	assert.Equal(t, 9002, cfg.Server.Port)
}

func TestLoadFromFiles_EnvOverridesFile(t *testing.T) {
	t.Setenv("STOCKD_PORT", "9100")
	t.Setenv("STOCKD_LOCAL_RELAY_URL", "http://localhost:7777")

	path := writeConfig(t, "[server]\nport = 9001\n")

	cfg, err := LoadFromFiles(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "http://localhost:7777", cfg.Extractor.LocalRelayURL)
}

func TestLoadFromFiles_InvalidPortRejected(t *testing.T) {
	path := writeConfig(t, "[server]\nport = 99999\n")

	_, err := LoadFromFiles(path)
	assert.Error(t, err)
}

func TestLoadFromFiles_InvalidLogLevelRejected(t *testing.T) {
	path := writeConfig(t, "[logging]\nlevel = \"verbose\"\n")

	_, err := LoadFromFiles(path)
	assert.Error(t, err)
}

func TestLoadFromFiles_MissingFile(t *testing.T) {
	_, err := LoadFromFiles("/nonexistent/stockd.toml")
	assert.Error(t, err)
}

func TestApplyFlagOverrides(t *testing.T) {
	cfg := NewDefaultConfig()

	ApplyFlagOverrides(cfg, 9200, "0.0.0.0")
	assert.Equal(t, 9200, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)

	// Zero values leave the config alone.
	ApplyFlagOverrides(cfg, 0, "")
	assert.Equal(t, 9200, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
}
