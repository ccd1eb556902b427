package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
server:
  url: http://192.168.1.135:8080
  timeout: 5s
player:
  command: vlc
  args: ["--fullscreen"]
ui:
  splash: false
backend:
  catalog: /srv/asterix.json
  media_root: /srv/videos
  rate_limit: 120
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://192.168.1.135:8080", cfg.Server.URL)
	assert.Equal(t, 5*time.Second, cfg.Server.Timeout)
	assert.Equal(t, "vlc", cfg.Player.Command)
	assert.Equal(t, []string{"--fullscreen"}, cfg.Player.Args)
	assert.False(t, cfg.UI.Splash)
	assert.True(t, cfg.UI.Backdrop)
	assert.Equal(t, "/srv/asterix.json", cfg.Backend.Catalog)
	assert.Equal(t, "/srv/videos", cfg.Backend.MediaRoot)
	assert.Equal(t, 120, cfg.Backend.RateLimit)
	assert.Equal(t, "0.0.0.0:8080", cfg.Backend.Listen)
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, "server:\n  url: http://from-file:8080\n")
	t.Setenv("VIDEOCLUB_SERVER_URL", "http://from-env:9090")
	t.Setenv("VIDEOCLUB_LOGGING_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://from-env:9090", cfg.Server.URL)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultConfig().Server, cfg.Server)
	assert.Zero(t, cfg.Server.Timeout)
	assert.True(t, cfg.UI.Splash)
}

func TestValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.Server.URL = " "
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Server.Timeout = -time.Second
	assert.Error(t, cfg.Validate())

	cfg = DefaultConfig()
	cfg.Backend.RateLimit = -1
	assert.Error(t, cfg.Validate())
}
