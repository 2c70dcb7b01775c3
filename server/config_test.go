package server

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, "/Index", cfg.Server.Path)
	assert.Equal(t, 2, cfg.Defaults.UUIDSize)
}

func TestLoadConfigOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  listen: 127.0.0.1:9000
  writeTimeout: 90s
  formatContentType: true
callback:
  host: editor.example.org:8443
  scheme: https
defaults:
  uuidSize: 4
`), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Listen)
	assert.Equal(t, "/Index", cfg.Server.Path)
	assert.Equal(t, 90*time.Second, cfg.Server.WriteTimeout.Value())
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout.Value())
	assert.True(t, cfg.Server.FormatContentType)
	assert.Equal(t, "https", cfg.Callback.Scheme)
	assert.Equal(t, "/3MEditor/Services", cfg.Callback.Path)
	assert.Equal(t, 4, cfg.Defaults.UUIDSize)
}

func TestLoadConfigErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("server:\n  readTimeout: soon\n"), 0o600))
	_, err = LoadConfig(bad)
	assert.ErrorContains(t, err, "invalid duration")

	scheme := filepath.Join(dir, "scheme.yaml")
	require.NoError(t, os.WriteFile(scheme, []byte("callback:\n  scheme: ftp\n"), 0o600))
	_, err = LoadConfig(scheme)
	assert.ErrorContains(t, err, "callback.scheme")
}
