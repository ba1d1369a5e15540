package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManagerCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	t.Setenv("TRISHARE_CONFIG", path)

	m, err := NewManager()
	require.NoError(t, err)

	cfg := m.Get()
	assert.Equal(t, "1.0.0", cfg.Version)
	assert.Equal(t, "text", cfg.Defaults.OutputFormat)
	assert.True(t, cfg.Security.AutoVerify)

	// Default config was written to disk.
	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestManagerRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	t.Setenv("TRISHARE_CONFIG", path)

	m, err := NewManager()
	require.NoError(t, err)

	cfg := m.Get()
	cfg.Defaults.OutputFormat = "json"
	cfg.Storage.AutoSave = true
	require.NoError(t, m.Save())

	reloaded, err := NewManager()
	require.NoError(t, err)
	assert.Equal(t, "json", reloaded.Get().Defaults.OutputFormat)
	assert.True(t, reloaded.Get().Storage.AutoSave)
}

func TestStorePathExpandsHome(t *testing.T) {
	t.Setenv("TRISHARE_CONFIG", filepath.Join(t.TempDir(), "config.json"))

	m, err := NewManager()
	require.NoError(t, err)

	m.Get().Storage.StorePath = "~/.trishare/shares"
	path, err := m.StorePath()
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".trishare/shares"), path)

	m.Get().Storage.StorePath = "/var/lib/trishare"
	path, err = m.StorePath()
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/trishare", path)
}
