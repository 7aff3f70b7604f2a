package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTempBaseDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	SetBaseDir(dir)
	t.Cleanup(func() { SetBaseDir("") })
	return dir
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "auto", cfg.Locale)
	assert.Equal(t, ShareIgnore, cfg.Host.Registry.Share)
	assert.True(t, cfg.Validation.StrictDefault)
	assert.NotNil(t, cfg.Marketplaces)
}

func TestLoad_MissingFile(t *testing.T) {
	useTempBaseDir(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "auto", cfg.Locale)
	assert.Empty(t, cfg.Marketplaces)
}

func TestSaveAndLoad(t *testing.T) {
	useTempBaseDir(t)

	cfg := NewConfig()
	cfg.Locale = "en-US"
	cfg.Host.Registry.Share = ShareMerge
	cfg.Validation.StrictDefault = false
	cfg.Marketplaces["my-market"] = Marketplace{
		Source:          MarketplaceSource{Source: "git", URL: "https://example.com/repo.git"},
		InstallLocation: "/tmp/my-market",
		LastUpdated:     "2026-01-02T03:04:05Z",
	}

	require.NoError(t, Save(cfg))

	loaded, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "en-US", loaded.Locale)
	assert.Equal(t, ShareMerge, loaded.Host.Registry.Share)
	assert.False(t, loaded.Validation.StrictDefault)
	require.Contains(t, loaded.Marketplaces, "my-market")
	assert.Equal(t, "https://example.com/repo.git", loaded.Marketplaces["my-market"].Source.URL)
}

func TestLoad_FillsMissingFields(t *testing.T) {
	dir := useTempBaseDir(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{}`), 0o644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "auto", cfg.Locale)
	assert.Equal(t, ShareIgnore, cfg.Host.Registry.Share)
	assert.NotNil(t, cfg.Marketplaces)
}

func TestLoad_BadJSON(t *testing.T) {
	dir := useTempBaseDir(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.json"), []byte(`{broken`), 0o644))

	_, err := Load()
	assert.Error(t, err)
}

func TestPaths(t *testing.T) {
	dir := useTempBaseDir(t)

	assert.Equal(t, filepath.Join(dir, "config.json"), ConfigPath())
	assert.Equal(t, filepath.Join(dir, "installed.json"), InstalledPath())
	assert.Equal(t, filepath.Join(dir, "marketplaces"), MarketplacesDir())
	assert.Equal(t, filepath.Join(dir, "plugins"), PluginsDir())
	assert.Equal(t, filepath.Join(dir, "cache"), PluginCacheDir())
}
