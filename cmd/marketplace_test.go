package cmd

import (
	"embed"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentmarket/agent-market/internal/config"
	"github.com/agentmarket/agent-market/internal/i18n"
	"github.com/agentmarket/agent-market/internal/registry"
)

var emptyLocaleFS embed.FS

func setupCmdTest(t *testing.T) {
	t.Helper()
	// An empty bundle makes i18n.T return message IDs, which is enough for
	// asserting which message a command produced
	require.NoError(t, i18n.Init(emptyLocaleFS, "en-US"))
	config.SetBaseDir(t.TempDir())
	t.Cleanup(func() { config.SetBaseDir("") })
}

func writeMarketplaceDir(t *testing.T, name string) string {
	t.Helper()
	dir := t.TempDir()

	pluginMeta := filepath.Join(dir, "plugins", "alpha", ".claude-plugin")
	require.NoError(t, os.MkdirAll(pluginMeta, 0o755))
	plugin, err := json.Marshal(map[string]any{
		"name":        "alpha",
		"description": "a plugin",
		"version":     "1.0.0",
		"license":     "MIT",
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(pluginMeta, "plugin.json"), plugin, 0o644))

	meta := filepath.Join(dir, ".claude-plugin")
	require.NoError(t, os.MkdirAll(meta, 0o755))
	manifest, err := json.Marshal(map[string]any{
		"name":  name,
		"owner": map[string]any{"name": "tester"},
		"plugins": []map[string]any{
			{"name": "alpha", "source": "plugins/alpha"},
		},
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(meta, "marketplace.json"), manifest, 0o644))

	return dir
}

func TestAddDirectoryMarketplace(t *testing.T) {
	setupCmdTest(t)

	dir := writeMarketplaceDir(t, "dir-market")
	require.NoError(t, addDirectoryMarketplace(dir))

	mp, err := registry.GetRegistry().Get("dir-market")
	require.NoError(t, err)
	require.NotNil(t, mp)
	assert.Equal(t, "directory", mp.Source.Source)
}

func TestAddDirectoryMarketplace_DuplicateBeforeValidation(t *testing.T) {
	setupCmdTest(t)

	dir := writeMarketplaceDir(t, "dup-market")
	require.NoError(t, addDirectoryMarketplace(dir))

	// Break the plugin so re-validation would fail; the duplicate check
	// must fire first and report AlreadyExists, not a validation failure
	require.NoError(t, os.RemoveAll(filepath.Join(dir, "plugins")))

	err := addDirectoryMarketplace(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AlreadyExists")
	assert.NotContains(t, err.Error(), "ValidateFailed")
}
