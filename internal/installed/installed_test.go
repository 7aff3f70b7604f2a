package installed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentmarket/agent-market/internal/config"
)

func testManager(t *testing.T) *Manager {
	t.Helper()
	dir := t.TempDir()
	config.SetBaseDir(dir)
	t.Cleanup(func() { config.SetBaseDir("") })
	return NewManager(filepath.Join(dir, "installed.json"))
}

func globalEntry(version string) InstalledPluginEntry {
	return InstalledPluginEntry{
		Scope:       "global",
		Version:     version,
		InstalledAt: "2026-01-02T03:04:05Z",
		LastUpdated: "2026-01-02T03:04:05Z",
		Source: PluginSource{
			Marketplace: "tools",
			Source:      "plugins/alpha",
		},
		InstallPath: "/tmp/plugins/tools/alpha",
	}
}

func TestManager_AddAndGet(t *testing.T) {
	m := testManager(t)

	require.NoError(t, m.Add("alpha@tools", globalEntry("1.0.0")))

	entries, err := m.Get("alpha@tools")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "1.0.0", entries[0].Version)

	exists, err := m.Exists("alpha@tools")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = m.Exists("beta@tools")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestManager_AddReplacesSameScope(t *testing.T) {
	m := testManager(t)

	require.NoError(t, m.Add("alpha@tools", globalEntry("1.0.0")))
	require.NoError(t, m.Add("alpha@tools", globalEntry("2.0.0")))

	entries, err := m.Get("alpha@tools")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "2.0.0", entries[0].Version)
}

func TestManager_ScopedEntries(t *testing.T) {
	m := testManager(t)

	project := globalEntry("1.0.0")
	project.Scope = "project"
	project.ProjectPath = "/work/app"

	require.NoError(t, m.Add("alpha@tools", globalEntry("1.0.0")))
	require.NoError(t, m.Add("alpha@tools", project))

	all, err := m.GetByScope("alpha@tools", "all", "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	global, err := m.GetByScope("alpha@tools", "global", "")
	require.NoError(t, err)
	require.Len(t, global, 1)
	assert.Equal(t, "global", global[0].Scope)

	proj, err := m.GetByScope("alpha@tools", "project", "/work/app")
	require.NoError(t, err)
	require.Len(t, proj, 1)

	otherProj, err := m.GetByScope("alpha@tools", "project", "/work/other")
	require.NoError(t, err)
	assert.Empty(t, otherProj)
}

func TestManager_RemoveByScope(t *testing.T) {
	m := testManager(t)

	project := globalEntry("1.0.0")
	project.Scope = "project"
	project.ProjectPath = "/work/app"

	require.NoError(t, m.Add("alpha@tools", globalEntry("1.0.0")))
	require.NoError(t, m.Add("alpha@tools", project))

	removed, err := m.RemoveByScope("alpha@tools", "global", "")
	require.NoError(t, err)
	require.Len(t, removed, 1)
	assert.Equal(t, "global", removed[0].Scope)

	remaining, err := m.Get("alpha@tools")
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "project", remaining[0].Scope)

	removed, err = m.RemoveByScope("alpha@tools", "all", "")
	require.NoError(t, err)
	assert.Len(t, removed, 1)

	exists, err := m.Exists("alpha@tools")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestManager_LoadMissingFile(t *testing.T) {
	m := testManager(t)

	plugins, err := m.Load()
	require.NoError(t, err)
	assert.Equal(t, 1, plugins.Version)
	assert.Empty(t, plugins.Plugins)
}

func TestCopyDir(t *testing.T) {
	src := t.TempDir()
	dst := filepath.Join(t.TempDir(), "copy")

	require.NoError(t, os.MkdirAll(filepath.Join(src, "nested"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "top.txt"), []byte("top"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "nested", "deep.txt"), []byte("deep"), 0o600))

	require.NoError(t, CopyDir(src, dst))

	top, err := os.ReadFile(filepath.Join(dst, "top.txt"))
	require.NoError(t, err)
	assert.Equal(t, "top", string(top))

	deep, err := os.ReadFile(filepath.Join(dst, "nested", "deep.txt"))
	require.NoError(t, err)
	assert.Equal(t, "deep", string(deep))

	info, err := os.Stat(filepath.Join(dst, "nested", "deep.txt"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
