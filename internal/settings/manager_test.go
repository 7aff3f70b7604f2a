package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFile(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "settings.json"))
	require.NoError(t, err)
	assert.NotNil(t, s.EnabledPlugins)
	assert.NotNil(t, s.ExtraKnownMarketplaces)
}

func TestEnableDisablePlugin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	require.NoError(t, EnablePlugin(path, "alpha@tools"))

	s, err := Load(path)
	require.NoError(t, err)
	assert.True(t, s.EnabledPlugins["alpha@tools"])

	require.NoError(t, DisablePlugin(path, "alpha@tools"))

	s, err = Load(path)
	require.NoError(t, err)
	assert.NotContains(t, s.EnabledPlugins, "alpha@tools")
}

func TestAddRemoveMarketplace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	require.NoError(t, AddMarketplace(path, "tools", "https://example.com/tools.git"))

	s, err := Load(path)
	require.NoError(t, err)
	require.Contains(t, s.ExtraKnownMarketplaces, "tools")
	assert.Equal(t, "url", s.ExtraKnownMarketplaces["tools"].Source.Source)
	assert.Equal(t, "https://example.com/tools.git", s.ExtraKnownMarketplaces["tools"].Source.URL)

	require.NoError(t, RemoveMarketplace(path, "tools"))

	s, err = Load(path)
	require.NoError(t, err)
	assert.NotContains(t, s.ExtraKnownMarketplaces, "tools")
}

func TestLoad_PreservesDeclaredFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")

	raw := `{
  "permissions": {"allow": ["Bash"]},
  "env": {"KEY": "value"},
  "enabledPlugins": {"existing@mp": true}
}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	require.NoError(t, EnablePlugin(path, "alpha@tools"))

	s, err := Load(path)
	require.NoError(t, err)

	assert.True(t, s.EnabledPlugins["existing@mp"])
	assert.True(t, s.EnabledPlugins["alpha@tools"])
	require.NotNil(t, s.Permissions)
	assert.Equal(t, []string{"Bash"}, s.Permissions.Allow)
	assert.Equal(t, "value", s.Env["KEY"])
}
