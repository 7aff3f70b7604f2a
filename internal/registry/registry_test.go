package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentmarket/agent-market/internal/config"
)

func TestRegistry_Lifecycle(t *testing.T) {
	config.SetBaseDir(t.TempDir())
	t.Cleanup(func() { config.SetBaseDir("") })

	reg := GetRegistry()

	exists, err := reg.Exists("tools")
	require.NoError(t, err)
	assert.False(t, exists)

	source := config.MarketplaceSource{Source: "git", URL: "https://example.com/tools.git"}
	require.NoError(t, reg.Add("tools", source, "/tmp/marketplaces/tools"))

	exists, err = reg.Exists("tools")
	require.NoError(t, err)
	assert.True(t, exists)

	mp, err := reg.Get("tools")
	require.NoError(t, err)
	require.NotNil(t, mp)
	assert.Equal(t, "git", mp.Source.Source)
	assert.Equal(t, "https://example.com/tools.git", mp.Source.URL)
	assert.Equal(t, "/tmp/marketplaces/tools", mp.InstallLocation)
	assert.NotEmpty(t, mp.LastUpdated)

	marketplaces, err := reg.List()
	require.NoError(t, err)
	assert.Len(t, marketplaces, 1)

	require.NoError(t, reg.Remove("tools"))

	mp, err = reg.Get("tools")
	require.NoError(t, err)
	assert.Nil(t, mp)
}

func TestRegistry_UpdateTimestamp(t *testing.T) {
	config.SetBaseDir(t.TempDir())
	t.Cleanup(func() { config.SetBaseDir("") })

	reg := GetRegistry()

	source := config.MarketplaceSource{Source: "directory", Path: "/srv/market"}
	require.NoError(t, reg.Add("local", source, "/srv/market"))
	t.Cleanup(func() { reg.Remove("local") })

	before, err := reg.Get("local")
	require.NoError(t, err)
	require.NotNil(t, before)

	require.NoError(t, reg.UpdateTimestamp("local"))

	after, err := reg.Get("local")
	require.NoError(t, err)
	require.NotNil(t, after)
	assert.NotEmpty(t, after.LastUpdated)

	// Updating an unknown marketplace is a no-op
	require.NoError(t, reg.UpdateTimestamp("missing"))
}

func TestConvertToHTTPS(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"https://github.com/org/repo.git", "https://github.com/org/repo.git"},
		{"http://example.com/repo", "http://example.com/repo"},
		{"git@github.com:org/repo.git", "https://github.com/org/repo.git"},
		{"github.com/org/repo", "https://github.com/org/repo"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, convertToHTTPS(tt.in), tt.in)
	}
}
