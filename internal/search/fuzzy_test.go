package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentmarket/agent-market/internal/manifest"
)

func testManifests() map[string]*manifest.MarketplaceManifest {
	return map[string]*manifest.MarketplaceManifest{
		"tools": {
			Name: "tools",
			Plugins: []manifest.PluginReference{
				{Name: "go-formatter", Source: "plugins/go-formatter", Description: "Formats Go code", Tags: []string{"go", "format"}},
				{Name: "linter", Source: "plugins/linter", Description: "Lints source files", Keywords: []string{"style"}},
			},
		},
		"misc": {
			Name: "misc",
			Plugins: []manifest.PluginReference{
				{Name: "deployer", Source: "plugins/deployer", Category: "infra"},
			},
		},
		"broken": nil,
	}
}

func TestFuzzySearch(t *testing.T) {
	results := FuzzySearch(testManifests(), "format")

	require.NotEmpty(t, results)
	assert.Equal(t, "go-formatter", results[0].Plugin.Name)
	assert.Equal(t, "tools", results[0].Marketplace)
}

func TestFuzzySearch_NoMatch(t *testing.T) {
	results := FuzzySearch(testManifests(), "zzzzzz")
	assert.Empty(t, results)
}

func TestSimpleSearch(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"lint", []string{"linter"}},
		{"style", []string{"linter"}},     // keyword match
		{"infra", []string{"deployer"}},   // category match
		{"go", []string{"go-formatter"}},  // tag and name match
		{"FORMAT", []string{"go-formatter"}}, // case-insensitive
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			results := SimpleSearch(testManifests(), tt.query)

			names := make([]string, len(results))
			for i, r := range results {
				names[i] = r.Plugin.Name
			}
			assert.Equal(t, tt.want, names)
		})
	}
}

func TestSimpleSearch_StableOrder(t *testing.T) {
	first := SimpleSearch(testManifests(), "e")
	second := SimpleSearch(testManifests(), "e")

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Plugin.Name, second[i].Plugin.Name)
		assert.Equal(t, first[i].Marketplace, second[i].Marketplace)
	}
}
