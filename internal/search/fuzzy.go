package search

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/agentmarket/agent-market/internal/manifest"
)

// SearchResult represents a search result
type SearchResult struct {
	Plugin      manifest.PluginReference
	Marketplace string
	Score       int // Higher is better
}

// pluginSearchable wraps marketplace entries for fuzzy searching
type pluginSearchable struct {
	Plugins []manifest.PluginReference
}

// String returns the searchable string for a plugin
func (p pluginSearchable) String(i int) string {
	plugin := p.Plugins[i]
	parts := []string{plugin.Name}

	if plugin.Description != "" {
		parts = append(parts, plugin.Description)
	}

	parts = append(parts, plugin.Tags...)
	parts = append(parts, plugin.Keywords...)

	if plugin.Category != "" {
		parts = append(parts, plugin.Category)
	}

	return strings.ToLower(strings.Join(parts, " "))
}

// Len returns the number of plugins
func (p pluginSearchable) Len() int {
	return len(p.Plugins)
}

// FuzzySearch performs a fuzzy search across all marketplaces
func FuzzySearch(marketplaces map[string]*manifest.MarketplaceManifest, query string) []SearchResult {
	var results []SearchResult
	query = strings.ToLower(query)

	for mpName, m := range marketplaces {
		if m == nil || len(m.Plugins) == 0 {
			continue
		}

		searchable := pluginSearchable{Plugins: m.Plugins}
		matches := fuzzy.FindFrom(query, searchable)

		for _, match := range matches {
			results = append(results, SearchResult{
				Plugin:      m.Plugins[match.Index],
				Marketplace: mpName,
				Score:       match.Score,
			})
		}
	}

	// Sort by score (descending), then by name for a stable listing
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Plugin.Name < results[j].Plugin.Name
	})

	return results
}

// SimpleSearch performs a simple substring search
func SimpleSearch(marketplaces map[string]*manifest.MarketplaceManifest, query string) []SearchResult {
	var results []SearchResult
	query = strings.ToLower(query)

	for mpName, m := range marketplaces {
		if m == nil {
			continue
		}

		for _, plugin := range m.Plugins {
			if matchesQuery(plugin, query) {
				results = append(results, SearchResult{
					Plugin:      plugin,
					Marketplace: mpName,
					Score:       100,
				})
			}
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Marketplace != results[j].Marketplace {
			return results[i].Marketplace < results[j].Marketplace
		}
		return results[i].Plugin.Name < results[j].Plugin.Name
	})

	return results
}

// matchesQuery checks if a plugin matches the search query
func matchesQuery(plugin manifest.PluginReference, query string) bool {
	if strings.Contains(strings.ToLower(plugin.Name), query) {
		return true
	}

	if strings.Contains(strings.ToLower(plugin.Description), query) {
		return true
	}

	for _, tag := range plugin.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}

	for _, keyword := range plugin.Keywords {
		if strings.Contains(strings.ToLower(keyword), query) {
			return true
		}
	}

	return strings.Contains(strings.ToLower(plugin.Category), query)
}
