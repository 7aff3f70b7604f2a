package manifest

import "encoding/json"

// MarketplaceManifest represents the .claude-plugin/marketplace.json structure
type MarketplaceManifest struct {
	Name     string               `json:"name"`
	Owner    Owner                `json:"owner"`
	Metadata *MarketplaceMetadata `json:"metadata,omitempty"`
	Plugins  []PluginReference    `json:"plugins"`
}

// Owner represents the marketplace owner information
type Owner struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	URL   string `json:"url,omitempty"`
}

// MarketplaceMetadata contains optional metadata for the marketplace
type MarketplaceMetadata struct {
	Description string `json:"description,omitempty"`
	Version     string `json:"version,omitempty"`
	PluginRoot  string `json:"pluginRoot,omitempty"`
}

// PluginReference is one entry of a marketplace's plugin list. All fields
// except Strict are descriptive only. Strict controls whether validation
// failures for this entry block it or are reported as warnings; nil defers
// to the validator's configured default.
type PluginReference struct {
	Name        string   `json:"name"`
	Source      string   `json:"source"`
	Version     string   `json:"version,omitempty"`
	Description string   `json:"description,omitempty"`
	Author      *Owner   `json:"author,omitempty"`
	Homepage    string   `json:"homepage,omitempty"`
	Repository  string   `json:"repository,omitempty"`
	License     string   `json:"license,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	Category    string   `json:"category,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	Strict      *bool    `json:"strict,omitempty"`
}

// marketplaceManifestJSON mirrors MarketplaceManifest but keeps both spellings
// of the plugin list key. "plugins" is what the host reads; "entries" shows up
// in older marketplace repositories.
type marketplaceManifestJSON struct {
	Name     string               `json:"name"`
	Owner    Owner                `json:"owner"`
	Metadata *MarketplaceMetadata `json:"metadata,omitempty"`
	Plugins  []PluginReference    `json:"plugins"`
	Entries  []PluginReference    `json:"entries"`
}

// UnmarshalJSON accepts the plugin list under either "plugins" or "entries".
// When both are present "plugins" wins.
func (m *MarketplaceManifest) UnmarshalJSON(data []byte) error {
	var raw marketplaceManifestJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	m.Name = raw.Name
	m.Owner = raw.Owner
	m.Metadata = raw.Metadata
	m.Plugins = raw.Plugins
	if m.Plugins == nil {
		m.Plugins = raw.Entries
	}
	return nil
}

// FindPlugin finds a plugin reference by name in the manifest
func (m *MarketplaceManifest) FindPlugin(name string) *PluginReference {
	for i := range m.Plugins {
		if m.Plugins[i].Name == name {
			return &m.Plugins[i]
		}
	}
	return nil
}

// IsRemoteSource reports whether the reference points at a URL rather than a
// path inside the marketplace repository.
func (p *PluginReference) IsRemoteSource() bool {
	return hasURLScheme(p.Source)
}

// PluginManifest represents the .claude-plugin/plugin.json structure
type PluginManifest struct {
	Name        string   `json:"name"`
	Version     string   `json:"version,omitempty"`
	Description string   `json:"description,omitempty"`
	Author      *Owner   `json:"author,omitempty"`
	Homepage    string   `json:"homepage,omitempty"`
	Repository  string   `json:"repository,omitempty"`
	License     string   `json:"license,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
}
