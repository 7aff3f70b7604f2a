package settings

// HostSettings represents the host's settings.json structure
type HostSettings struct {
	Schema                 string                      `json:"$schema,omitempty"`
	Env                    map[string]string           `json:"env,omitempty"`
	Permissions            *Permissions                `json:"permissions,omitempty"`
	EnabledPlugins         map[string]bool             `json:"enabledPlugins,omitempty"`
	ExtraKnownMarketplaces map[string]ExtraMarketplace `json:"extraKnownMarketplaces,omitempty"`
}

// Permissions represents the permissions section in settings
type Permissions struct {
	Allow                 []string `json:"allow,omitempty"`
	Deny                  []string `json:"deny,omitempty"`
	AdditionalDirectories []string `json:"additionalDirectories,omitempty"`
}

// ExtraMarketplace represents an extra marketplace entry
type ExtraMarketplace struct {
	Source MarketplaceSourceRef `json:"source"`
}

// MarketplaceSourceRef describes the source reference for a marketplace
type MarketplaceSourceRef struct {
	Source string `json:"source"` // "url", "git", "directory"
	URL    string `json:"url,omitempty"`
	Path   string `json:"path,omitempty"`
}

// NewHostSettings creates a new HostSettings instance
func NewHostSettings() *HostSettings {
	return &HostSettings{
		EnabledPlugins:         make(map[string]bool),
		ExtraKnownMarketplaces: make(map[string]ExtraMarketplace),
	}
}
