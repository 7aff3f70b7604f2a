package installed

// InstalledPlugins represents the installed.json structure
type InstalledPlugins struct {
	Version int                               `json:"version"`
	Plugins map[string][]InstalledPluginEntry `json:"plugins"`
}

// InstalledPluginEntry represents a single installed plugin entry
type InstalledPluginEntry struct {
	Scope       string       `json:"scope"`                 // "global" or "project"
	ProjectPath string       `json:"projectPath,omitempty"` // only for project scope
	Version     string       `json:"version"`
	InstalledAt string       `json:"installedAt"`
	LastUpdated string       `json:"lastUpdated"`
	Source      PluginSource `json:"source"`
	InstallPath string       `json:"installPath"` // where the plugin files were copied
}

// PluginSource records where an installed plugin came from
type PluginSource struct {
	Marketplace string `json:"marketplace"`
	Source      string `json:"source"`    // the marketplace entry's source field
	CachePath   string `json:"cachePath"` // resolved local directory at install time
}

// NewInstalledPlugins creates a new InstalledPlugins instance
func NewInstalledPlugins() *InstalledPlugins {
	return &InstalledPlugins{
		Version: 1,
		Plugins: make(map[string][]InstalledPluginEntry),
	}
}
