package config

import (
	"os"
	"path/filepath"
	"sync"
)

var (
	baseDirMu       sync.RWMutex
	baseDirOverride string
)

// SetBaseDir overrides the agent-market config directory. Used by tests.
func SetBaseDir(dir string) {
	baseDirMu.Lock()
	defer baseDirMu.Unlock()
	baseDirOverride = dir
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "~"
	}
	return home
}

// BaseDir returns the agent-market config directory path
// ~/.config/agent-market/
func BaseDir() string {
	baseDirMu.RLock()
	defer baseDirMu.RUnlock()
	if baseDirOverride != "" {
		return baseDirOverride
	}
	return filepath.Join(homeDir(), ".config", "agent-market")
}

// ConfigPath returns the config.json file path
func ConfigPath() string {
	return filepath.Join(BaseDir(), "config.json")
}

// InstalledPath returns the installed.json file path
func InstalledPath() string {
	return filepath.Join(BaseDir(), "installed.json")
}

// MarketplacesDir returns the directory holding cloned marketplaces
func MarketplacesDir() string {
	return filepath.Join(BaseDir(), "marketplaces")
}

// PluginCacheDir returns the plugin cache directory path
func PluginCacheDir() string {
	return filepath.Join(BaseDir(), "cache")
}

// PluginsDir returns the directory installed plugins are copied into
func PluginsDir() string {
	return filepath.Join(BaseDir(), "plugins")
}

// HostDir returns the host's configuration directory (~/.claude)
func HostDir() string {
	return filepath.Join(homeDir(), ".claude")
}

// HostSettingsPath returns the host's global settings.json file path
func HostSettingsPath() string {
	return filepath.Join(HostDir(), "settings.json")
}

// HostMarketplacesPath returns the host's own marketplace registry file
func HostMarketplacesPath() string {
	return filepath.Join(HostDir(), "plugins", "known_marketplaces.json")
}

// ProjectSettingsPath returns the project-level settings.json path, or the
// empty string when the working directory has no .claude directory.
func ProjectSettingsPath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	path := filepath.Join(cwd, ".claude", "settings.json")
	if _, err := os.Stat(filepath.Dir(path)); os.IsNotExist(err) {
		return ""
	}
	return path
}

// EnsureDir creates a directory if it doesn't exist
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
