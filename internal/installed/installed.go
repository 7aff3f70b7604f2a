// Package installed keeps the book of installed plugins in installed.json.
package installed

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/agentmarket/agent-market/internal/config"
)

var (
	manager     *Manager
	managerOnce sync.Once
)

// Manager manages installed plugin records
type Manager struct {
	mu   sync.RWMutex
	path string
}

// GetManager returns the singleton installed manager instance
func GetManager() *Manager {
	managerOnce.Do(func() {
		manager = &Manager{
			path: config.InstalledPath(),
		}
	})
	return manager
}

// NewManager creates a manager backed by a specific file path
func NewManager(path string) *Manager {
	return &Manager{path: path}
}

// Load loads installed plugins from the JSON file
func (m *Manager) Load() (*InstalledPlugins, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, err := os.ReadFile(m.path)
	if err != nil {
		if os.IsNotExist(err) {
			return NewInstalledPlugins(), nil
		}
		return nil, err
	}

	var plugins InstalledPlugins
	if err := json.Unmarshal(data, &plugins); err != nil {
		return nil, err
	}

	if plugins.Plugins == nil {
		plugins.Plugins = make(map[string][]InstalledPluginEntry)
	}

	return &plugins, nil
}

// Save saves installed plugins to the JSON file
func (m *Manager) Save(plugins *InstalledPlugins) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := config.EnsureDir(config.BaseDir()); err != nil {
		return err
	}

	data, err := json.MarshalIndent(plugins, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(m.path, data, 0644)
}

// Add adds a new installed plugin entry
func (m *Manager) Add(pluginID string, entry InstalledPluginEntry) error {
	plugins, err := m.Load()
	if err != nil {
		return err
	}

	// An existing entry with the same scope is replaced
	entries := plugins.Plugins[pluginID]
	for i, e := range entries {
		if e.Scope == entry.Scope && e.ProjectPath == entry.ProjectPath {
			entries[i] = entry
			plugins.Plugins[pluginID] = entries
			return m.Save(plugins)
		}
	}

	plugins.Plugins[pluginID] = append(plugins.Plugins[pluginID], entry)
	return m.Save(plugins)
}

// Remove removes all entries for an installed plugin
func (m *Manager) Remove(pluginID string) error {
	plugins, err := m.Load()
	if err != nil {
		return err
	}

	delete(plugins.Plugins, pluginID)
	return m.Save(plugins)
}

// RemoveByScope removes entries for a plugin matching the given scope.
// scope can be "global", "project", or "all". For "project" scope,
// projectPath should match the current working directory.
func (m *Manager) RemoveByScope(pluginID, scope, projectPath string) ([]InstalledPluginEntry, error) {
	plugins, err := m.Load()
	if err != nil {
		return nil, err
	}

	entries := plugins.Plugins[pluginID]
	if len(entries) == 0 {
		return nil, nil
	}

	var removed []InstalledPluginEntry
	var remaining []InstalledPluginEntry

	for _, entry := range entries {
		shouldRemove := false
		switch scope {
		case "all":
			shouldRemove = true
		case "global":
			shouldRemove = entry.Scope == "global"
		case "project":
			shouldRemove = entry.Scope == "project" && entry.ProjectPath == projectPath
		}

		if shouldRemove {
			removed = append(removed, entry)
		} else {
			remaining = append(remaining, entry)
		}
	}

	if len(remaining) == 0 {
		delete(plugins.Plugins, pluginID)
	} else {
		plugins.Plugins[pluginID] = remaining
	}

	if err := m.Save(plugins); err != nil {
		return nil, err
	}

	return removed, nil
}

// Get returns entries for a specific plugin
func (m *Manager) Get(pluginID string) ([]InstalledPluginEntry, error) {
	plugins, err := m.Load()
	if err != nil {
		return nil, err
	}

	return plugins.Plugins[pluginID], nil
}

// GetByScope returns entries for a plugin matching the given scope
func (m *Manager) GetByScope(pluginID, scope, projectPath string) ([]InstalledPluginEntry, error) {
	entries, err := m.Get(pluginID)
	if err != nil {
		return nil, err
	}

	if scope == "all" {
		return entries, nil
	}

	var filtered []InstalledPluginEntry
	for _, entry := range entries {
		switch scope {
		case "global":
			if entry.Scope == "global" {
				filtered = append(filtered, entry)
			}
		case "project":
			if entry.Scope == "project" && entry.ProjectPath == projectPath {
				filtered = append(filtered, entry)
			}
		}
	}

	return filtered, nil
}

// List returns all installed plugins
func (m *Manager) List() (*InstalledPlugins, error) {
	return m.Load()
}

// Exists checks if a plugin is installed
func (m *Manager) Exists(pluginID string) (bool, error) {
	entries, err := m.Get(pluginID)
	if err != nil {
		return false, err
	}
	return len(entries) > 0, nil
}
