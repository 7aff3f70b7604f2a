// Package registry tracks the marketplaces known to agent-market and, depending
// on the configured share mode, to the host.
package registry

import (
	"encoding/json"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/agentmarket/agent-market/internal/config"
	"github.com/agentmarket/agent-market/internal/settings"
)

// KnownMarketplace represents an entry in known_marketplaces.json
type KnownMarketplace struct {
	Source          config.MarketplaceSource `json:"source"`
	InstallLocation string                   `json:"installLocation"`
	LastUpdated     string                   `json:"lastUpdated"`
}

// KnownMarketplaces is a map of marketplace name to KnownMarketplace
type KnownMarketplaces map[string]KnownMarketplace

var (
	registry     *Registry
	registryOnce sync.Once
)

// Registry manages known marketplaces
type Registry struct {
	mu sync.RWMutex
}

// GetRegistry returns the singleton registry instance
func GetRegistry() *Registry {
	registryOnce.Do(func() {
		registry = &Registry{}
	})
	return registry
}

// List returns all known marketplaces based on share mode
func (r *Registry) List() (KnownMarketplaces, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cfg := config.Get()
	result := make(KnownMarketplaces)

	for name, mp := range cfg.Marketplaces {
		result[name] = KnownMarketplace{
			Source:          mp.Source,
			InstallLocation: mp.InstallLocation,
			LastUpdated:     mp.LastUpdated,
		}
	}

	switch cfg.Host.Registry.Share {
	case config.ShareMerge:
		// Merge with the host's marketplaces
		hostMarketplaces, err := loadHostMarketplaces()
		if err == nil {
			for name, mp := range hostMarketplaces {
				if _, exists := result[name]; !exists {
					result[name] = mp
				}
			}
		}
	case config.ShareSync, config.ShareIgnore:
		// sync: host settings are managed directly when adding/removing
		// ignore: only use our own marketplaces
	}

	return result, nil
}

// Get returns a single marketplace by name
func (r *Registry) Get(name string) (*KnownMarketplace, error) {
	marketplaces, err := r.List()
	if err != nil {
		return nil, err
	}

	mp, ok := marketplaces[name]
	if !ok {
		return nil, nil
	}

	return &mp, nil
}

// Exists checks if a marketplace exists
func (r *Registry) Exists(name string) (bool, error) {
	mp, err := r.Get(name)
	if err != nil {
		return false, err
	}
	return mp != nil, nil
}

// Add adds a new marketplace to the registry
func (r *Registry) Add(name string, source config.MarketplaceSource, installLocation string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cfg := config.Get()

	cfg.Marketplaces[name] = config.Marketplace{
		Source:          source,
		InstallLocation: installLocation,
		LastUpdated:     time.Now().Format(time.RFC3339),
	}

	if err := config.Save(cfg); err != nil {
		return err
	}

	if cfg.Host.Registry.Share == config.ShareSync && source.Source == "git" {
		return settings.AddMarketplace(config.HostSettingsPath(), name, convertToHTTPS(source.URL))
	}

	return nil
}

// Remove removes a marketplace from the registry
func (r *Registry) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cfg := config.Get()

	delete(cfg.Marketplaces, name)

	if err := config.Save(cfg); err != nil {
		return err
	}

	if cfg.Host.Registry.Share == config.ShareSync {
		return settings.RemoveMarketplace(config.HostSettingsPath(), name)
	}

	return nil
}

// UpdateTimestamp updates the last updated timestamp for a marketplace
func (r *Registry) UpdateTimestamp(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cfg := config.Get()

	if mp, ok := cfg.Marketplaces[name]; ok {
		mp.LastUpdated = time.Now().Format(time.RFC3339)
		cfg.Marketplaces[name] = mp
		return config.Save(cfg)
	}

	return nil
}

// loadHostMarketplaces loads marketplaces from the host's known_marketplaces.json
func loadHostMarketplaces() (KnownMarketplaces, error) {
	data, err := os.ReadFile(config.HostMarketplacesPath())
	if err != nil {
		return nil, err
	}

	var marketplaces KnownMarketplaces
	if err := json.Unmarshal(data, &marketplaces); err != nil {
		return nil, err
	}

	return marketplaces, nil
}

// convertToHTTPS converts a git SSH URL to an HTTPS URL
// e.g., "git@github.com:owner/repo.git" -> "https://github.com/owner/repo.git"
func convertToHTTPS(url string) string {
	if strings.HasPrefix(url, "https://") || strings.HasPrefix(url, "http://") {
		return url
	}

	if strings.HasPrefix(url, "git@") {
		url = strings.TrimPrefix(url, "git@")
		url = strings.Replace(url, ":", "/", 1)
		return "https://" + url
	}

	return "https://" + url
}
