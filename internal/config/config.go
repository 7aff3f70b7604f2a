package config

import (
	"encoding/json"
	"os"
	"sync"
)

// ShareMode defines how the tool's marketplace registry interacts with the
// host's own registry
type ShareMode string

const (
	// ShareSync directly modifies the host's settings when marketplaces change
	ShareSync ShareMode = "sync"
	// ShareMerge merges the host's marketplaces into listings
	ShareMerge ShareMode = "merge"
	// ShareIgnore uses only agent-market's own registry
	ShareIgnore ShareMode = "ignore"
)

// ValidationConfig contains validation defaults
type ValidationConfig struct {
	// StrictDefault applies to marketplace entries that do not set "strict"
	StrictDefault bool `json:"strictDefault"`
}

// HostConfig contains host-related settings
type HostConfig struct {
	Registry RegistryConfig `json:"registry"`
}

// RegistryConfig contains registry sharing settings
type RegistryConfig struct {
	Share ShareMode `json:"share"`
}

// Marketplace represents a registered marketplace
type Marketplace struct {
	Source          MarketplaceSource `json:"source"`
	InstallLocation string            `json:"installLocation"`
	LastUpdated     string            `json:"lastUpdated"`
}

// MarketplaceSource describes the source of a marketplace
type MarketplaceSource struct {
	Source string `json:"source"` // "git", "directory"
	URL    string `json:"url,omitempty"`
	Path   string `json:"path,omitempty"`
}

// Config represents the main configuration file structure
type Config struct {
	Locale       string                 `json:"locale"` // "auto" or ISO format (e.g., "en-US")
	Validation   ValidationConfig       `json:"validation"`
	Host         HostConfig             `json:"host"`
	Marketplaces map[string]Marketplace `json:"marketplaces"`
}

var (
	cfg     *Config
	cfgOnce sync.Once
	cfgMu   sync.RWMutex
)

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Locale:     "auto",
		Validation: ValidationConfig{StrictDefault: true},
		Host: HostConfig{
			Registry: RegistryConfig{Share: ShareIgnore},
		},
		Marketplaces: make(map[string]Marketplace),
	}
}

// Load loads the configuration from file
func Load() (*Config, error) {
	cfgMu.RLock()
	defer cfgMu.RUnlock()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return NewConfig(), nil
		}
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	if config.Marketplaces == nil {
		config.Marketplaces = make(map[string]Marketplace)
	}
	if config.Host.Registry.Share == "" {
		config.Host.Registry.Share = ShareIgnore
	}
	if config.Locale == "" {
		config.Locale = "auto"
	}

	return &config, nil
}

// Save saves the configuration to file
func Save(config *Config) error {
	cfgMu.Lock()
	defer cfgMu.Unlock()

	if err := EnsureDir(BaseDir()); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(ConfigPath(), data, 0644)
}

// Get returns the current configuration (singleton)
func Get() *Config {
	cfgOnce.Do(func() {
		var err error
		cfg, err = Load()
		if err != nil {
			cfg = NewConfig()
		}
	})
	return cfg
}

// Reload reloads the configuration from file, discarding the cached copy
func Reload() error {
	newCfg, err := Load()
	if err != nil {
		return err
	}
	cfgMu.Lock()
	cfg = newCfg
	cfgMu.Unlock()
	return nil
}

// GetShareMode returns the current share mode
func GetShareMode() ShareMode {
	return Get().Host.Registry.Share
}

// SetShareMode sets the share mode and saves
func SetShareMode(mode ShareMode) error {
	config := Get()
	config.Host.Registry.Share = mode
	return Save(config)
}

// GetLocale returns the configured locale
func GetLocale() string {
	return Get().Locale
}

// SetLocale sets the locale and saves
func SetLocale(locale string) error {
	config := Get()
	config.Locale = locale
	return Save(config)
}

// GetStrictDefault returns the configured strict validation default
func GetStrictDefault() bool {
	return Get().Validation.StrictDefault
}

// SetStrictDefault sets the strict validation default and saves
func SetStrictDefault(strict bool) error {
	config := Get()
	config.Validation.StrictDefault = strict
	return Save(config)
}
