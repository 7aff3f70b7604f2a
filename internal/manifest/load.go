package manifest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

const (
	// MetaDir is the directory holding manifest files inside a marketplace
	// or plugin root
	MetaDir = ".claude-plugin"
	// MarketplaceFile is the marketplace manifest filename
	MarketplaceFile = "marketplace.json"
	// PluginFile is the plugin manifest filename
	PluginFile = "plugin.json"
)

// MarketplacePath returns the manifest file path for a marketplace root.
func MarketplacePath(dir string) string {
	return filepath.Join(dir, MetaDir, MarketplaceFile)
}

// PluginPath returns the manifest file path for a plugin root.
func PluginPath(dir string) string {
	return filepath.Join(dir, MetaDir, PluginFile)
}

// LoadMarketplace loads the marketplace manifest from the given directory.
func LoadMarketplace(dir string) (*MarketplaceManifest, error) {
	path := MarketplacePath(dir)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Errorf("marketplace manifest not found: %s", path)
		}
		return nil, errors.Wrap(err, "failed to read marketplace manifest")
	}

	var manifest MarketplaceManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}

	return &manifest, nil
}

// LoadPlugin loads the plugin manifest from the given plugin directory.
func LoadPlugin(dir string) (*PluginManifest, error) {
	path := PluginPath(dir)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Errorf("plugin manifest not found: %s", path)
		}
		return nil, errors.Wrap(err, "failed to read plugin manifest")
	}

	var manifest PluginManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", path)
	}

	return &manifest, nil
}

// ResolveSource resolves an entry's source to an absolute path relative to
// the marketplace directory, honoring metadata.pluginRoot. URL sources are
// returned as-is.
func (m *MarketplaceManifest) ResolveSource(marketplaceDir string, ref *PluginReference) string {
	if ref.IsRemoteSource() {
		return ref.Source
	}

	base := marketplaceDir
	if m.Metadata != nil && m.Metadata.PluginRoot != "" {
		base = filepath.Join(marketplaceDir, m.Metadata.PluginRoot)
	}

	if filepath.IsAbs(ref.Source) {
		return filepath.Clean(ref.Source)
	}
	return filepath.Join(base, ref.Source)
}

func hasURLScheme(source string) bool {
	return strings.HasPrefix(source, "https://") ||
		strings.HasPrefix(source, "http://") ||
		strings.HasPrefix(source, "git@")
}
