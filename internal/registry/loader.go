package registry

import (
	"github.com/sirupsen/logrus"

	"github.com/agentmarket/agent-market/internal/manifest"
)

// LoadManifests loads the manifest of every known marketplace. Marketplaces
// whose manifest cannot be read map to nil so callers can report them by name.
func (r *Registry) LoadManifests() (map[string]*manifest.MarketplaceManifest, error) {
	marketplaces, err := r.List()
	if err != nil {
		return nil, err
	}

	result := make(map[string]*manifest.MarketplaceManifest, len(marketplaces))
	for name, mp := range marketplaces {
		if mp.InstallLocation == "" {
			result[name] = nil
			continue
		}

		m, err := manifest.LoadMarketplace(mp.InstallLocation)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"marketplace": name,
				"location":    mp.InstallLocation,
			}).WithError(err).Warn("failed to load marketplace manifest")
			result[name] = nil
			continue
		}
		result[name] = m
	}

	return result, nil
}
