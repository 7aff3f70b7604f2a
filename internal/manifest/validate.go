package manifest

import (
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ValidateOptions configures marketplace validation.
type ValidateOptions struct {
	// StrictDefault is the effective strict flag for entries that do not set
	// one. Strict entries turn validation failures into errors; non-strict
	// entries downgrade them to warnings.
	StrictDefault bool
}

// DefaultValidateOptions returns the options used when none are given.
func DefaultValidateOptions() ValidateOptions {
	return ValidateOptions{StrictDefault: true}
}

// EntryReport is the validation outcome for a single marketplace entry.
type EntryReport struct {
	Ref    PluginReference
	Dir    string          // resolved source directory, empty for remote sources
	Plugin *PluginManifest // nil when the plugin manifest could not be loaded
	Errors []error
	Notes  []error // advisory only, never blocking regardless of Strict
	Strict bool
}

// MarketplaceReport is the collected validation outcome for a marketplace.
// Errors holds manifest-level failures plus failures of strict entries;
// Warnings holds failures of non-strict entries and advisory notes. A failing
// entry never aborts validation of its siblings.
type MarketplaceReport struct {
	Dir      string
	Manifest *MarketplaceManifest
	Entries  []EntryReport
	Errors   []error
	Warnings []error
}

// OK reports whether validation produced no blocking errors.
func (r *MarketplaceReport) OK() bool {
	return len(r.Errors) == 0
}

// Err aggregates all blocking errors into a single error, or nil.
func (r *MarketplaceReport) Err() error {
	var result *multierror.Error
	for _, e := range r.Errors {
		result = multierror.Append(result, e)
	}
	return result.ErrorOrNil()
}

// ValidateMarketplace validates the marketplace rooted at dir: the manifest
// itself, every entry's source, every referenced plugin manifest, and the
// entry-name/plugin-name cross-check. All failures are collected; nothing is
// fail-fast. Entries are processed in listing order so repeated runs over
// unchanged input produce identical reports.
func ValidateMarketplace(dir string, opts ValidateOptions) (*MarketplaceReport, error) {
	m, err := LoadMarketplace(dir)
	if err != nil {
		return nil, err
	}

	report := &MarketplaceReport{Dir: dir, Manifest: m}
	path := MarketplacePath(dir)

	if strings.TrimSpace(m.Name) == "" {
		report.Errors = append(report.Errors, &MissingFieldError{File: path, Field: "name"})
	}
	if len(m.Plugins) == 0 {
		report.Errors = append(report.Errors, &MissingFieldError{File: path, Field: "plugins"})
	}

	seen := make(map[string]bool, len(m.Plugins))
	for i := range m.Plugins {
		ref := m.Plugins[i]
		if ref.Name != "" {
			if seen[ref.Name] {
				report.Errors = append(report.Errors, &DuplicateNameError{Kind: "entry", Name: ref.Name, File: path})
			}
			seen[ref.Name] = true
		}

		entry := validateEntry(dir, path, m, ref, opts)
		report.Entries = append(report.Entries, entry)

		if entry.Strict {
			report.Errors = append(report.Errors, entry.Errors...)
		} else {
			report.Warnings = append(report.Warnings, entry.Errors...)
		}
		report.Warnings = append(report.Warnings, entry.Notes...)
	}

	logrus.WithFields(logrus.Fields{
		"marketplace": m.Name,
		"entries":     len(report.Entries),
		"errors":      len(report.Errors),
		"warnings":    len(report.Warnings),
	}).Debug("validated marketplace")

	return report, nil
}

// validateEntry validates a single marketplace entry and its referenced
// plugin. Failures are collected into the returned EntryReport.
func validateEntry(dir, manifestPath string, m *MarketplaceManifest, ref PluginReference, opts ValidateOptions) EntryReport {
	entry := EntryReport{Ref: ref, Strict: opts.StrictDefault}
	if ref.Strict != nil {
		entry.Strict = *ref.Strict
	}

	if strings.TrimSpace(ref.Name) == "" {
		entry.Errors = append(entry.Errors, &MissingFieldError{File: manifestPath, Field: "name"})
	}
	if strings.TrimSpace(ref.Source) == "" {
		entry.Errors = append(entry.Errors, &MissingFieldError{File: manifestPath, Field: "source"})
		return entry
	}

	if ref.IsRemoteSource() {
		// Remote sources cannot be checked without fetching them. This is
		// advisory, not a failure, so it bypasses the strict flag.
		entry.Notes = append(entry.Notes, errors.Errorf("source %q is remote and was not verified", ref.Source))
		return entry
	}

	resolved := m.ResolveSource(dir, &ref)
	info, err := os.Stat(resolved)
	if err != nil || !info.IsDir() {
		entry.Errors = append(entry.Errors, &SourceNotFoundError{Source: ref.Source, Resolved: resolved})
		return entry
	}
	entry.Dir = resolved

	plugin, pluginErrs := ValidatePlugin(resolved)
	entry.Plugin = plugin
	entry.Errors = append(entry.Errors, pluginErrs...)

	if plugin != nil && ref.Name != "" && plugin.Name != "" && plugin.Name != ref.Name {
		entry.Errors = append(entry.Errors, &NameMismatchError{
			Source:   ref.Source,
			Declared: ref.Name,
			Actual:   plugin.Name,
		})
	}

	return entry
}

// ValidatePlugin loads and validates the plugin manifest in dir. It returns
// the manifest (nil when it could not be read) together with every problem
// found: required fields name, description, version, and license must be
// present and non-empty, and version must be strict MAJOR.MINOR.PATCH semver
// with optional pre-release and build metadata.
func ValidatePlugin(dir string) (*PluginManifest, []error) {
	p, err := LoadPlugin(dir)
	if err != nil {
		return nil, []error{err}
	}

	path := PluginPath(dir)
	var errs []error

	required := []struct {
		field string
		value string
	}{
		{"name", p.Name},
		{"description", p.Description},
		{"version", p.Version},
		{"license", p.License},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs = append(errs, &MissingFieldError{File: path, Field: r.field})
		}
	}

	if strings.TrimSpace(p.Version) != "" {
		if _, err := semver.StrictNewVersion(p.Version); err != nil {
			errs = append(errs, &MalformedVersionError{File: path, Version: p.Version})
		}
	}

	return p, errs
}
