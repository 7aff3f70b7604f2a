package manifest

import "fmt"

// MissingFieldError reports a required manifest field that is absent or empty.
type MissingFieldError struct {
	File  string
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: missing required field %q", e.File, e.Field)
}

// MalformedVersionError reports a version string that does not parse as
// MAJOR.MINOR.PATCH semver.
type MalformedVersionError struct {
	File    string
	Version string
}

func (e *MalformedVersionError) Error() string {
	return fmt.Sprintf("%s: malformed version %q (want MAJOR.MINOR.PATCH)", e.File, e.Version)
}

// NameMismatchError reports a marketplace entry whose declared name differs
// from the name inside the referenced plugin's own manifest.
type NameMismatchError struct {
	Source   string // plugin source path as written in the marketplace entry
	Declared string // name in the marketplace entry
	Actual   string // name in the plugin's plugin.json
}

func (e *NameMismatchError) Error() string {
	return fmt.Sprintf("%s: entry declares name %q but plugin manifest declares %q", e.Source, e.Declared, e.Actual)
}

// SourceNotFoundError reports an entry source that does not resolve to a
// directory on disk.
type SourceNotFoundError struct {
	Source   string // as written in the marketplace entry
	Resolved string // absolute path that was checked
}

func (e *SourceNotFoundError) Error() string {
	return fmt.Sprintf("source %q not found (resolved to %s)", e.Source, e.Resolved)
}

// MalformedHeaderError reports an agent or skill document whose front matter
// is missing, unparsable, or lacks a required key.
type MalformedHeaderError struct {
	File   string
	Reason string
}

func (e *MalformedHeaderError) Error() string {
	return fmt.Sprintf("%s: malformed header: %s", e.File, e.Reason)
}

// DuplicateNameError reports a name that appears more than once within a
// namespace that requires uniqueness (marketplace entries, a plugin's agents,
// a plugin's skills).
type DuplicateNameError struct {
	Kind string // "entry", "agent" or "skill"
	Name string
	File string // file or manifest where the duplicate was found
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("%s: duplicate %s name %q", e.File, e.Kind, e.Name)
}
