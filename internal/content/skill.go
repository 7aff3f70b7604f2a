package content

import (
	"iter"
	"os"
	"path/filepath"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/agentmarket/agent-market/internal/manifest"
)

// SkillDefinition is one skill document: its parsed header plus the untouched
// reference text.
type SkillDefinition struct {
	Name        string
	Description string
	Path        string
	Body        string
}

// Skills returns a lazy sequence over the skill documents of a plugin
// directory. Both layouts are accepted: loose skills/*.md files and
// skills/<name>/SKILL.md bundles. The skills directory is optional; when
// absent the sequence is empty. A malformed document yields a
// MalformedHeaderError and enumeration continues with its siblings.
func Skills(pluginDir string) iter.Seq2[*SkillDefinition, error] {
	dir := filepath.Join(pluginDir, skillsSubdir)

	return func(yield func(*SkillDefinition, error) bool) {
		for _, path := range skillFiles(dir) {
			skill, err := loadSkill(path)
			if !yield(skill, err) {
				return
			}
		}
	}
}

// CollectSkills drains Skills into a slice, gathering per-document errors
// and flagging duplicate skill names.
func CollectSkills(pluginDir string) ([]*SkillDefinition, []error) {
	var skills []*SkillDefinition
	var errs []error

	seen := make(map[string]bool)
	for skill, err := range Skills(pluginDir) {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if seen[skill.Name] {
			errs = append(errs, &manifest.DuplicateNameError{Kind: "skill", Name: skill.Name, File: skill.Path})
			continue
		}
		seen[skill.Name] = true
		skills = append(skills, skill)
	}

	logrus.WithFields(logrus.Fields{
		"dir":    pluginDir,
		"skills": len(skills),
		"errors": len(errs),
	}).Debug("collected skills")

	return skills, errs
}

// loadSkill reads and parses a single skill markdown file.
func loadSkill(path string) (*SkillDefinition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &manifest.MalformedHeaderError{File: path, Reason: err.Error()}
	}

	h, err := parseHeader(path, raw)
	if err != nil {
		return nil, err
	}

	return &SkillDefinition{
		Name:        h.Name,
		Description: h.Description,
		Path:        path,
		Body:        body(string(raw)),
	}, nil
}

// skillFiles lists skill documents under dir in sorted order: loose .md files
// plus SKILL.md inside each subdirectory.
func skillFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logrus.WithField("dir", dir).Debug("skills directory not found, skipping")
		return nil
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			bundled := filepath.Join(dir, entry.Name(), skillFileName)
			if _, err := os.Stat(bundled); err == nil {
				files = append(files, bundled)
			}
			continue
		}
		if filepath.Ext(entry.Name()) == ".md" {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files
}
