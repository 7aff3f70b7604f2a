package content

import (
	"iter"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/agentmarket/agent-market/internal/manifest"
)

const (
	agentsSubdir = "agents"
	skillsSubdir = "skills"
	// skillFileName is the manifest document of a directory-style skill
	skillFileName = "SKILL.md"
)

// AgentDefinition is one agent prompt document: its parsed header plus the
// untouched prompt body.
type AgentDefinition struct {
	Name        string
	Description string
	Model       string // optional execution-tier hint, free-form
	Path        string
	Body        string
}

// Agents returns a lazy sequence over the agent documents of a plugin
// directory, one element per .md file under agents/ in filename order. A
// malformed document yields a MalformedHeaderError and enumeration continues
// with its siblings. An absent agents directory yields an empty sequence.
func Agents(pluginDir string) iter.Seq2[*AgentDefinition, error] {
	dir := filepath.Join(pluginDir, agentsSubdir)

	return func(yield func(*AgentDefinition, error) bool) {
		for _, path := range markdownFiles(dir) {
			agent, err := loadAgent(path)
			if !yield(agent, err) {
				return
			}
		}
	}
}

// CollectAgents drains Agents into a slice, gathering per-document errors
// and flagging duplicate agent names.
func CollectAgents(pluginDir string) ([]*AgentDefinition, []error) {
	var agents []*AgentDefinition
	var errs []error

	seen := make(map[string]bool)
	for agent, err := range Agents(pluginDir) {
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if seen[agent.Name] {
			errs = append(errs, &manifest.DuplicateNameError{Kind: "agent", Name: agent.Name, File: agent.Path})
			continue
		}
		seen[agent.Name] = true
		agents = append(agents, agent)
	}

	logrus.WithFields(logrus.Fields{
		"dir":    pluginDir,
		"agents": len(agents),
		"errors": len(errs),
	}).Debug("collected agents")

	return agents, errs
}

// loadAgent reads and parses a single agent markdown file.
func loadAgent(path string) (*AgentDefinition, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &manifest.MalformedHeaderError{File: path, Reason: err.Error()}
	}

	h, err := parseHeader(path, raw)
	if err != nil {
		return nil, err
	}

	return &AgentDefinition{
		Name:        h.Name,
		Description: h.Description,
		Model:       h.Model,
		Path:        path,
		Body:        body(string(raw)),
	}, nil
}

// markdownFiles lists the .md files directly under dir in sorted order. A
// missing or unreadable directory produces an empty list.
func markdownFiles(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		logrus.WithField("dir", dir).Debug("content directory not found, skipping")
		return nil
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files
}
