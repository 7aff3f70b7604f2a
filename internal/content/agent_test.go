package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentmarket/agent-market/internal/manifest"
)

func writeAgent(t *testing.T, pluginDir, file, doc string) {
	t.Helper()
	dir := filepath.Join(pluginDir, agentsSubdir)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(doc), 0o644))
}

func TestCollectAgents(t *testing.T) {
	dir := t.TempDir()

	writeAgent(t, dir, "reviewer.md", `---
name: reviewer
description: Reviews code changes
model: large
---

You are a careful code reviewer.
`)
	writeAgent(t, dir, "formatter.md", `---
name: formatter
description: Formats source files
---

Format everything.
`)

	agents, errs := CollectAgents(dir)
	require.Empty(t, errs)
	require.Len(t, agents, 2)

	// Files enumerate in name order
	assert.Equal(t, "formatter", agents[0].Name)
	assert.Equal(t, "reviewer", agents[1].Name)
	assert.Equal(t, "large", agents[1].Model)
	assert.Empty(t, agents[0].Model)
	assert.Equal(t, "Reviews code changes", agents[1].Description)
}

func TestCollectAgents_BodyPassthrough(t *testing.T) {
	dir := t.TempDir()

	body := "You are an agent.\n\n  indented line\n<!-- html comment -->\n"
	writeAgent(t, dir, "a.md", "---\nname: a\ndescription: d\n---\n"+body)

	agents, errs := CollectAgents(dir)
	require.Empty(t, errs)
	require.Len(t, agents, 1)

	// The body is handed over untouched
	assert.Equal(t, body, agents[0].Body)
}

func TestCollectAgents_MalformedSibling(t *testing.T) {
	dir := t.TempDir()

	writeAgent(t, dir, "good.md", `---
name: good
description: works fine
---
body
`)
	writeAgent(t, dir, "bad.md", `---
name: bad
---
no description
`)
	writeAgent(t, dir, "nofm.md", "just text, no front matter\n")

	agents, errs := CollectAgents(dir)

	// The good document still loads; each bad one reports its own error
	require.Len(t, agents, 1)
	assert.Equal(t, "good", agents[0].Name)
	require.Len(t, errs, 2)

	for _, err := range errs {
		var header *manifest.MalformedHeaderError
		require.ErrorAs(t, err, &header)
	}
}

func TestCollectAgents_DuplicateNames(t *testing.T) {
	dir := t.TempDir()

	doc := `---
name: twin
description: duplicated agent
---
body
`
	writeAgent(t, dir, "one.md", doc)
	writeAgent(t, dir, "two.md", doc)

	agents, errs := CollectAgents(dir)
	require.Len(t, agents, 1)
	require.Len(t, errs, 1)

	var dup *manifest.DuplicateNameError
	require.ErrorAs(t, errs[0], &dup)
	assert.Equal(t, "agent", dup.Kind)
	assert.Equal(t, "twin", dup.Name)
}

func TestAgents_MissingDirectory(t *testing.T) {
	agents, errs := CollectAgents(t.TempDir())
	assert.Empty(t, agents)
	assert.Empty(t, errs)
}

func TestAgents_IteratorRestartable(t *testing.T) {
	dir := t.TempDir()

	writeAgent(t, dir, "a.md", "---\nname: a\ndescription: d\n---\nbody\n")
	writeAgent(t, dir, "b.md", "---\nname: b\ndescription: d\n---\nbody\n")

	seq := Agents(dir)

	var first, second []string
	for a, err := range seq {
		require.NoError(t, err)
		first = append(first, a.Name)
	}
	for a, err := range seq {
		require.NoError(t, err)
		second = append(second, a.Name)
	}

	assert.Equal(t, []string{"a", "b"}, first)
	assert.Equal(t, first, second)
}

func TestAgents_IgnoresNonMarkdown(t *testing.T) {
	dir := t.TempDir()

	writeAgent(t, dir, "a.md", "---\nname: a\ndescription: d\n---\nbody\n")
	agentsDir := filepath.Join(dir, agentsSubdir)
	require.NoError(t, os.WriteFile(filepath.Join(agentsDir, "notes.txt"), []byte("skip me"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(agentsDir, "subdir"), 0o755))

	agents, errs := CollectAgents(dir)
	require.Empty(t, errs)
	require.Len(t, agents, 1)
}
