package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentmarket/agent-market/internal/manifest"
)

func writeLooseSkill(t *testing.T, pluginDir, file, doc string) {
	t.Helper()
	dir := filepath.Join(pluginDir, skillsSubdir)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, file), []byte(doc), 0o644))
}

func writeBundledSkill(t *testing.T, pluginDir, name, doc string) {
	t.Helper()
	dir := filepath.Join(pluginDir, skillsSubdir, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, skillFileName), []byte(doc), 0o644))
}

func TestCollectSkills_LooseFiles(t *testing.T) {
	dir := t.TempDir()

	writeLooseSkill(t, dir, "deploy.md", `---
name: deploy
description: Deploys the service
---

How to deploy.
`)

	skills, errs := CollectSkills(dir)
	require.Empty(t, errs)
	require.Len(t, skills, 1)
	assert.Equal(t, "deploy", skills[0].Name)
	assert.Equal(t, "Deploys the service", skills[0].Description)
	assert.Contains(t, skills[0].Body, "How to deploy.")
}

func TestCollectSkills_Bundles(t *testing.T) {
	dir := t.TempDir()

	writeBundledSkill(t, dir, "release", `---
name: release
description: Cuts a release
---
steps
`)
	writeLooseSkill(t, dir, "deploy.md", `---
name: deploy
description: Deploys the service
---
steps
`)

	// A directory without SKILL.md is ignored
	require.NoError(t, os.MkdirAll(filepath.Join(dir, skillsSubdir, "empty"), 0o755))

	skills, errs := CollectSkills(dir)
	require.Empty(t, errs)
	require.Len(t, skills, 2)

	names := []string{skills[0].Name, skills[1].Name}
	assert.ElementsMatch(t, []string{"release", "deploy"}, names)
}

func TestCollectSkills_MissingDescription(t *testing.T) {
	dir := t.TempDir()

	writeLooseSkill(t, dir, "bad.md", `---
name: bad
---
body
`)
	writeLooseSkill(t, dir, "good.md", `---
name: good
description: fine
---
body
`)

	skills, errs := CollectSkills(dir)

	require.Len(t, skills, 1)
	assert.Equal(t, "good", skills[0].Name)

	require.Len(t, errs, 1)
	var header *manifest.MalformedHeaderError
	require.ErrorAs(t, errs[0], &header)
	assert.Contains(t, header.Reason, "description")
}

func TestCollectSkills_DuplicateNames(t *testing.T) {
	dir := t.TempDir()

	doc := `---
name: twin
description: duplicated skill
---
body
`
	writeLooseSkill(t, dir, "one.md", doc)
	writeBundledSkill(t, dir, "two", doc)

	skills, errs := CollectSkills(dir)
	require.Len(t, skills, 1)
	require.Len(t, errs, 1)

	var dup *manifest.DuplicateNameError
	require.ErrorAs(t, errs[0], &dup)
	assert.Equal(t, "skill", dup.Kind)
}

func TestSkills_MissingDirectory(t *testing.T) {
	skills, errs := CollectSkills(t.TempDir())
	assert.Empty(t, skills)
	assert.Empty(t, errs)
}
