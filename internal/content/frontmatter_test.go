package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentmarket/agent-market/internal/manifest"
)

func TestParseHeader(t *testing.T) {
	doc := []byte(`---
name: helper
description: Helps with things
model: small
---
body text
`)

	h, err := parseHeader("x.md", doc)
	require.NoError(t, err)
	assert.Equal(t, "helper", h.Name)
	assert.Equal(t, "Helps with things", h.Description)
	assert.Equal(t, "small", h.Model)
}

func TestParseHeader_Errors(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		reason string
	}{
		{
			"NoFrontMatter",
			"just a document\n",
			"missing front matter",
		},
		{
			"MissingName",
			"---\ndescription: d\n---\nbody\n",
			`missing required key "name"`,
		},
		{
			"MissingDescription",
			"---\nname: n\n---\nbody\n",
			`missing required key "description"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseHeader("x.md", []byte(tt.doc))
			require.Error(t, err)

			var header *manifest.MalformedHeaderError
			require.ErrorAs(t, err, &header)
			assert.Equal(t, "x.md", header.File)
			assert.Contains(t, header.Reason, tt.reason)
		})
	}
}

func TestBody(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			"WithFrontMatter",
			"---\nname: n\n---\nrest of file\n",
			"rest of file\n",
		},
		{
			"NoFence",
			"plain document\n",
			"plain document\n",
		},
		{
			"UnterminatedFence",
			"---\nname: n\nno closing fence",
			"---\nname: n\nno closing fence",
		},
		{
			"EmptyBody",
			"---\nname: n\n---\n",
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, body(tt.doc))
		})
	}
}
