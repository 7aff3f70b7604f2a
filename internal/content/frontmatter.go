// Package content enumerates the markdown agent and skill documents inside a
// plugin directory. Each document carries a YAML front matter header (name,
// description, optional model) followed by free-form prompt text; the body is
// never interpreted, only passed through to the host.
package content

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"

	"github.com/agentmarket/agent-market/internal/manifest"
)

// header is the parsed front matter of an agent or skill document.
type header struct {
	Name        string
	Description string
	Model       string
}

// parseHeader extracts the front matter from a markdown document. It returns
// a MalformedHeaderError when the header is missing, unparsable, or lacks a
// required key.
func parseHeader(path string, source []byte) (header, error) {
	var h header

	md := goldmark.New(
		goldmark.WithExtensions(meta.Meta),
	)

	var buf bytes.Buffer
	pctx := parser.NewContext()

	if err := md.Convert(source, &buf, parser.WithContext(pctx)); err != nil {
		return h, &manifest.MalformedHeaderError{File: path, Reason: err.Error()}
	}

	metaData := meta.Get(pctx)
	if metaData == nil {
		return h, &manifest.MalformedHeaderError{File: path, Reason: "missing front matter"}
	}

	h.Name, _ = metaData["name"].(string)
	h.Description, _ = metaData["description"].(string)
	h.Model, _ = metaData["model"].(string)

	if h.Name == "" {
		return h, &manifest.MalformedHeaderError{File: path, Reason: `missing required key "name"`}
	}
	if h.Description == "" {
		return h, &manifest.MalformedHeaderError{File: path, Reason: `missing required key "description"`}
	}

	return h, nil
}

// body returns everything after the front matter block, byte-for-byte. A
// document without a leading fence is returned whole.
func body(content string) string {
	if !strings.HasPrefix(content, "---") {
		return content
	}

	lines := strings.Split(content, "\n")
	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			end = i
			break
		}
	}
	if end == -1 {
		return content
	}

	return strings.Join(lines[end+1:], "\n")
}
