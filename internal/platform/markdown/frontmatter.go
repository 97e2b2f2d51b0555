package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const fence = "---"

// WithFrontmatter renders meta as a YAML block in front of body.
func WithFrontmatter(meta map[string]any, body string) (string, error) {
	var buf bytes.Buffer
	buf.WriteString(fence + "\n")
	if len(meta) > 0 {
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(meta); err != nil {
			return "", fmt.Errorf("encode frontmatter: %w", err)
		}
		if err := enc.Close(); err != nil {
			return "", fmt.Errorf("encode frontmatter: %w", err)
		}
	}
	buf.WriteString(fence + "\n\n")
	buf.WriteString(strings.TrimLeft(body, "\n"))
	return buf.String(), nil
}

// SplitFrontmatter returns the decoded metadata and the remaining body.
// Documents without a leading fence have empty metadata.
func SplitFrontmatter(doc string) (map[string]any, string, error) {
	doc = strings.ReplaceAll(doc, "\r\n", "\n")
	if !strings.HasPrefix(doc, fence+"\n") {
		return map[string]any{}, doc, nil
	}
	rest := doc[len(fence)+1:]
	end := strings.Index(rest, "\n"+fence+"\n")
	raw := ""
	switch {
	case strings.HasPrefix(rest, fence+"\n"):
		rest = rest[len(fence)+1:]
	case end >= 0:
		raw = rest[:end]
		rest = rest[end+len(fence)+2:]
	default:
		return nil, "", fmt.Errorf("frontmatter is not closed")
	}
	meta := map[string]any{}
	if err := yaml.Unmarshal([]byte(raw), &meta); err != nil {
		return nil, "", fmt.Errorf("decode frontmatter: %w", err)
	}
	return meta, strings.TrimLeft(rest, "\n"), nil
}
