package markdown

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const separator = "---\n"

// SplitFrontmatter decodes a leading YAML block into out and returns the body.
// Content without a block leaves out untouched.
func SplitFrontmatter(content string, out any) (string, error) {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	if !strings.HasPrefix(content, separator) {
		return content, nil
	}
	rest := strings.TrimPrefix(content, separator)
	idx := strings.Index(rest, "\n---\n")
	if idx < 0 {
		if !strings.HasSuffix(rest, "\n---") {
			return "", fmt.Errorf("invalid frontmatter: missing closing separator")
		}
		idx = len(rest) - len("\n---")
	}
	raw := rest[:idx]
	body := strings.TrimPrefix(rest[idx:], "\n---")
	body = strings.TrimPrefix(body, "\n")

	if err := yaml.Unmarshal([]byte(raw), out); err != nil {
		return "", fmt.Errorf("unmarshal frontmatter: %w", err)
	}
	return body, nil
}
