package markdown_test

import (
	"testing"

	"finpro/internal/platform/markdown"
)

type meta struct {
	ID        string `yaml:"id"`
	Completed bool   `yaml:"completed"`
}

func TestSplitFrontmatter(t *testing.T) {
	t.Parallel()
	var m meta
	body, err := markdown.SplitFrontmatter("---\r\nid: 1-1\r\ncompleted: true\r\n---\r\nHello **world**\r\n", &m)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	if m.ID != "1-1" || !m.Completed {
		t.Fatalf("unexpected meta: %+v", m)
	}
	if body != "Hello **world**\n" {
		t.Fatalf("unexpected body: %q", body)
	}
}

func TestSplitFrontmatterWithoutBlockOrBody(t *testing.T) {
	t.Parallel()
	var m meta
	body, err := markdown.SplitFrontmatter("plain text", &m)
	if err != nil || body != "plain text" || m.ID != "" {
		t.Fatalf("plain content should pass through: body=%q meta=%+v err=%v", body, m, err)
	}
	body, err = markdown.SplitFrontmatter("---\nid: x\n---", &m)
	if err != nil || body != "" || m.ID != "x" {
		t.Fatalf("block-only content: body=%q meta=%+v err=%v", body, m, err)
	}
	if _, err := markdown.SplitFrontmatter("---\nid: x\n", &m); err == nil {
		t.Fatalf("unterminated block should fail")
	}
}
