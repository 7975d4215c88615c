package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"finpro/internal/modules/catalog/domain"
	catalogout "finpro/internal/modules/catalog/port/out"
	"finpro/internal/platform/markdown"
	"finpro/internal/platform/slug"
)

const moduleFile = "module.md"

// MarkdownDirSource reads one subdirectory per module. Each holds a module.md
// and one markdown file per lesson; frontmatter carries the fields and the
// body becomes the description. Directories and files load in name order.
type MarkdownDirSource struct {
	root string
}

func NewMarkdownDirSource(root string) catalogout.Source {
	return &MarkdownDirSource{root: root}
}

type moduleMeta struct {
	ID    string `yaml:"id"`
	Title string `yaml:"title"`
	Icon  string `yaml:"icon"`
}

type lessonMeta struct {
	ID        string `yaml:"id"`
	Title     string `yaml:"title"`
	VideoURL  string `yaml:"video_url"`
	Duration  string `yaml:"duration"`
	Completed bool   `yaml:"completed"`
}

func (s *MarkdownDirSource) Load(ctx context.Context) (domain.Catalog, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("read catalog dir: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	catalog := domain.Catalog{}
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return domain.Catalog{}, err
		}
		module, err := loadModuleDir(filepath.Join(s.root, entry.Name()))
		if err != nil {
			return domain.Catalog{}, err
		}
		catalog.Modules = append(catalog.Modules, module)
	}
	if len(catalog.Modules) == 0 {
		return domain.Catalog{}, fmt.Errorf("catalog dir %s has no modules", s.root)
	}
	return catalog, nil
}

func loadModuleDir(dir string) (domain.Module, error) {
	var meta moduleMeta
	body, err := readFrontmatter(filepath.Join(dir, moduleFile), &meta)
	if err != nil {
		return domain.Module{}, err
	}
	module := domain.Module{
		ID:          firstNonBlank(meta.ID, slug.Make(filepath.Base(dir))),
		Title:       meta.Title,
		Description: strings.TrimSpace(body),
		Icon:        meta.Icon,
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.md"))
	if err != nil {
		return domain.Module{}, fmt.Errorf("list lessons in %s: %w", dir, err)
	}
	sort.Strings(files)
	for _, path := range files {
		if filepath.Base(path) == moduleFile {
			continue
		}
		var lm lessonMeta
		body, err := readFrontmatter(path, &lm)
		if err != nil {
			return domain.Module{}, err
		}
		module.Lessons = append(module.Lessons, domain.Lesson{
			ID:          firstNonBlank(lm.ID, slug.Make(strings.TrimSuffix(filepath.Base(path), ".md"))),
			Title:       lm.Title,
			Description: strings.TrimSpace(body),
			VideoURL:    lm.VideoURL,
			Duration:    lm.Duration,
			Completed:   lm.Completed,
		})
	}
	return module, nil
}

func readFrontmatter(path string, out any) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	body, err := markdown.SplitFrontmatter(string(raw), out)
	if err != nil {
		return "", fmt.Errorf("parse %s: %w", path, err)
	}
	return body, nil
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
