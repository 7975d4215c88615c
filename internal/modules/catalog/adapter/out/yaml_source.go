package out

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"finpro/internal/modules/catalog/domain"
	catalogout "finpro/internal/modules/catalog/port/out"
)

// YAMLSource reads a catalog file shaped like:
//
//	modules:
//	  - id: "1"
//	    title: Basics
//	    lessons:
//	      - {id: "1-1", title: Intro, duration: "12:30", completed: true}
type YAMLSource struct {
	path string
}

func NewYAMLSource(path string) catalogout.Source {
	return &YAMLSource{path: path}
}

func (s *YAMLSource) Load(_ context.Context) (domain.Catalog, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("read catalog file: %w", err)
	}
	catalog := domain.Catalog{}
	if err := yaml.Unmarshal(raw, &catalog); err != nil {
		return domain.Catalog{}, fmt.Errorf("decode catalog file %s: %w", s.path, err)
	}
	if len(catalog.Modules) == 0 {
		return domain.Catalog{}, fmt.Errorf("catalog file %s has no modules", s.path)
	}
	return catalog, nil
}
