package domain

import (
	"fmt"
	"math"
	"strings"
)

type Lesson struct {
	ID          string `yaml:"id"`
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	VideoURL    string `yaml:"video_url"`
	Duration    string `yaml:"duration"`
	Completed   bool   `yaml:"completed"`
}

type Module struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Icon        string   `yaml:"icon"`
	Lessons     []Lesson `yaml:"lessons"`
}

type Catalog struct {
	Modules []Module `yaml:"modules"`
}

// Progress is a completed/total pair with its rounded percentage.
type Progress struct {
	Completed int
	Total     int
	Percent   int
}

// Percent returns round(100*completed/total), or 0 for an empty total.
func Percent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(100 * float64(completed) / float64(total)))
}

func NewProgress(completed, total int) Progress {
	return Progress{Completed: completed, Total: total, Percent: Percent(completed, total)}
}

func (m Module) Progress() Progress {
	done := 0
	for _, l := range m.Lessons {
		if l.Completed {
			done++
		}
	}
	return NewProgress(done, len(m.Lessons))
}

func (c Catalog) Progress() Progress {
	done, total := 0, 0
	for _, m := range c.Modules {
		p := m.Progress()
		done += p.Completed
		total += p.Total
	}
	return NewProgress(done, total)
}

func (c Catalog) Validate() error {
	moduleIDs := map[string]struct{}{}
	lessonIDs := map[string]string{}
	for _, m := range c.Modules {
		if strings.TrimSpace(m.ID) == "" {
			return fmt.Errorf("module id is required")
		}
		if strings.TrimSpace(m.Title) == "" {
			return fmt.Errorf("module %s: title is required", m.ID)
		}
		if _, dup := moduleIDs[m.ID]; dup {
			return fmt.Errorf("duplicate module id %q", m.ID)
		}
		moduleIDs[m.ID] = struct{}{}
		for _, l := range m.Lessons {
			if strings.TrimSpace(l.ID) == "" {
				return fmt.Errorf("module %s: lesson id is required", m.ID)
			}
			if strings.TrimSpace(l.Title) == "" {
				return fmt.Errorf("lesson %s: title is required", l.ID)
			}
			if owner, dup := lessonIDs[l.ID]; dup {
				return fmt.Errorf("duplicate lesson id %q (modules %s and %s)", l.ID, owner, m.ID)
			}
			lessonIDs[l.ID] = m.ID
		}
	}
	return nil
}

// Lesson returns a pointer into the catalog for in-place mutation.
func (c *Catalog) Lesson(moduleID, lessonID string) (*Lesson, bool) {
	for mi := range c.Modules {
		if c.Modules[mi].ID != moduleID {
			continue
		}
		for li := range c.Modules[mi].Lessons {
			if c.Modules[mi].Lessons[li].ID == lessonID {
				return &c.Modules[mi].Lessons[li], true
			}
		}
		return nil, false
	}
	return nil, false
}

// FindLesson looks a lesson up by id alone and reports its module id.
func (c *Catalog) FindLesson(lessonID string) (*Lesson, string, bool) {
	for mi := range c.Modules {
		for li := range c.Modules[mi].Lessons {
			if c.Modules[mi].Lessons[li].ID == lessonID {
				return &c.Modules[mi].Lessons[li], c.Modules[mi].ID, true
			}
		}
	}
	return nil, "", false
}

// Clone deep-copies the lesson slices so snapshots never alias live state.
func (c Catalog) Clone() Catalog {
	out := Catalog{Modules: make([]Module, len(c.Modules))}
	for i, m := range c.Modules {
		m.Lessons = append([]Lesson(nil), m.Lessons...)
		out.Modules[i] = m
	}
	return out
}
