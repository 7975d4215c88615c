package app

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	catalogdto "finpro/internal/modules/catalog/dto"
	progressdto "finpro/internal/modules/progress/dto"
)

type stubCatalog struct{}

func (stubCatalog) Overview(context.Context) (catalogdto.OverviewOutput, error) {
	return catalogdto.OverviewOutput{
		Overall: catalogdto.ProgressOutput{Completed: 1, Total: 2, Percent: 50},
		Modules: []catalogdto.ModuleOutput{{
			ID:    "m1",
			Title: "Basics",
			Lessons: []catalogdto.LessonOutput{
				{ID: "l1", ModuleID: "m1", Title: "Intro", Completed: true},
				{ID: "l2", ModuleID: "m1", Title: "Budget"},
			},
			Progress: catalogdto.ProgressOutput{Completed: 1, Total: 2, Percent: 50},
		}},
	}, nil
}

func (stubCatalog) GetLesson(_ context.Context, id string) (catalogdto.LessonOutput, error) {
	return catalogdto.LessonOutput{ID: id, ModuleID: "m1", Title: id}, nil
}

func (stubCatalog) OpenVideo(_ context.Context, id string) (catalogdto.LessonOutput, error) {
	return catalogdto.LessonOutput{ID: id, Title: id}, nil
}

type stubProgress struct {
	toggles []string
}

func (s *stubProgress) Load(context.Context) (progressdto.LoadOutput, error) {
	return progressdto.LoadOutput{UserID: 42, Applied: 1}, nil
}

func (s *stubProgress) Toggle(_ context.Context, moduleID, lessonID string) (progressdto.ToggleOutput, error) {
	s.toggles = append(s.toggles, moduleID+"/"+lessonID)
	return progressdto.ToggleOutput{ModuleID: moduleID, LessonID: lessonID, Completed: true}, nil
}

func (s *stubProgress) Status(context.Context) (progressdto.StatusOutput, error) {
	return progressdto.StatusOutput{Loaded: true, HasIdentity: true}, nil
}

func space() tea.KeyMsg { return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}} }

func TestToggleIsDisabledUntilProgressLoads(t *testing.T) {
	t.Parallel()
	progress := &stubProgress{}
	m := NewModel(stubCatalog{}, progress)

	next, cmd := m.Update(space())
	m = next.(Model)
	if cmd != nil {
		t.Fatalf("toggle before load should not schedule work")
	}
	if !strings.Contains(m.status, "loading") {
		t.Fatalf("expected loading status, got %q", m.status)
	}

	next, _ = m.Update(progressLoadedMsg{out: progressdto.LoadOutput{Applied: 1}})
	m = next.(Model)
	next, _ = m.Update(courseLoaded(t))
	m = next.(Model)
	if !m.loaded {
		t.Fatalf("model should be loaded")
	}
	if m.overall.Percent != 50 {
		t.Fatalf("expected overall 50%%, got %d", m.overall.Percent)
	}

	_, cmd = m.Update(space())
	if cmd == nil {
		t.Fatalf("toggle after load should schedule work")
	}
	msg := cmd()
	toggled, ok := msg.(toggledMsg)
	if !ok {
		t.Fatalf("expected toggledMsg, got %T", msg)
	}
	if toggled.out.LessonID != "l1" || len(progress.toggles) != 1 || progress.toggles[0] != "m1/l1" {
		t.Fatalf("unexpected toggle: %+v %v", toggled.out, progress.toggles)
	}
}

func TestSkippedToggleExplainsLocalMode(t *testing.T) {
	t.Parallel()
	m := NewModel(stubCatalog{}, &stubProgress{})
	next, _ := m.Update(progressLoadedMsg{out: progressdto.LoadOutput{LocalOnly: true}})
	m = next.(Model)
	if !strings.Contains(m.status, "local mode") {
		t.Fatalf("unexpected status %q", m.status)
	}
	next, cmd := m.Update(toggledMsg{out: progressdto.ToggleOutput{Skipped: true}})
	m = next.(Model)
	if cmd != nil {
		t.Fatalf("skipped toggle should not refresh")
	}
	if !strings.Contains(m.status, "Telegram") {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func courseLoaded(t *testing.T) tea.Msg {
	t.Helper()
	m := NewModel(stubCatalog{}, &stubProgress{})
	return m.courseView.Refresh()()
}

func TestVideoKeyOpensSelectedLesson(t *testing.T) {
	t.Parallel()
	m := NewModel(stubCatalog{}, &stubProgress{})
	next, _ := m.Update(courseLoaded(t))
	m = next.(Model)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'o'}})
	if cmd == nil {
		t.Fatalf("o should open the selected video")
	}
	opened, ok := cmd().(videoOpenedMsg)
	if !ok || opened.lesson.ID != "l1" {
		t.Fatalf("unexpected message %#v", opened)
	}
	next, _ = m.Update(opened)
	if got := next.(Model).status; got != "playing l1" {
		t.Fatalf("unexpected status %q", got)
	}
}

func TestProgressLoadReachesModelWhilePaletteIsOpen(t *testing.T) {
	t.Parallel()
	m := NewModel(stubCatalog{}, &stubProgress{})

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{':'}})
	m = next.(Model)
	if !m.palette.Visible() {
		t.Fatalf("palette should open while loading")
	}

	next, cmd := m.Update(progressLoadedMsg{out: progressdto.LoadOutput{UserID: 42, Applied: 1}})
	m = next.(Model)
	if !m.loaded {
		t.Fatalf("load result must not be swallowed by the palette")
	}
	if cmd == nil {
		t.Fatalf("load result should schedule a refresh")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	if m.palette.Visible() || !m.loaded {
		t.Fatalf("expected closed palette and loaded model, visible=%t loaded=%t", m.palette.Visible(), m.loaded)
	}
	if !strings.Contains(m.status, "progress synced") {
		t.Fatalf("unexpected status %q", m.status)
	}
	if _, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}); cmd == nil {
		t.Fatalf("reload should be available after load")
	}
}
