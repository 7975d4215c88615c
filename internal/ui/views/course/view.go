package course

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	catalogdto "finpro/internal/modules/catalog/dto"
	"finpro/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Overview(ctx context.Context) (catalogdto.OverviewOutput, error)
	GetLesson(ctx context.Context, lessonID string) (catalogdto.LessonOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type CatalogLoadedMsg struct {
	Overview catalogdto.OverviewOutput
	Err      error
}

type LessonLoadedMsg struct {
	Lesson catalogdto.LessonOutput
	Err    error
}

// ─── list item ───────────────────────────────────────────────────────────────

type lessonItem struct {
	module string
	lesson catalogdto.LessonOutput
}

func (i lessonItem) Title() string {
	return theme.Check(i.lesson.Completed) + " " + i.lesson.Title
}

func (i lessonItem) Description() string {
	return fmt.Sprintf("%s · %s", i.module, i.lesson.Duration)
}

func (i lessonItem) FilterValue() string { return i.module + " " + i.lesson.Title }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     Port
	list     list.Model
	detail   viewport.Model
	renderer *glamour.TermRenderer
	lesson   catalogdto.LessonOutput
	ready    bool
	width    int
	height   int
}

func New(port Port) Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.Foreground(theme.Green).BorderForeground(theme.Green)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.Foreground(theme.Teal).BorderForeground(theme.Green)

	l := list.New(nil, delegate, 0, 0)
	l.Title = "Lessons"
	l.Styles.Title = theme.Title
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().Background(theme.Mantle).Foreground(theme.Text)

	r, _ := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(0),
	)

	return Model{port: port, list: l, detail: vp, renderer: r}
}

// Refresh reloads the catalog. The selected row is kept by index.
func (m Model) Refresh() tea.Cmd {
	return func() tea.Msg {
		overview, err := m.port.Overview(context.Background())
		return CatalogLoadedMsg{Overview: overview, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		m.detail.SetContent(m.renderDetail())

	case CatalogLoadedMsg:
		if msg.Err != nil {
			m.list.Title = "Lessons: " + msg.Err.Error()
			return m, nil
		}
		m.ready = true
		var items []list.Item
		for _, module := range msg.Overview.Modules {
			for _, lesson := range module.Lessons {
				items = append(items, lessonItem{module: module.Title, lesson: lesson})
			}
		}
		cmds = append(cmds, m.list.SetItems(items))
		if item, ok := m.list.SelectedItem().(lessonItem); ok {
			cmds = append(cmds, m.loadLessonCmd(item.lesson.ID))
		}
		return m, tea.Batch(cmds...)

	case LessonLoadedMsg:
		if msg.Err == nil {
			m.lesson = msg.Lesson
			m.detail.SetContent(m.renderDetail())
		}
		return m, nil
	}

	if !m.ready {
		return m, nil
	}
	prev := m.list.Index()
	var lCmd tea.Cmd
	m.list, lCmd = m.list.Update(msg)
	cmds = append(cmds, lCmd)
	if m.list.Index() != prev {
		if item, ok := m.list.SelectedItem().(lessonItem); ok {
			cmds = append(cmds, m.loadLessonCmd(item.lesson.ID))
		}
	}
	var vCmd tea.Cmd
	m.detail, vCmd = m.detail.Update(msg)
	cmds = append(cmds, vCmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	listW := m.width * 45 / 100
	detailW := m.width - listW

	listPane := lipgloss.NewStyle().Width(listW).Height(m.height).Render(m.list.View())
	detailPane := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Surface1).
		Background(theme.Mantle).
		Width(max(detailW-2, 1)).
		Height(max(m.height-2, 1)).
		Render(m.detail.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, listPane, detailPane)
}

// SelectedLesson returns the module and lesson under the cursor.
func (m Model) SelectedLesson() (moduleID, lessonID string, ok bool) {
	item, ok := m.list.SelectedItem().(lessonItem)
	if !ok {
		return "", "", false
	}
	return item.lesson.ModuleID, item.lesson.ID, true
}

// Select moves the cursor to lessonID if it is listed.
func (m *Model) Select(lessonID string) (tea.Cmd, bool) {
	for i, it := range m.list.Items() {
		if item, ok := it.(lessonItem); ok && item.lesson.ID == lessonID {
			m.list.Select(i)
			return m.loadLessonCmd(lessonID), true
		}
	}
	return nil, false
}

func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) resize() {
	listW := m.width * 45 / 100
	detailW := m.width - listW
	m.list.SetSize(listW, m.height)
	m.detail.Width = max(detailW-4, 1)
	m.detail.Height = max(m.height-4, 1)
	if m.renderer != nil && m.detail.Width > 4 {
		if r, err := glamour.NewTermRenderer(glamour.WithStylePath("dark"), glamour.WithWordWrap(m.detail.Width-4)); err == nil {
			m.renderer = r
		}
	}
}

func (m Model) renderDetail() string {
	l := m.lesson
	if l.ID == "" {
		return theme.Muted.Render("Select a lesson to see details")
	}
	var md strings.Builder
	fmt.Fprintf(&md, "# %s\n\n", l.Title)
	if l.Description != "" {
		md.WriteString(l.Description + "\n\n")
	}
	fmt.Fprintf(&md, "- **Duration:** %s\n", l.Duration)
	fmt.Fprintf(&md, "- **Video:** %s\n", l.VideoURL)

	body := md.String()
	if m.renderer != nil {
		if out, err := m.renderer.Render(body); err == nil {
			body = out
		}
	}
	status := theme.Pending.Render("not completed")
	if l.Completed {
		status = theme.Done.Render("completed")
	}
	return body + "\n  " + status + "\n\n  " + theme.Muted.Render("space: toggle completion  o: watch video")
}

func (m Model) loadLessonCmd(id string) tea.Cmd {
	return func() tea.Msg {
		lesson, err := m.port.GetLesson(context.Background(), id)
		return LessonLoadedMsg{Lesson: lesson, Err: err}
	}
}
