package overview

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	catalogdto "finpro/internal/modules/catalog/dto"
	"finpro/internal/ui/theme"
)

type Port interface {
	Overview(ctx context.Context) (catalogdto.OverviewOutput, error)
}

type LoadedMsg struct {
	Overview catalogdto.OverviewOutput
	Err      error
}

// Model renders overall and per-module completion bars.
type Model struct {
	port     Port
	overview catalogdto.OverviewOutput
	bar      progress.Model
	err      error
	width    int
	height   int
}

func New(port Port) Model {
	bar := progress.New(progress.WithGradient(string(theme.Teal), string(theme.Green)))
	bar.Width = 40
	return Model{port: port, bar: bar}
}

func (m Model) Refresh() tea.Cmd {
	return func() tea.Msg {
		out, err := m.port.Overview(context.Background())
		return LoadedMsg{Overview: out, Err: err}
	}
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.bar.Width = min(max(m.width-40, 10), 60)
	case LoadedMsg:
		m.err = msg.Err
		if msg.Err == nil {
			m.overview = msg.Overview
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.err != nil {
		return theme.Failed.Render("overview: " + m.err.Error())
	}
	var sb strings.Builder
	overall := m.overview.Overall
	sb.WriteString(theme.Title.Render("Course progress") + "\n\n")
	sb.WriteString(fmt.Sprintf("%s  %d of %d lessons\n\n", m.bar.ViewAs(ratio(overall.Percent)), overall.Completed, overall.Total))

	for _, module := range m.overview.Modules {
		p := module.Progress
		title := lipgloss.NewStyle().Width(32).Render(module.Title)
		sb.WriteString(fmt.Sprintf("%s %s %s\n", title, m.bar.ViewAs(ratio(p.Percent)), theme.Muted.Render(fmt.Sprintf("%d/%d", p.Completed, p.Total))))
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(sb.String())
}

func ratio(percent int) float64 {
	return float64(percent) / 100
}
