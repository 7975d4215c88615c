package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	catalogdto "finpro/internal/modules/catalog/dto"
	progressdto "finpro/internal/modules/progress/dto"
	apperrors "finpro/internal/platform/errors"
	"finpro/internal/ui/components"
	"finpro/internal/ui/theme"
	courseview "finpro/internal/ui/views/course"
	overviewview "finpro/internal/ui/views/overview"
)

// ─── ports ───────────────────────────────────────────────────────────────────

type catalogPort interface {
	Overview(ctx context.Context) (catalogdto.OverviewOutput, error)
	GetLesson(ctx context.Context, lessonID string) (catalogdto.LessonOutput, error)
	OpenVideo(ctx context.Context, lessonID string) (catalogdto.LessonOutput, error)
}

type progressPort interface {
	Load(ctx context.Context) (progressdto.LoadOutput, error)
	Toggle(ctx context.Context, moduleID, lessonID string) (progressdto.ToggleOutput, error)
	Status(ctx context.Context) (progressdto.StatusOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabCourse tabID = iota
	tabProgress
	tabCount
)

var tabLabels = [tabCount]string{"Course", "Progress"}

// ─── async messages ───────────────────────────────────────────────────────────

type progressLoadedMsg struct {
	out progressdto.LoadOutput
	err error
}

type toggledMsg struct {
	out progressdto.ToggleOutput
	err error
}

type syncStatusMsg struct {
	status progressdto.StatusOutput
	err    error
}

type syncTickMsg struct{}

type videoOpenedMsg struct {
	lesson catalogdto.LessonOutput
	err    error
}

const syncPollInterval = 750 * time.Millisecond

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab     key.Binding
	Toggle  key.Binding
	Video   key.Binding
	Reload  key.Binding
	Help    key.Binding
	Palette key.Binding
	Quit    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Toggle:  key.NewBinding(key.WithKeys(" ", "t"), key.WithHelp("space/t", "toggle lesson")),
		Video:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "watch video")),
		Reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload progress")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette: key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:    key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Toggle, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Toggle, k.Video, k.Reload},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. Lesson toggles stay disabled until the
// initial progress load has finished.
type Model struct {
	catalog  catalogPort
	progress progressPort

	courseView   courseview.Model
	overviewView overviewview.Model

	activeTab tabID
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	spinner   spinner.Model
	loaded    bool
	sync      progressdto.StatusOutput
	overall   catalogdto.ProgressOutput
	status    string
	width     int
	height    int
}

func NewModel(catalog catalogPort, progress progressPort) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Green)

	return Model{
		catalog:      catalog,
		progress:     progress,
		courseView:   courseview.New(catalog),
		overviewView: overviewview.New(catalog),
		activeTab:    tabCourse,
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(),
		spinner:      sp,
		status:       "loading progress",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadProgressCmd())
}

// ─── update ───────────────────────────────────────────────────────────────────

// Update routes keystrokes to the palette while it is open. Every other
// message still reaches the model so async results are never lost.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !m.palette.Visible() {
		return m.update(msg)
	}
	var pCmd tea.Cmd
	m.palette, pCmd = m.palette.Update(msg)
	if _, isKey := msg.(tea.KeyMsg); isKey {
		return m, pCmd
	}
	next, cmd := m.update(msg)
	return next, tea.Batch(pCmd, cmd)
}

func (m Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case spinner.TickMsg:
		if m.loaded {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progressLoadedMsg:
		m.loaded = true
		switch {
		case msg.err != nil:
			m.status = "progress: " + msg.err.Error()
		case msg.out.LocalOnly:
			m.status = "local mode: no Telegram identity, progress is read-only"
		case msg.out.Degraded:
			m.status = "progress server unreachable, showing defaults"
		default:
			m.status = fmt.Sprintf("progress synced: %d lessons", msg.out.Applied)
		}
		return m, m.refreshCmd()

	case toggledMsg:
		switch {
		case msg.err != nil:
			m.status = "toggle: " + msg.err.Error()
			return m, nil
		case msg.out.Skipped:
			m.status = "open from Telegram to track progress"
			return m, nil
		}
		state := "not completed"
		if msg.out.Completed {
			state = "completed"
		}
		m.status = fmt.Sprintf("lesson %s marked %s", msg.out.LessonID, state)
		return m, m.refreshCmd()

	case syncStatusMsg:
		if msg.err == nil {
			m.sync = msg.status
		}
		if m.sync.InFlight > 0 {
			return m, tea.Tick(syncPollInterval, func(time.Time) tea.Msg { return syncTickMsg{} })
		}
		return m, nil

	case syncTickMsg:
		return m, m.syncStatusCmd()

	case videoOpenedMsg:
		if msg.err != nil {
			m.status = "video: " + msg.err.Error()
		} else {
			m.status = "playing " + msg.lesson.Title
		}
		return m, nil

	case courseview.CatalogLoadedMsg:
		if msg.Err == nil {
			m.overall = msg.Overview.Overall
		}

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		if m.courseView.Filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case msg.String() == "shift+tab":
			m.activeTab = (m.activeTab + tabCount - 1) % tabCount
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		case key.Matches(msg, m.keys.Palette):
			return m, m.palette.Open()
		case key.Matches(msg, m.keys.Reload):
			return m.reload()
		case key.Matches(msg, m.keys.Toggle):
			if m.activeTab == tabCourse {
				return m.toggleSelected()
			}
			return m, nil
		case key.Matches(msg, m.keys.Video):
			if _, lessonID, ok := m.courseView.SelectedLesson(); ok && m.activeTab == tabCourse {
				return m, m.openVideoCmd(lessonID)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch msg.(type) {
	case overviewview.LoadedMsg:
		m.overviewView, cmd = m.overviewView.Update(msg)
		return m, cmd
	case courseview.CatalogLoadedMsg, courseview.LessonLoadedMsg:
		m.courseView, cmd = m.courseView.Update(msg)
		return m, cmd
	}
	switch m.activeTab {
	case tabCourse:
		m.courseView, cmd = m.courseView.Update(msg)
	case tabProgress:
		m.overviewView, cmd = m.overviewView.Update(msg)
	}
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case !m.loaded:
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading progress…")
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.palette.View())
	case m.activeTab == tabProgress:
		content = m.overviewView.View()
	default:
		content = m.courseView.View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar)
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + tabLabels[i] + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + tabLabels[i] + " ")
		}
	}
	left := theme.Title.Render("Finansist PRO") + "  " + strings.Join(parts, theme.Muted.Render(" │ "))
	right := ""
	if m.loaded {
		right = theme.Done.Render(fmt.Sprintf("%d%% complete", m.overall.Percent))
	}
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	switch {
	case m.sync.InFlight > 0:
		left = theme.Hot.Render(fmt.Sprintf("● syncing %d", m.sync.InFlight)) + "  " + left
	case m.sync.Failed > 0:
		left = theme.Failed.Render(fmt.Sprintf("● %d not saved", m.sync.Failed)) + "  " + left
	}
	right := theme.Muted.Render("?:help  space:toggle  o:video  tab:switch  q:quit")
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	bar := left + strings.Repeat(" ", gap) + right
	return "\n" + lipgloss.NewStyle().Background(theme.Mantle).Width(m.width).Render(bar)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, nil
	}
	switch parts[0] {
	case "toggle":
		if len(parts) == 3 {
			if !m.loaded {
				m.status = "still loading progress"
				return m, nil
			}
			return m, m.toggleCmd(parts[1], parts[2])
		}
		return m.toggleSelected()
	case "lesson":
		if len(parts) < 2 {
			m.status = "usage: lesson <lesson>"
			return m, nil
		}
		cmd, ok := m.courseView.Select(parts[1])
		if !ok {
			m.status = "unknown lesson: " + parts[1]
			return m, nil
		}
		m.activeTab = tabCourse
		return m, cmd
	case "video":
		_, lessonID, ok := m.courseView.SelectedLesson()
		if len(parts) > 1 {
			lessonID, ok = parts[1], true
		}
		if !ok {
			m.status = "no lesson selected"
			return m, nil
		}
		return m, m.openVideoCmd(lessonID)
	case "reload":
		return m.reload()
	case "status":
		m.status = fmt.Sprintf("submitted %d, failed %d, in flight %d", m.sync.Submitted, m.sync.Failed, m.sync.InFlight)
		return m, m.syncStatusCmd()
	case "course":
		m.activeTab = tabCourse
	case "progress":
		m.activeTab = tabProgress
	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m Model) toggleSelected() (tea.Model, tea.Cmd) {
	if !m.loaded {
		m.status = "still loading progress"
		return m, nil
	}
	moduleID, lessonID, ok := m.courseView.SelectedLesson()
	if !ok {
		m.status = "no lesson selected"
		return m, nil
	}
	return m, m.toggleCmd(moduleID, lessonID)
}

func (m Model) reload() (tea.Model, tea.Cmd) {
	if !m.loaded {
		return m, nil
	}
	m.status = "reloading progress"
	return m, m.loadProgressCmd()
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width, Height: max(m.height-4, 1)}
	m.courseView, _ = m.courseView.Update(sz)
	m.overviewView, _ = m.overviewView.Update(sz)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) loadProgressCmd() tea.Cmd {
	return func() tea.Msg {
		out, err := m.progress.Load(context.Background())
		return progressLoadedMsg{out: out, err: err}
	}
}

func (m Model) toggleCmd(moduleID, lessonID string) tea.Cmd {
	return func() tea.Msg {
		out, err := m.progress.Toggle(context.Background(), moduleID, lessonID)
		if errors.Is(err, apperrors.ErrNotLoaded) {
			err = fmt.Errorf("still loading progress")
		}
		return toggledMsg{out: out, err: err}
	}
}

func (m Model) openVideoCmd(lessonID string) tea.Cmd {
	return func() tea.Msg {
		lesson, err := m.catalog.OpenVideo(context.Background(), lessonID)
		return videoOpenedMsg{lesson: lesson, err: err}
	}
}

func (m Model) syncStatusCmd() tea.Cmd {
	return func() tea.Msg {
		status, err := m.progress.Status(context.Background())
		return syncStatusMsg{status: status, err: err}
	}
}

func (m Model) refreshCmd() tea.Cmd {
	return tea.Batch(m.courseView.Refresh(), m.overviewView.Refresh(), m.syncStatusCmd())
}
