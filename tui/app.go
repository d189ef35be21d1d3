package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tonhe/inkboard/internal/config"
	"github.com/tonhe/inkboard/internal/dashboard"
	"github.com/tonhe/inkboard/internal/engine"
	"github.com/tonhe/inkboard/tui/components"
	"github.com/tonhe/inkboard/tui/keys"
	"github.com/tonhe/inkboard/tui/styles"
	"github.com/tonhe/inkboard/tui/views"
)

// AppState represents the current screen of the application.
type AppState int

const (
	StatePreview AppState = iota
	StateHelp
)

const renderTimeout = 30 * time.Second

// TickMsg re-renders the shown dashboard so the clock moves on.
type TickMsg struct{}

// FrameMsg carries the result of a background render.
type FrameMsg struct {
	Index  int
	Offset time.Duration
	Frame  *engine.Frame
	Err    error
}

// AppModel is the root Bubble Tea model of the preview.
type AppModel struct {
	state   AppState
	theme   styles.Theme
	jobs    []engine.Job
	active  int
	offset  time.Duration
	cached  map[string]any
	frame   *engine.Frame
	err     error
	busy    bool
	tick    time.Duration
	version string
	preview views.PreviewView
	help    views.HelpView
	width   int
	height  int
}

// NewAppModel creates an AppModel that previews jobs in order. Output
// settings of the jobs are ignored.
func NewAppModel(cfg *config.Config, jobs []engine.Job, version string) AppModel {
	theme := styles.DefaultTheme
	if t := styles.GetThemeByName(cfg.Theme); t != nil {
		theme = *t
	}
	return AppModel{
		state:   StatePreview,
		theme:   theme,
		jobs:    jobs,
		cached:  make(map[string]any),
		tick:    time.Minute,
		version: version,
		preview: views.NewPreviewView(theme),
		help:    views.NewHelpView(theme),
	}
}

// Init starts the first render and the tick loop.
func (m AppModel) Init() tea.Cmd {
	if len(m.jobs) == 0 {
		return nil
	}
	return tea.Batch(m.renderCmd(true), tickCmd(m.tick))
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return TickMsg{}
	})
}

// renderCmd renders the active job at the current offset. Without
// refetch, data fetched earlier for the dashboard is reused.
func (m AppModel) renderCmd(refetch bool) tea.Cmd {
	idx, offset := m.active, m.offset
	job := m.jobs[idx]
	base := job.Clock
	if base == nil {
		base = dashboard.SystemClock{}
	}
	job.Clock = dashboard.OffsetClock{Base: base, Offset: offset}
	job.OutputDir = ""
	if data, ok := m.cached[job.Name]; ok && !refetch {
		job.Fetch = engine.FetchFunc(func(context.Context, time.Time) (any, error) { return data, nil })
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), renderTimeout)
		defer cancel()
		f, err := engine.Render(ctx, job)
		return FrameMsg{Index: idx, Offset: offset, Frame: f, Err: err}
	}
}

// Update handles messages and key bindings.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Body height = total - 1 (header) - 2 (status bar lines)
		m.preview.SetSize(msg.Width, msg.Height-3)
		m.help.SetSize(msg.Width, msg.Height-3)
		return m, nil

	case TickMsg:
		if m.busy || len(m.jobs) == 0 {
			return m, tickCmd(m.tick)
		}
		m.busy = true
		return m, tea.Batch(m.renderCmd(false), tickCmd(m.tick))

	case FrameMsg:
		// Drop results for a dashboard or offset the user moved away from.
		if msg.Index != m.active || msg.Offset != m.offset {
			return m, nil
		}
		m.busy = false
		m.err = msg.Err
		if msg.Frame != nil {
			m.frame = msg.Frame
			m.err = msg.Frame.Err
			m.cached[m.jobs[msg.Index].Name] = msg.Frame.Data
			m.preview.SetBitmap(msg.Frame.Bitmap)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := keys.DefaultKeyMap
	if key.Matches(msg, km.Quit) {
		return m, tea.Quit
	}
	if m.state == StateHelp {
		if key.Matches(msg, km.Help, km.Escape) {
			m.help.Toggle()
			m.state = StatePreview
		}
		return m, nil
	}
	if len(m.jobs) == 0 {
		return m, nil
	}

	refetch := false
	switch {
	case key.Matches(msg, km.Help):
		m.help.Toggle()
		m.state = StateHelp
		return m, nil
	case key.Matches(msg, km.Invert):
		m.preview.ToggleInvert()
		return m, nil
	case key.Matches(msg, km.Earlier):
		m.offset -= time.Hour
	case key.Matches(msg, km.Later):
		m.offset += time.Hour
	case key.Matches(msg, km.Back):
		m.offset -= 15 * time.Minute
	case key.Matches(msg, km.Forward):
		m.offset += 15 * time.Minute
	case key.Matches(msg, km.Now):
		m.offset = 0
	case key.Matches(msg, km.Next):
		m.active = (m.active + 1) % len(m.jobs)
		m.frame = nil
		m.preview.SetBitmap(nil)
	case key.Matches(msg, km.Refresh):
		refetch = true
	default:
		return m, nil
	}
	m.busy = true
	return m, m.renderCmd(refetch)
}

// View renders header, body and status bar.
func (m AppModel) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	name := ""
	if len(m.jobs) > 0 {
		name = m.jobs[m.active].Name
	}
	header := components.RenderHeader(m.theme, name, components.FormatOffset(m.offset), m.active, len(m.jobs), m.width, m.version)

	var body string
	switch m.state {
	case StateHelp:
		body = m.help.View()
	default:
		body = m.preview.View()
	}

	st := components.Status{Err: m.err, Busy: m.busy}
	if m.frame != nil {
		st.Rendered = m.frame.Rendered
		st.FrameID = m.frame.ID
		for _, s := range m.frame.Series {
			st.Trend = append(st.Trend, s.Value)
		}
	}
	statusBar := components.RenderStatusBar(m.theme, st, m.width)

	bodyHeight := max(m.height-1-2, 1) // 1 header line, 2 status bar lines
	bodyStyle := lipgloss.NewStyle().
		Width(m.width).
		Height(bodyHeight).
		Background(m.theme.Paper).
		Foreground(m.theme.Ink)

	return lipgloss.JoinVertical(lipgloss.Left, header, bodyStyle.Render(body), statusBar)
}
