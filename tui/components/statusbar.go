package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/tonhe/inkboard/tui/styles"
)

// Status is what the status bar reports about the shown frame.
type Status struct {
	Rendered time.Time
	FrameID  string
	Trend    []float64
	Err      error
	Busy     bool
}

// RenderStatusBar renders the two-line footer: frame info on top, key
// hints below.
func RenderStatusBar(theme styles.Theme, st Status, width int) string {
	bg := theme.Bar
	bgStyle := lipgloss.NewStyle().Background(bg)
	sep := lipgloss.NewStyle().Foreground(theme.Rule).Background(bg).Render(" | ")

	renderedStr := "never"
	if !st.Rendered.IsZero() {
		renderedStr = st.Rendered.Format("2006-01-02 15:04")
	}
	timeSeg := lipgloss.NewStyle().Foreground(theme.Ink).Background(bg).Render("at: " + renderedStr)

	id := st.FrameID
	if len(id) > 8 {
		id = id[:8]
	}
	idSeg := lipgloss.NewStyle().Foreground(theme.Muted).Background(bg).Render("frame: " + id)

	state, stateColor := "ok", theme.OK
	switch {
	case st.Busy:
		state, stateColor = "rendering...", theme.Warn
	case st.Err != nil:
		state, stateColor = "degraded: "+firstLine(st.Err.Error()), theme.Err
	}
	stateSeg := lipgloss.NewStyle().Foreground(stateColor).Background(bg).Render(state)

	top := bgStyle.Render(" ") + timeSeg + sep + idSeg + sep
	if len(st.Trend) > 0 {
		top += lipgloss.NewStyle().Foreground(theme.Trend).Background(bg).Render(Sparkline(st.Trend, min(len(st.Trend), 24))) + sep
	}
	top += stateSeg
	top = fill(bgStyle, top, width)

	keyStyle := lipgloss.NewStyle().Foreground(theme.Accent).Background(bg).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(theme.Muted).Background(bg)
	spacer := bgStyle.Render("  ")

	keys := bgStyle.Render(" ") +
		keyStyle.Render("h/l") + descStyle.Render(":±1h") + spacer +
		keyStyle.Render("H/L") + descStyle.Render(":±15m") + spacer +
		keyStyle.Render("n") + descStyle.Render(":now") + spacer +
		keyStyle.Render("tab") + descStyle.Render(":next") + spacer +
		keyStyle.Render("r") + descStyle.Render(":refetch") + spacer +
		keyStyle.Render("?") + descStyle.Render(":help") + spacer +
		keyStyle.Render("q") + descStyle.Render(":quit")

	return lipgloss.JoinVertical(lipgloss.Left, top, fill(bgStyle, keys, width))
}

func fill(bg lipgloss.Style, s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		s += bg.Render(strings.Repeat(" ", width-w))
	}
	return s
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return fmt.Sprintf("%s (+more)", s[:i])
	}
	return s
}
