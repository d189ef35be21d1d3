package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/tonhe/inkboard/tui/styles"
)

// RenderHeader renders the top bar with app name, dashboard, the
// time-travel offset and the version.
func RenderHeader(theme styles.Theme, dashName, offset string, index, total, width int, ver string) string {
	bg := theme.Bar
	left := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Background(bg).
		Bold(true).
		Render("inkboard")

	displayName := dashName
	if displayName == "" {
		displayName = "(no dashboard)"
	}
	center := lipgloss.NewStyle().
		Foreground(theme.Ink).
		Background(bg).
		Render(fmt.Sprintf("%s [%d/%d]", displayName, index+1, total))

	offsetColor := theme.OK
	if offset != "now" {
		offsetColor = theme.Warn
	}
	right := lipgloss.NewStyle().
		Foreground(offsetColor).
		Background(bg).
		Render(offset)

	versionSeg := lipgloss.NewStyle().
		Foreground(theme.Muted).
		Background(bg).
		Render("v" + ver)

	content := fmt.Sprintf(" %s  |  %s  |  %s  |  %s ", left, center, right, versionSeg)

	return lipgloss.NewStyle().
		Background(bg).
		Width(width).
		Render(content)
}
