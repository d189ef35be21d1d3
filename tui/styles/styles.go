package styles

import "github.com/charmbracelet/lipgloss"

// Styles holds all themed lipgloss styles for the application.
type Styles struct {
	// Header / Footer
	Header      lipgloss.Style
	HeaderTitle lipgloss.Style
	FooterKey   lipgloss.Style
	FooterDesc  lipgloss.Style

	// Status colors
	StatusOK   lipgloss.Style
	StatusErr  lipgloss.Style
	StatusWarn lipgloss.Style

	// Preview
	Panel      lipgloss.Style
	PanelFrame lipgloss.Style
	Dim        lipgloss.Style

	// Sparkline
	SparklineStyle lipgloss.Style

	// Modal / overlay
	ModalBorder lipgloss.Style
	ModalTitle  lipgloss.Style
}

// NewStyles creates a new Styles instance from a theme.
func NewStyles(theme Theme) *Styles {
	return &Styles{
		Header: lipgloss.NewStyle().
			Foreground(theme.Ink).
			Background(theme.Bar).
			Bold(true).
			Padding(0, 1),
		HeaderTitle: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),
		FooterKey: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Background(theme.Bar).
			Bold(true),
		FooterDesc: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Bar),

		StatusOK: lipgloss.NewStyle().
			Foreground(theme.OK),
		StatusErr: lipgloss.NewStyle().
			Foreground(theme.Err),
		StatusWarn: lipgloss.NewStyle().
			Foreground(theme.Warn),

		Panel: lipgloss.NewStyle().
			Foreground(theme.Ink).
			Background(theme.Paper),
		PanelFrame: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(theme.Rule),
		Dim: lipgloss.NewStyle().
			Foreground(theme.Muted),

		SparklineStyle: lipgloss.NewStyle().
			Foreground(theme.Trend),

		ModalBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Accent).
			BorderBackground(theme.Paper).
			Background(theme.Paper).
			Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().
			Foreground(theme.Accent).
			Bold(true),
	}
}
