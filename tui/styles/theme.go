package styles

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a preview palette. Ink and Paper stand in for the black and
// white panel pixels; the rest colour the chrome around the frame.
type Theme struct {
	Name   string
	Paper  lipgloss.Color
	Ink    lipgloss.Color
	Bar    lipgloss.Color // header and status bar background
	Rule   lipgloss.Color
	Muted  lipgloss.Color
	Accent lipgloss.Color
	Title  lipgloss.Color
	Trend  lipgloss.Color
	OK     lipgloss.Color
	Warn   lipgloss.Color
	Err    lipgloss.Color
}

var (
	DefaultTheme Theme
	sortedSlugs  []string
)

func init() {
	sortedSlugs = make([]string, 0, len(Themes))
	for slug := range Themes {
		sortedSlugs = append(sortedSlugs, slug)
	}
	sort.Strings(sortedSlugs)
	DefaultTheme = Themes["paper"]
}

// GetThemeByName returns a theme by its slug, or nil if not found.
func GetThemeByName(name string) *Theme {
	t, ok := Themes[name]
	if !ok {
		return nil
	}
	return &t
}

// ListThemes returns sorted theme slugs.
func ListThemes() []string {
	return sortedSlugs
}
