package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestGetThemeByName(t *testing.T) {
	theme := GetThemeByName("solarized-dark")
	if theme == nil {
		t.Fatal("GetThemeByName('solarized-dark') returned nil")
	}
	if theme.Name != "Solarized Dark" {
		t.Errorf("expected name 'Solarized Dark', got %q", theme.Name)
	}
}

func TestGetThemeByNameMissing(t *testing.T) {
	theme := GetThemeByName("nonexistent")
	if theme != nil {
		t.Error("expected nil for nonexistent theme")
	}
}

func TestListThemesSorted(t *testing.T) {
	themes := ListThemes()
	if len(themes) != len(Themes) {
		t.Fatalf("expected %d themes, got %d", len(Themes), len(themes))
	}
	for i := 1; i < len(themes); i++ {
		if themes[i-1] > themes[i] {
			t.Errorf("themes not sorted: %q before %q", themes[i-1], themes[i])
		}
	}
}

func TestDefaultThemeIsPaper(t *testing.T) {
	if DefaultTheme.Name != "Paper" {
		t.Errorf("expected Paper default, got %q", DefaultTheme.Name)
	}
	if DefaultTheme.Ink == DefaultTheme.Paper {
		t.Error("ink and paper must differ")
	}
}

func TestThemesComplete(t *testing.T) {
	for slug, th := range Themes {
		colors := []lipgloss.Color{th.Paper, th.Ink, th.Bar, th.Rule, th.Muted, th.Accent, th.Title, th.Trend, th.OK, th.Warn, th.Err}
		for i, c := range colors {
			if c == "" {
				t.Errorf("%s: color %d is empty", slug, i)
			}
		}
		if th.Ink == th.Paper {
			t.Errorf("%s: ink and paper must differ", slug)
		}
	}
}
