package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tonhe/inkboard/internal/raster"
	"github.com/tonhe/inkboard/tui/components"
	"github.com/tonhe/inkboard/tui/styles"
)

// PreviewView shows a rendered frame scaled to the terminal with half
// block characters.
type PreviewView struct {
	theme  styles.Theme
	sty    *styles.Styles
	bitmap *raster.Bitmap
	invert bool
	width  int
	height int
}

// NewPreviewView creates a PreviewView with the given theme.
func NewPreviewView(theme styles.Theme) PreviewView {
	return PreviewView{
		theme: theme,
		sty:   styles.NewStyles(theme),
	}
}

// SetBitmap replaces the shown frame.
func (v *PreviewView) SetBitmap(b *raster.Bitmap) {
	v.bitmap = b
}

// ToggleInvert swaps ink and paper.
func (v *PreviewView) ToggleInvert() {
	v.invert = !v.invert
}

// SetSize updates the available dimensions for the view.
func (v *PreviewView) SetSize(width, height int) {
	v.width = width
	v.height = height
}

// View renders the preview centred in the available space.
func (v PreviewView) View() string {
	if v.bitmap == nil {
		return v.renderEmpty()
	}
	// Two cells of the frame border.
	scale := components.HalfBlockScale(v.bitmap.Width(), v.bitmap.Height(), v.width-2, v.height-2)
	if scale == 0 {
		return ""
	}
	panel := v.sty.Panel
	if v.invert {
		panel = panel.Foreground(v.theme.Paper).Background(v.theme.Ink)
	}
	lines := components.HalfBlocks(v.bitmap, scale)
	for i, l := range lines {
		lines[i] = panel.Render(l)
	}
	framed := v.sty.PanelFrame.Render(strings.Join(lines, "\n"))
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, framed)
}

func (v PreviewView) renderEmpty() string {
	msg := lipgloss.JoinVertical(lipgloss.Center,
		v.sty.Dim.Render("Rendering..."),
	)
	return lipgloss.Place(v.width, v.height, lipgloss.Center, lipgloss.Center, msg)
}

// padRight pads s with spaces on the right to the given width.
func padRight(s string, width int) string {
	if n := lipgloss.Width(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}
