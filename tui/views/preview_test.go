package views

import (
	"strings"
	"testing"

	"github.com/tonhe/inkboard/internal/raster"
	"github.com/tonhe/inkboard/tui/styles"
)

func TestPreviewViewEmpty(t *testing.T) {
	v := NewPreviewView(styles.DefaultTheme)
	v.SetSize(80, 24)
	if !strings.Contains(v.View(), "Rendering...") {
		t.Error("expected placeholder before the first frame")
	}
}

func TestPreviewViewBitmap(t *testing.T) {
	b := raster.New(800, 480)
	b.FillRect(0, 0, 799, 239, raster.Black)

	v := NewPreviewView(styles.DefaultTheme)
	v.SetBitmap(b)
	v.SetSize(102, 32)
	out := v.View()
	if !strings.Contains(out, "█") {
		t.Error("expected full blocks for the black half of the frame")
	}

	v.SetSize(1, 1)
	if got := v.View(); got != "" {
		t.Errorf("expected empty view when nothing fits, got %q", got)
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 4); got != "ab  " {
		t.Errorf("expected %q, got %q", "ab  ", got)
	}
	if got := padRight("abcdef", 4); got != "abcdef" {
		t.Errorf("expected %q, got %q", "abcdef", got)
	}
}
