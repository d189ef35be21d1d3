package assets

import (
	"image/draw"
	"log/slog"

	"golang.org/x/image/font"
)

// Provider supplies the decorative assets a dashboard needs.
type Provider interface {
	Face(size int) font.Face
	Smiley(dst draw.Image, x, y, radius int, happy bool)
	WindArrow(dst draw.Image, cx, cy, size int, degrees float64)
}

// Assets is the default Provider backed by a FontSet and vector icons.
type Assets struct {
	*FontSet
}

// New builds an Assets whose fonts come from FontChain(fontPaths).
func New(fontPaths []string, logger *slog.Logger) *Assets {
	return &Assets{FontSet: NewFontSet(FontChain(fontPaths), logger)}
}

// Smiley implements Provider.
func (a *Assets) Smiley(dst draw.Image, x, y, radius int, happy bool) {
	Smiley(dst, x, y, radius, happy)
}

// WindArrow implements Provider.
func (a *Assets) WindArrow(dst draw.Image, cx, cy, size int, degrees float64) {
	WindArrow(dst, cx, cy, size, degrees)
}
