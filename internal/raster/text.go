package raster

import (
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Text draws s with its top-left corner at (x, y), where y is the top of
// the face's ascent. Glyph coverage is thresholded to 1 bit.
func Text(dst draw.Image, face font.Face, x, y int, s string, c image1bit.Bit) {
	if face == nil || s == "" {
		return
	}
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(s)
}

// TextWidth returns the advance width of s in pixels.
func TextWidth(face font.Face, s string) int {
	if face == nil {
		return 0
	}
	return font.MeasureString(face, s).Ceil()
}

// TextHeight returns the ink height of s in pixels.
func TextHeight(face font.Face, s string) int {
	if face == nil {
		return 0
	}
	bounds, _ := font.BoundString(face, s)
	return (bounds.Max.Y - bounds.Min.Y).Ceil()
}

// CenteredText draws s horizontally centred on cx.
func CenteredText(dst draw.Image, face font.Face, cx, y int, s string, c image1bit.Bit) {
	Text(dst, face, cx-TextWidth(face, s)/2, y, s, c)
}

// RightText draws s so that it ends at x.
func RightText(dst draw.Image, face font.Face, x, y int, s string, c image1bit.Bit) {
	Text(dst, face, x-TextWidth(face, s), y, s, c)
}

// InkCentered draws s with its ink bounding box centred on (cx, cy).
func InkCentered(dst draw.Image, face font.Face, cx, cy int, s string, c image1bit.Bit) {
	if face == nil || s == "" {
		return
	}
	bounds, _ := font.BoundString(face, s)
	baseline := cy - (bounds.Min.Y+bounds.Max.Y).Ceil()/2
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(cx-TextWidth(face, s)/2, baseline),
	}
	d.DrawString(s)
}
