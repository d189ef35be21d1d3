package raster

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
)

var monoPalette = color.Palette{color.Black, color.White}

// Paletted converts the bitmap to a two-entry paletted image, which the
// PNG encoder stores at one bit per pixel.
func (b *Bitmap) Paletted() *image.Paletted {
	p := image.NewPaletted(b.Rect, monoPalette)
	for y := b.Rect.Min.Y; y < b.Rect.Max.Y; y++ {
		for x := b.Rect.Min.X; x < b.Rect.Max.X; x++ {
			if b.BitAt(x, y) {
				p.SetColorIndex(x, y, 1)
			}
		}
	}
	return p
}

// EncodePNG writes the bitmap as a 1-bit PNG.
func (b *Bitmap) EncodePNG(w io.Writer) error {
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	return enc.Encode(w, b.Paletted())
}

// FromImage thresholds any image onto a new bitmap of the same size.
func FromImage(img image.Image) *Bitmap {
	r := img.Bounds()
	b := New(r.Dx(), r.Dy())
	draw.Draw(b, b.Rect, img, r.Min, draw.Src)
	return b
}
