// Package raster implements the 1-bit canvas the dashboards draw on and
// the handful of PIL-style primitives they need.
package raster

import (
	"image"
	"image/color"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Pixel colors. White is the set bit, matching the panel's raw format.
const (
	Black = image1bit.Off
	White = image1bit.On
)

// Bitmap is a packed 1 bit per pixel image, row-major, most significant
// bit first, 1 = white. Each row is padded to a whole byte.
type Bitmap struct {
	Pix    []byte
	Stride int
	Rect   image.Rectangle
}

// New returns an all-white bitmap of the given size.
func New(width, height int) *Bitmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	stride := (width + 7) / 8
	b := &Bitmap{
		Pix:    make([]byte, stride*height),
		Stride: stride,
		Rect:   image.Rect(0, 0, width, height),
	}
	b.Clear(White)
	return b
}

// ColorModel implements image.Image.
func (b *Bitmap) ColorModel() color.Model { return image1bit.BitModel }

// Bounds implements image.Image.
func (b *Bitmap) Bounds() image.Rectangle { return b.Rect }

// Width returns the canvas width in pixels.
func (b *Bitmap) Width() int { return b.Rect.Dx() }

// Height returns the canvas height in pixels.
func (b *Bitmap) Height() int { return b.Rect.Dy() }

// At implements image.Image.
func (b *Bitmap) At(x, y int) color.Color { return b.BitAt(x, y) }

// BitAt returns the pixel at (x, y); out of range reads are white.
func (b *Bitmap) BitAt(x, y int) image1bit.Bit {
	if !(image.Point{x, y}.In(b.Rect)) {
		return White
	}
	i, mask := b.offset(x, y)
	return image1bit.Bit(b.Pix[i]&mask != 0)
}

// Set implements draw.Image. Colors are thresholded by image1bit.BitModel.
func (b *Bitmap) Set(x, y int, c color.Color) {
	b.SetBit(x, y, image1bit.BitModel.Convert(c).(image1bit.Bit))
}

// SetBit writes one pixel, ignoring coordinates outside the canvas.
func (b *Bitmap) SetBit(x, y int, v image1bit.Bit) {
	if !(image.Point{x, y}.In(b.Rect)) {
		return
	}
	i, mask := b.offset(x, y)
	if v {
		b.Pix[i] |= mask
	} else {
		b.Pix[i] &^= mask
	}
}

// Clear fills the whole canvas with v.
func (b *Bitmap) Clear(v image1bit.Bit) {
	fill := byte(0x00)
	if v {
		fill = 0xFF
	}
	for i := range b.Pix {
		b.Pix[i] = fill
	}
}

// Bytes returns a copy of the packed buffer.
func (b *Bitmap) Bytes() []byte {
	out := make([]byte, len(b.Pix))
	copy(out, b.Pix)
	return out
}

// Inverted returns the packed buffer with every bit flipped.
func (b *Bitmap) Inverted() []byte {
	out := make([]byte, len(b.Pix))
	for i, v := range b.Pix {
		out[i] = ^v
	}
	return out
}

// Equal reports whether two bitmaps have identical size and pixels.
func (b *Bitmap) Equal(o *Bitmap) bool {
	if o == nil || b.Rect != o.Rect || len(b.Pix) != len(o.Pix) {
		return false
	}
	for i := range b.Pix {
		if b.Pix[i] != o.Pix[i] {
			return false
		}
	}
	return true
}

// CountBlack returns the number of black pixels inside r.
func (b *Bitmap) CountBlack(r image.Rectangle) int {
	r = r.Intersect(b.Rect)
	n := 0
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if !b.BitAt(x, y) {
				n++
			}
		}
	}
	return n
}

// FromBytes wraps a packed buffer produced by Bytes.
func FromBytes(width, height int, pix []byte) (*Bitmap, bool) {
	stride := (width + 7) / 8
	if len(pix) != stride*height {
		return nil, false
	}
	buf := make([]byte, len(pix))
	copy(buf, pix)
	return &Bitmap{Pix: buf, Stride: stride, Rect: image.Rect(0, 0, width, height)}, true
}

func (b *Bitmap) offset(x, y int) (int, byte) {
	x -= b.Rect.Min.X
	y -= b.Rect.Min.Y
	return y*b.Stride + x/8, 0x80 >> uint(x%8)
}
