package assets

import (
	"image"
	"image/draw"
	"math"

	"github.com/fogleman/gg"
)

// Smiley draws a face whose bounding box starts at (x, y) and spans
// 2*radius pixels: smiling when happy, frowning otherwise.
func Smiley(dst draw.Image, x, y, radius int, happy bool) {
	size := 2*radius + 1
	dc := gg.NewContext(size, size)
	r := float64(radius)
	c := r + 0.5

	dc.DrawCircle(c, c, r-1.5)
	dc.SetRGB(1, 1, 1)
	dc.FillPreserve()
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(3)
	dc.Stroke()

	eyeY := c - 8
	dc.DrawCircle(c-10, eyeY, 3)
	dc.DrawCircle(c+10, eyeY, 3)
	dc.Fill()

	mouthY := c + 5
	if happy {
		dc.DrawEllipticalArc(c, mouthY, 12, 8, 0, math.Pi)
	} else {
		dc.DrawEllipticalArc(c, mouthY+6, 12, 8, math.Pi, 2*math.Pi)
	}
	dc.SetLineWidth(3)
	dc.Stroke()

	blit(dst, dc.Image(), x, y)
}

// WindArrow draws an arrow centred on (cx, cy) pointing where wind from
// the given meteorological direction blows to.
func WindArrow(dst draw.Image, cx, cy, size int, degrees float64) {
	dc := gg.NewContext(size, size)
	half := float64(size) / 2
	dc.Translate(half, half)
	dc.Rotate(gg.Radians(degrees + 180))

	tip := half - 2
	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(3)
	dc.DrawLine(0, tip*0.6, 0, -tip+6)
	dc.Stroke()
	dc.MoveTo(0, -tip)
	dc.LineTo(-tip*0.45, -tip+tip*0.6)
	dc.LineTo(tip*0.45, -tip+tip*0.6)
	dc.ClosePath()
	dc.Fill()

	blit(dst, dc.Image(), cx-size/2, cy-size/2)
}

// blit composites a rendered icon onto dst; dst's color model does the
// thresholding for 1-bit targets.
func blit(dst draw.Image, src image.Image, x, y int) {
	b := src.Bounds()
	draw.Draw(dst, image.Rect(x, y, x+b.Dx(), y+b.Dy()), src, b.Min, draw.Over)
}
