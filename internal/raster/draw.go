package raster

import (
	"image"

	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Rectangles follow the PIL convention: both corners are inclusive.

// FillRect fills the inclusive rectangle (x0,y0)-(x1,y1).
func (b *Bitmap) FillRect(x0, y0, x1, y1 int, c image1bit.Bit) {
	r := inclusive(x0, y0, x1, y1).Intersect(b.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			b.SetBit(x, y, c)
		}
	}
}

// OutlineRect draws an inclusive rectangle with a border of width pixels
// drawn inward, and the interior filled with fill.
func (b *Bitmap) OutlineRect(x0, y0, x1, y1, width int, outline, fill image1bit.Bit) {
	r := inclusive(x0, y0, x1, y1)
	if r.Empty() {
		return
	}
	b.FillRect(r.Min.X, r.Min.Y, r.Max.X-1, r.Max.Y-1, fill)
	if width < 1 {
		width = 1
	}
	for i := 0; i < width; i++ {
		top, bottom := r.Min.Y+i, r.Max.Y-1-i
		left, right := r.Min.X+i, r.Max.X-1-i
		if top > bottom || left > right {
			break
		}
		b.FillRect(left, top, right, top, outline)
		b.FillRect(left, bottom, right, bottom, outline)
		b.FillRect(left, top, left, bottom, outline)
		b.FillRect(right, top, right, bottom, outline)
	}
}

// Checker fills the inclusive rectangle with a 2x2 checkerboard anchored
// to absolute canvas coordinates, so neighbouring regions line up.
func (b *Bitmap) Checker(x0, y0, x1, y1 int, c image1bit.Bit) {
	for py := y0; py <= y1; py += 2 {
		for px := x0; px <= x1; px += 2 {
			if (px/2+py/2)%2 == 0 {
				b.FillRect(px, py, min(px+1, x1), min(py+1, y1), c)
			}
		}
	}
}

// HLine draws a horizontal line of the given thickness. Thickness grows
// upward from y for even widths, matching PIL's wide lines.
func (b *Bitmap) HLine(x0, x1, y, width int, c image1bit.Bit) {
	lo, hi := spread(width)
	b.FillRect(x0, y+lo, x1, y+hi, c)
}

// VLine draws a vertical line of the given thickness.
func (b *Bitmap) VLine(x, y0, y1, width int, c image1bit.Bit) {
	lo, hi := spread(width)
	b.FillRect(x+lo, y0, x+hi, y1, c)
}

// DashedHLine draws dash+1 pixel segments every step pixels, starting
// at x0 and stopping before x1.
func (b *Bitmap) DashedHLine(x0, x1, y, step, dash int, c image1bit.Bit) {
	if step < 1 {
		step = 1
	}
	for x := x0; x < x1; x += step {
		b.FillRect(x, y, x+dash, y, c)
	}
}

// Line draws a one pixel Bresenham line.
func (b *Bitmap) Line(x0, y0, x1, y1 int, c image1bit.Bit) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		b.SetBit(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// FillTriangle fills the triangle with the given vertices, edges included.
func (b *Bitmap) FillTriangle(p0, p1, p2 image.Point, c image1bit.Bit) {
	r := image.Rectangle{Min: p0, Max: p0}
	for _, p := range []image.Point{p1, p2} {
		r.Min.X, r.Min.Y = min(r.Min.X, p.X), min(r.Min.Y, p.Y)
		r.Max.X, r.Max.Y = max(r.Max.X, p.X), max(r.Max.Y, p.Y)
	}
	area := edge(p0, p1, p2)
	if area == 0 {
		b.Line(p0.X, p0.Y, p1.X, p1.Y, c)
		b.Line(p1.X, p1.Y, p2.X, p2.Y, c)
		return
	}
	for y := r.Min.Y; y <= r.Max.Y; y++ {
		for x := r.Min.X; x <= r.Max.X; x++ {
			p := image.Point{x, y}
			w0, w1, w2 := edge(p1, p2, p), edge(p2, p0, p), edge(p0, p1, p)
			if area < 0 {
				w0, w1, w2 = -w0, -w1, -w2
			}
			if w0 >= 0 && w1 >= 0 && w2 >= 0 {
				b.SetBit(x, y, c)
			}
		}
	}
}

// Circle draws a circle of radius r centred on (cx, cy): a ring of the
// given width in outline color around an interior of fill color.
func (b *Bitmap) Circle(cx, cy, r, width int, outline, fill image1bit.Bit) {
	outer := r*r + r
	inner := -1
	if ir := r - width; ir >= 0 {
		inner = ir*ir + ir
	}
	for y := cy - r; y <= cy+r; y++ {
		for x := cx - r; x <= cx+r; x++ {
			d := (x-cx)*(x-cx) + (y-cy)*(y-cy)
			switch {
			case d > outer:
			case d > inner:
				b.SetBit(x, y, outline)
			default:
				b.SetBit(x, y, fill)
			}
		}
	}
}

// FillCircle draws a solid disc.
func (b *Bitmap) FillCircle(cx, cy, r int, c image1bit.Bit) {
	b.Circle(cx, cy, r, r+1, c, c)
}

func edge(a, b, p image.Point) int {
	return (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
}

func spread(width int) (lo, hi int) {
	if width < 1 {
		width = 1
	}
	lo = -(width / 2)
	return lo, lo + width - 1
}

func inclusive(x0, y0, x1, y1 int) image.Rectangle {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	return image.Rect(x0, y0, x1+1, y1+1)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
