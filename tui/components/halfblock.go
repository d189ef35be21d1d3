package components

import (
	"image"
	"strings"

	"github.com/tonhe/inkboard/internal/raster"
)

// HalfBlockScale returns the smallest integer pixel-per-cell factor at
// which a w x h bitmap fits in cols x rows cells. Each cell holds one
// pixel column and two pixel rows at scale 1.
func HalfBlockScale(w, h, cols, rows int) int {
	if cols < 1 || rows < 1 {
		return 0
	}
	s := max((w+cols-1)/cols, (h+2*rows-1)/(2*rows))
	return max(s, 1)
}

// HalfBlocks downsamples b by scale and returns one string per terminal
// row using upper and lower half blocks. A scaled pixel is ink when at
// least a quarter of its source pixels are black, which keeps one pixel
// lines visible at small scales.
func HalfBlocks(b *raster.Bitmap, scale int) []string {
	if scale < 1 {
		return nil
	}
	cols := (b.Width() + scale - 1) / scale
	px := (b.Height() + scale - 1) / scale
	ink := func(x, y int) bool {
		if y >= px {
			return false
		}
		r := image.Rect(x*scale, y*scale, (x+1)*scale, (y+1)*scale).Intersect(b.Bounds())
		area := r.Dx() * r.Dy()
		return area > 0 && 4*b.CountBlack(r) >= area
	}

	lines := make([]string, 0, (px+1)/2)
	for y := 0; y < px; y += 2 {
		var sb strings.Builder
		for x := 0; x < cols; x++ {
			top, bottom := ink(x, y), ink(x, y+1)
			switch {
			case top && bottom:
				sb.WriteRune('█')
			case top:
				sb.WriteRune('▀')
			case bottom:
				sb.WriteRune('▄')
			default:
				sb.WriteRune(' ')
			}
		}
		lines = append(lines, sb.String())
	}
	return lines
}
