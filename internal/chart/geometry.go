// Package chart renders time series onto a 1-bit canvas: bar and line
// charts, value gridlines, time ticks and schedule annotations.
package chart

import (
	"image"

	"github.com/tonhe/inkboard/internal/axis"
	"github.com/tonhe/inkboard/internal/series"
)

// DefaultMargin is the vertical slack reserved inside the chart region.
const DefaultMargin = 4

// Geometry is the pixel region a chart occupies plus its bar spacing.
// Renderers and overlays derive bar positions from the same Geometry so
// annotations stay aligned with the bars they mark.
type Geometry struct {
	Origin  image.Point
	Width   int
	Height  int
	Spacing int
	Margin  int
}

// NewGeometry returns a Geometry with the default margin.
func NewGeometry(x, y, width, height, spacing int) Geometry {
	return Geometry{Origin: image.Pt(x, y), Width: width, Height: height, Spacing: spacing, Margin: DefaultMargin}
}

// Baseline is the y coordinate bars stand on.
func (g Geometry) Baseline() int { return g.Origin.Y + g.Height - 2 }

// Bottom is the lower edge of the chart region.
func (g Geometry) Bottom() int { return g.Origin.Y + g.Height }

// Right is the right edge of the chart region.
func (g Geometry) Right() int { return g.Origin.X + g.Width }

// BarWidth returns the width of each of n bars.
func (g Geometry) BarWidth(n int) int {
	if n <= 0 {
		return 1
	}
	return max(1, (g.Width-(n-1)*g.Spacing)/n)
}

// BarX returns the left edge of bar i when bw is the bar width.
func (g Geometry) BarX(i, bw int) int { return g.Origin.X + i*(bw+g.Spacing) }

// BarCenter returns the horizontal centre of bar i.
func (g Geometry) BarCenter(i, bw int) int { return g.BarX(i, bw) + bw/2 }

// usable is the pixel height a full-scale bar reaches.
func (g Geometry) usable() int {
	m := g.Margin
	if m == 0 {
		m = DefaultMargin
	}
	return g.Height - m
}

// BarHeight maps v to a bar height, at least one pixel tall.
func (g Geometry) BarHeight(v float64, d axis.Domain) int {
	return max(1, int(d.Normalize(v)*float64(g.usable())))
}

// ValueY maps v to a y coordinate without clamping, so callers can test
// whether a reference value such as zero falls inside the chart.
func (g Geometry) ValueY(v float64, d axis.Domain) int {
	span := d.Span()
	if span <= 0 {
		return g.Baseline()
	}
	return g.Baseline() - int((v-d.Min)/span*float64(g.usable()))
}

// Bars lays out samples as bars. Classes are left as Below.
func (g Geometry) Bars(samples []series.Sample, d axis.Domain) []Bar {
	bw := g.BarWidth(len(samples))
	bars := make([]Bar, len(samples))
	for i, s := range samples {
		bars[i] = Bar{
			Index:  i,
			Sample: s,
			X:      g.BarX(i, bw),
			Width:  bw,
			Top:    g.Baseline() - g.BarHeight(s.Value, d),
			Bottom: g.Baseline(),
		}
	}
	return bars
}
