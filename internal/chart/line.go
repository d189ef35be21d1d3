package chart

import (
	"fmt"
	"image"

	"github.com/tonhe/inkboard/internal/axis"
	"github.com/tonhe/inkboard/internal/raster"
	"github.com/tonhe/inkboard/internal/series"
	"golang.org/x/image/font"
)

// LineOptions parameterise RenderLine.
type LineOptions struct {
	Gridlines   bool
	GridFormat  string
	Labels      LabelRule
	LabelOffset int
	Dots        bool
}

// RenderLine draws samples as a 2 pixel polyline spread evenly across
// the region. Fewer than two samples draw nothing. It returns the
// plotted points.
func RenderLine(dst *raster.Bitmap, g Geometry, samples []series.Sample, d axis.Domain, opts LineOptions, face font.Face) []image.Point {
	if len(samples) < 2 {
		return nil
	}
	if opts.Gridlines {
		format := opts.GridFormat
		if format == "" {
			format = "%.0f"
		}
		DrawGridlines(dst, g, d, format, face)
	}
	pts := make([]image.Point, len(samples))
	for i, s := range samples {
		x := g.Origin.X + i*(g.Width-1)/(len(samples)-1)
		y := g.Baseline() - int(d.Normalize(s.Value)*float64(g.usable()))
		pts[i] = image.Pt(x, y)
	}
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		dst.Line(a.X, a.Y, b.X, b.Y, raster.Black)
		dst.Line(a.X, a.Y-1, b.X, b.Y-1, raster.Black)
	}
	if opts.Dots {
		for _, p := range pts {
			dst.FillCircle(p.X, p.Y, 2, raster.Black)
		}
	}
	if opts.Labels != nil && face != nil {
		for i, s := range samples {
			if opts.Labels(i, s.Time) {
				raster.CenteredText(dst, face, pts[i].X, g.Bottom()+opts.LabelOffset, fmt.Sprintf("%d", s.Time.Hour()), raster.Black)
			}
		}
	}
	return pts
}
