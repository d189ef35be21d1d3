package chart

import (
	"fmt"
	"image"
	"strconv"

	"github.com/tonhe/inkboard/internal/axis"
	"github.com/tonhe/inkboard/internal/raster"
	"golang.org/x/image/font"
)

const (
	dashStep   = 8
	dashLength = 4
	tickLength = 5
	markerSize = 8
)

// drawGridlines draws the dashed axis max and axis min lines with their
// values printed right of the chart.
func (r *Renderer) drawGridlines(dst *raster.Bitmap, g Geometry, d axis.Domain) {
	DrawGridlines(dst, g, d, r.GridFormat, r.face())
}

// DrawGridlines draws exactly two dashed reference lines, at the top
// (axis max) and on the baseline (axis min) of the region, labelled with
// format. The min line is the row a min-valued bar stands on.
func DrawGridlines(dst *raster.Bitmap, g Geometry, d axis.Domain, format string, face font.Face) {
	lines := []struct {
		y int
		v float64
	}{
		{g.Origin.Y, d.Max},
		{g.ValueY(d.Min, d), d.Min},
	}
	for _, l := range lines {
		dst.DashedHLine(g.Origin.X+1, g.Right(), l.y, dashStep, dashLength, raster.Black)
		if face != nil {
			raster.Text(dst, face, g.Right()+5, l.y-6, fmt.Sprintf(format, l.v), raster.Black)
		}
	}
}

func (r *Renderer) drawTimeAxis(dst *raster.Bitmap, g Geometry, layout Layout) {
	face := r.face()
	tickTop := g.Bottom() + 2
	for _, b := range layout.Bars {
		labeled := r.Labels(b.Index, b.Sample.Time)
		cx := b.Center()
		if r.Ticks == TicksEveryBar || (r.Ticks == TicksLabeled && labeled) {
			dst.VLine(cx, tickTop, tickTop+tickLength, 1, raster.Black)
		}
		if b.Index == layout.Current && r.Marker {
			drawMarker(dst, cx, g.Bottom()-5)
		}
		if labeled && face != nil {
			raster.CenteredText(dst, face, cx, g.Bottom()+r.LabelOffset, strconv.Itoa(b.Sample.Time.Hour()), raster.Black)
		}
	}
}

// drawMarker draws the filled upward triangle that flags the current slot.
func drawMarker(dst *raster.Bitmap, cx, top int) {
	dst.FillTriangle(
		image.Pt(cx, top),
		image.Pt(cx-markerSize, top+markerSize),
		image.Pt(cx+markerSize, top+markerSize),
		raster.Black,
	)
}

func (r *Renderer) face() font.Face {
	if r.Faces == nil {
		return nil
	}
	return r.Faces.Face(r.LabelSize)
}
