package chart

import (
	"github.com/tonhe/inkboard/internal/axis"
	"github.com/tonhe/inkboard/internal/raster"
	"github.com/tonhe/inkboard/internal/series"
	"golang.org/x/image/font"
)

// Overlay placement relative to the tallest covered bar.
const (
	iconRadius  = 12
	iconGap     = 35
	bracketGap  = 8
	bracketTick = 5
)

// Bracket is the geometry of one drawn schedule annotation.
type Bracket struct {
	First      int
	Last       int
	FirstX     int
	LastX      int
	CenterX    int
	HighestTop int
	IconY      int
	BracketY   int
}

// LocateBracket finds the bars overlapping r, where bar i covers
// [start, start+cadence] and r.End is inclusive. ok is false when no bar
// overlaps.
func LocateBracket(bars []Bar, cadence series.Cadence, r series.ScheduleRange) (Bracket, bool) {
	br := Bracket{First: -1, Last: -1}
	if !r.Valid() {
		return br, false
	}
	step := cadence.Duration()
	for _, b := range bars {
		start := b.Sample.Time
		end := start.Add(step)
		if start.After(r.End) || end.Before(r.Start) {
			continue
		}
		if br.First < 0 {
			br.First = b.Index
			br.HighestTop = b.Top
			br.FirstX = b.X
		}
		br.Last = b.Index
		br.LastX = b.X + b.Width
		br.HighestTop = min(br.HighestTop, b.Top)
	}
	if br.First < 0 {
		return br, false
	}
	br.CenterX = (br.FirstX + br.LastX) / 2
	br.IconY = br.HighestTop - iconGap
	br.BracketY = br.HighestTop - bracketGap
	return br, true
}

// RenderScheduleBracket marks the bars covered by r with a bracket and a
// lettered badge above the tallest of them. The layout is recomputed from
// g on every call so it follows the bars as the window slides.
func RenderScheduleBracket(dst *raster.Bitmap, g Geometry, samples []series.Sample, d axis.Domain, cadence series.Cadence, r series.ScheduleRange, letter string, face font.Face) (Bracket, bool) {
	br, ok := LocateBracket(g.Bars(samples, d), cadence, r)
	if !ok {
		return br, false
	}
	dst.Circle(br.CenterX, br.IconY, iconRadius, 2, raster.Black, raster.White)
	raster.InkCentered(dst, face, br.CenterX, br.IconY, letter, raster.Black)

	dst.HLine(br.FirstX, br.LastX, br.BracketY, 2, raster.Black)
	dst.VLine(br.FirstX, br.BracketY, br.BracketY+bracketTick, 2, raster.Black)
	dst.VLine(br.LastX, br.BracketY, br.BracketY+bracketTick, 2, raster.Black)
	dst.VLine(br.CenterX, br.IconY+iconRadius, br.BracketY, 1, raster.Black)
	return br, true
}

// RenderScheduleBracket draws an annotation on the bars of a finished layout.
func (l Layout) RenderScheduleBracket(dst *raster.Bitmap, cadence series.Cadence, r series.ScheduleRange, letter string, face font.Face) (Bracket, bool) {
	if len(l.Bars) == 0 {
		return Bracket{First: -1, Last: -1}, false
	}
	samples := make([]series.Sample, len(l.Bars))
	for i, b := range l.Bars {
		samples[i] = b.Sample
	}
	return RenderScheduleBracket(dst, l.Geometry, samples, l.Domain, cadence, r, letter, face)
}
