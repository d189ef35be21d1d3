package chart

import (
	"image"
	"testing"
	"time"

	"github.com/tonhe/inkboard/internal/axis"
	"github.com/tonhe/inkboard/internal/raster"
	"github.com/tonhe/inkboard/internal/series"
	"golang.org/x/image/font/basicfont"
)

func rectOf(x0, y0, x1, y1 int) image.Rectangle {
	return image.Rect(x0, y0, x1+1, y1+1)
}

func TestLocateBracket(t *testing.T) {
	samples := hourlySamples(1, 2, 8, 3, 4, 5)
	d := axis.Domain{Min: 0, Max: 10}
	g := NewGeometry(30, 135, 600, 225, 3)
	bars := g.Bars(samples, d)
	r := series.ScheduleRange{Start: base.Add(90 * time.Minute), End: base.Add(3 * time.Hour)}

	br, ok := LocateBracket(bars, series.Hourly, r)
	if !ok {
		t.Fatal("expected overlap")
	}
	if br.First != 1 || br.Last != 3 {
		t.Errorf("expected bars 1..3, got %d..%d", br.First, br.Last)
	}
	if br.HighestTop != bars[2].Top {
		t.Errorf("expected highest top of bar 2 (%d), got %d", bars[2].Top, br.HighestTop)
	}
	firstCenter, lastCenter := bars[br.First].Center(), bars[br.Last].Center()
	if br.CenterX < firstCenter || br.CenterX > lastCenter {
		t.Errorf("centre %d outside [%d, %d]", br.CenterX, firstCenter, lastCenter)
	}
	if br.IconY != br.HighestTop-35 || br.BracketY != br.HighestTop-8 {
		t.Errorf("unexpected vertical placement: icon %d bracket %d", br.IconY, br.BracketY)
	}
}

func TestLocateBracketBoundaries(t *testing.T) {
	samples := hourlySamples(1, 2, 3)
	bars := NewGeometry(0, 0, 90, 100, 3).Bars(samples, axis.Domain{Min: 0, Max: 4})
	// A range ending exactly when bar 0 ends still touches bar 1's start.
	r := series.ScheduleRange{Start: base, End: base.Add(time.Hour)}
	br, ok := LocateBracket(bars, series.Hourly, r)
	if !ok || br.First != 0 || br.Last != 1 {
		t.Errorf("expected bars 0..1 with inclusive bounds, got %d..%d (ok=%v)", br.First, br.Last, ok)
	}
	late := series.ScheduleRange{Start: base.Add(5 * time.Hour), End: base.Add(6 * time.Hour)}
	if _, ok := LocateBracket(bars, series.Hourly, late); ok {
		t.Error("expected no overlap for a range after the window")
	}
	if _, ok := LocateBracket(bars, series.Hourly, series.ScheduleRange{}); ok {
		t.Error("expected no overlap for an empty range")
	}
}

func TestCenterWithinBracketProperty(t *testing.T) {
	samples := hourlySamples(3, 1, 4, 1, 5, 9, 2, 6, 5, 3, 5, 8)
	d := axis.ComputeDomain(series.Values(samples), nil, 0.1)
	for _, width := range []int{120, 333, 600} {
		g := NewGeometry(7, 100, width, 200, 3)
		bars := g.Bars(samples, d)
		for s := 0; s < len(samples); s++ {
			for e := s; e < len(samples); e++ {
				r := series.ScheduleRange{
					Start: base.Add(time.Duration(s)*time.Hour + time.Minute),
					End:   base.Add(time.Duration(e)*time.Hour + time.Minute),
				}
				br, ok := LocateBracket(bars, series.Hourly, r)
				if !ok {
					t.Fatalf("width %d range %d..%d: expected overlap", width, s, e)
				}
				lo, hi := bars[br.First].Center(), bars[br.Last].Center()
				if br.CenterX < lo || br.CenterX > hi {
					t.Errorf("width %d range %d..%d: centre %d outside [%d,%d]", width, s, e, br.CenterX, lo, hi)
				}
			}
		}
	}
}

func TestRenderScheduleBracket(t *testing.T) {
	samples := hourlySamples(1, 2, 3, 2)
	d := axis.Domain{Min: 0, Max: 4}
	g := NewGeometry(30, 135, 600, 225, 3)

	dst := raster.New(800, 480)
	none := series.ScheduleRange{Start: base.Add(48 * time.Hour), End: base.Add(50 * time.Hour)}
	if _, ok := RenderScheduleBracket(dst, g, samples, d, series.Hourly, none, "M", basicfont.Face7x13); ok {
		t.Error("expected no bracket")
	}
	if dst.CountBlack(dst.Bounds()) != 0 {
		t.Error("expected untouched canvas when nothing overlaps")
	}

	r := series.ScheduleRange{Start: base.Add(time.Hour), End: base.Add(2 * time.Hour)}
	br, ok := RenderScheduleBracket(dst, g, samples, d, series.Hourly, r, "M", basicfont.Face7x13)
	if !ok {
		t.Fatal("expected bracket")
	}
	if dst.BitAt(br.FirstX, br.BracketY) != raster.Black || dst.BitAt(br.LastX, br.BracketY+4) != raster.Black {
		t.Error("expected bracket line with end ticks")
	}
	if dst.BitAt(br.CenterX, br.IconY-12) != raster.Black {
		t.Error("expected icon ring")
	}
	if dst.BitAt(br.CenterX, br.IconY+12+3) != raster.Black {
		t.Error("expected connector between icon and bracket")
	}
}

func TestLayoutRenderScheduleBracketMatchesBars(t *testing.T) {
	samples := hourlySamples(1, 2, 3, 2, 5)
	d := axis.Domain{Min: 0, Max: 6}
	g := NewGeometry(30, 135, 600, 225, 3)
	dst := raster.New(800, 480)
	layout := NewRenderer(HourlyOptions(), nil).RenderBars(dst, g, samples, d, 2.6, nil)
	r := series.ScheduleRange{Start: base.Add(3*time.Hour + time.Minute), End: base.Add(4 * time.Hour)}
	br, ok := layout.RenderScheduleBracket(dst, series.Hourly, r, "M", nil)
	if !ok {
		t.Fatal("expected bracket")
	}
	if br.FirstX != layout.Bars[3].X || br.LastX != layout.Bars[4].X+layout.Bars[4].Width {
		t.Errorf("bracket %d..%d does not match bars", br.FirstX, br.LastX)
	}
}
