package chart

import (
	"testing"

	"github.com/tonhe/inkboard/internal/axis"
	"github.com/tonhe/inkboard/internal/raster"
	"golang.org/x/image/font/basicfont"
)

func TestRenderLine(t *testing.T) {
	samples := hourlySamples(10, 12, 15, 11)
	d := axis.ComputeRoundedDomain([]float64{10, 12, 15, 11}, 0.5, 0.1)
	g := NewGeometry(20, 50, 301, 104, 0)
	dst := raster.New(400, 200)
	pts := RenderLine(dst, g, samples, d, LineOptions{Gridlines: true, Labels: EveryNth(1), LabelOffset: 4}, basicfont.Face7x13)
	if len(pts) != 4 {
		t.Fatalf("expected 4 points, got %d", len(pts))
	}
	if pts[0].X != 20 || pts[3].X != 320 {
		t.Errorf("expected points to span the region, got %v..%v", pts[0], pts[3])
	}
	if pts[2].Y >= pts[0].Y {
		t.Error("higher value must plot higher")
	}
	for _, p := range pts {
		if dst.BitAt(p.X, p.Y) != raster.Black {
			t.Errorf("expected line pixel at %v", p)
		}
	}
}

func TestRenderLineTooShort(t *testing.T) {
	dst := raster.New(100, 100)
	if pts := RenderLine(dst, NewGeometry(0, 0, 50, 50, 0), hourlySamples(1), axis.Domain{Min: 0, Max: 1}, LineOptions{Gridlines: true}, nil); pts != nil {
		t.Error("expected nil for a single sample")
	}
	if dst.CountBlack(dst.Bounds()) != 0 {
		t.Error("expected untouched canvas")
	}
}
