package raster

import (
	"image"
	"testing"
)

func TestFillRectInclusive(t *testing.T) {
	b := New(20, 20)
	b.FillRect(2, 3, 5, 7, Black)
	if got := b.CountBlack(b.Bounds()); got != 4*5 {
		t.Errorf("expected 20 black pixels, got %d", got)
	}
	if b.BitAt(5, 7) != Black || b.BitAt(6, 7) != White {
		t.Error("expected corners to be inclusive")
	}
	b.FillRect(-5, -5, 100, 0, Black)
	if b.BitAt(19, 0) != Black {
		t.Error("expected clipped fill to reach the edge")
	}
}

func TestOutlineRect(t *testing.T) {
	b := New(20, 20)
	b.FillRect(0, 0, 19, 19, Black)
	b.OutlineRect(2, 2, 11, 11, 2, Black, White)
	if b.BitAt(6, 6) != White {
		t.Error("expected white interior")
	}
	for _, p := range []image.Point{{2, 2}, {3, 3}, {11, 6}, {10, 6}, {6, 11}} {
		if b.BitAt(p.X, p.Y) != Black {
			t.Errorf("expected border pixel at %v", p)
		}
	}
	if b.BitAt(4, 4) != White {
		t.Error("border must be exactly 2 pixels wide")
	}
}

func TestChecker(t *testing.T) {
	b := New(8, 8)
	b.Checker(0, 0, 7, 7, Black)
	if got := b.CountBlack(b.Bounds()); got != 32 {
		t.Errorf("expected half of 64 pixels black, got %d", got)
	}
	if b.BitAt(0, 0) != Black || b.BitAt(1, 1) != Black || b.BitAt(2, 0) != White || b.BitAt(2, 2) != Black {
		t.Error("unexpected checkerboard phase")
	}
}

func TestCheckerClipsToRect(t *testing.T) {
	b := New(10, 10)
	b.Checker(1, 1, 3, 3, Black)
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			inside := x >= 1 && x <= 3 && y >= 1 && y <= 3
			if !inside && b.BitAt(x, y) == Black {
				t.Fatalf("pixel (%d,%d) outside the region is black", x, y)
			}
		}
	}
}

func TestLines(t *testing.T) {
	b := New(30, 30)
	b.HLine(0, 9, 10, 2, Black)
	if b.BitAt(5, 9) != Black || b.BitAt(5, 10) != Black || b.BitAt(5, 11) != White {
		t.Error("expected 2px line covering rows 9 and 10")
	}
	b.VLine(20, 0, 4, 1, Black)
	if b.CountBlack(image.Rect(20, 0, 21, 5)) != 5 {
		t.Error("expected 5 pixel vertical line")
	}
	c := New(30, 30)
	c.Line(0, 0, 9, 9, Black)
	if c.CountBlack(c.Bounds()) != 10 {
		t.Errorf("expected diagonal of 10 pixels, got %d", c.CountBlack(c.Bounds()))
	}
}

func TestDashedHLine(t *testing.T) {
	b := New(40, 2)
	b.DashedHLine(1, 20, 0, 8, 4, Black)
	want := map[int]bool{}
	for _, start := range []int{1, 9, 17} {
		for x := start; x <= start+4; x++ {
			want[x] = true
		}
	}
	for x := 0; x < 40; x++ {
		if (b.BitAt(x, 0) == Black) != want[x] {
			t.Errorf("x=%d: black=%v, want %v", x, b.BitAt(x, 0) == Black, want[x])
		}
	}
}

func TestFillTriangle(t *testing.T) {
	b := New(40, 40)
	b.FillTriangle(image.Pt(20, 10), image.Pt(12, 18), image.Pt(28, 18), Black)
	if b.BitAt(20, 10) != Black || b.BitAt(12, 18) != Black || b.BitAt(28, 18) != Black {
		t.Error("expected vertices to be filled")
	}
	if b.BitAt(20, 15) != Black {
		t.Error("expected interior to be filled")
	}
	if b.BitAt(13, 11) != White {
		t.Error("expected pixel outside the triangle to stay white")
	}
}

func TestCircle(t *testing.T) {
	b := New(40, 40)
	b.FillRect(0, 0, 39, 39, Black)
	b.Circle(20, 20, 12, 2, Black, White)
	if b.BitAt(20, 20) != White {
		t.Error("expected white fill at centre")
	}
	if b.BitAt(32, 20) != Black || b.BitAt(20, 8) != Black {
		t.Error("expected ring at radius")
	}
	d := New(40, 40)
	d.FillCircle(20, 20, 3, Black)
	if d.BitAt(20, 20) != Black || d.BitAt(23, 20) != Black || d.BitAt(24, 20) != White {
		t.Error("unexpected disc extent")
	}
}
