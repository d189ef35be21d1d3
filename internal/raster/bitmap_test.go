package raster

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func TestNewIsWhite(t *testing.T) {
	b := New(800, 480)
	if len(b.Pix) != 800*480/8 {
		t.Fatalf("expected %d bytes, got %d", 800*480/8, len(b.Pix))
	}
	for i, v := range b.Pix {
		if v != 0xFF {
			t.Fatalf("byte %d: expected 0xFF, got %#x", i, v)
		}
	}
	if b.CountBlack(b.Bounds()) != 0 {
		t.Error("new bitmap should have no black pixels")
	}
}

func TestPackingMSBFirst(t *testing.T) {
	b := New(16, 2)
	b.SetBit(0, 0, Black)
	b.SetBit(9, 1, Black)
	if b.Pix[0] != 0x7F {
		t.Errorf("expected first byte 0x7F, got %#x", b.Pix[0])
	}
	if b.Pix[3] != 0xBF {
		t.Errorf("expected byte 3 to be 0xBF, got %#x", b.Pix[3])
	}
	if b.BitAt(0, 0) != Black || b.BitAt(1, 0) != White {
		t.Error("BitAt does not match packed data")
	}
}

func TestRowPadding(t *testing.T) {
	b := New(10, 3)
	if b.Stride != 2 || len(b.Pix) != 6 {
		t.Fatalf("expected stride 2 and 6 bytes, got %d and %d", b.Stride, len(b.Pix))
	}
	b.SetBit(9, 2, Black)
	if b.Pix[5] != 0xBF {
		t.Errorf("expected 0xBF, got %#x", b.Pix[5])
	}
}

func TestSetThresholds(t *testing.T) {
	b := New(4, 1)
	b.Set(0, 0, color.Gray{Y: 0x20})
	b.Set(1, 0, color.Gray{Y: 0xE0})
	if b.BitAt(0, 0) != Black {
		t.Error("dark gray should become black")
	}
	if b.BitAt(1, 0) != White {
		t.Error("light gray should become white")
	}
	b.Set(-1, 0, color.Black)
	b.Set(10, 10, color.Black)
}

func TestInverted(t *testing.T) {
	b := New(8, 1)
	b.SetBit(0, 0, Black)
	inv := b.Inverted()
	if inv[0] != 0x80 {
		t.Errorf("expected 0x80, got %#x", inv[0])
	}
	if b.Pix[0] != 0x7F {
		t.Error("Inverted() must not modify the bitmap")
	}
}

func TestFromBytesRoundTrip(t *testing.T) {
	b := New(12, 4)
	b.FillRect(2, 1, 5, 2, Black)
	c, ok := FromBytes(12, 4, b.Bytes())
	if !ok {
		t.Fatal("FromBytes() rejected a valid buffer")
	}
	if !c.Equal(b) {
		t.Error("expected identical bitmaps")
	}
	if _, ok := FromBytes(12, 4, []byte{1, 2}); ok {
		t.Error("expected short buffer to be rejected")
	}
}

func TestEncodePNG(t *testing.T) {
	b := New(20, 10)
	b.FillRect(0, 0, 4, 4, Black)
	var buf bytes.Buffer
	if err := b.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG() error: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("png.Decode() error: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 20, 10) {
		t.Errorf("unexpected bounds %v", img.Bounds())
	}
	back := FromImage(img)
	if !back.Equal(b) {
		t.Error("decoded PNG differs from bitmap")
	}
}
