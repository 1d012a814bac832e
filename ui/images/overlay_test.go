package images

import (
	"image"
	"image/color"
	"testing"
)

var red = color.RGBA{R: 255, A: 255}

func TestDrawRectBorderPixels(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 20, 20))
	DrawRect(dst, image.Rect(5, 5, 15, 15), red, 1)

	for _, p := range []image.Point{{5, 5}, {15, 5}, {5, 15}, {15, 15}, {10, 5}, {5, 10}} {
		if got := dst.RGBAAt(p.X, p.Y); got != red {
			t.Fatalf("border pixel %v not drawn: %v", p, got)
		}
	}
	if got := dst.RGBAAt(10, 10); got == red {
		t.Fatalf("interior pixel should stay untouched")
	}
}

func TestDrawRectThickness(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 20, 20))
	DrawRect(dst, image.Rect(5, 5, 15, 15), red, 2)

	// Thickness 2 is centered on the edge: one pixel on either side.
	if dst.RGBAAt(10, 4) != red || dst.RGBAAt(10, 5) != red {
		t.Fatalf("thickness 2 should cover rows 4 and 5 on the top edge")
	}
	if dst.RGBAAt(10, 6) == red {
		t.Fatalf("row 6 is inside the rectangle and should stay untouched")
	}
}

func TestDrawRectClipsToBounds(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 10, 10))
	// Must not panic for rectangles (partially) outside the image.
	DrawRect(dst, image.Rect(-5, -5, 30, 30), red, 3)
	DrawRect(dst, image.Rect(50, 50, 60, 60), red, 1)
}

func TestDrawRectReversedCorners(t *testing.T) {
	a := image.NewRGBA(image.Rect(0, 0, 20, 20))
	b := image.NewRGBA(image.Rect(0, 0, 20, 20))
	DrawRect(a, image.Rect(5, 5, 15, 15), red, 1)
	DrawRect(b, image.Rectangle{Min: image.Point{15, 15}, Max: image.Point{5, 5}}, red, 1)
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("reversed corners should draw the same border")
		}
	}
}

func TestOverlayDoesNotMutateSource(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 20, 20))
	out := Overlay(src, []image.Rectangle{image.Rect(2, 2, 18, 18)}, red, 2)
	if out == nil {
		t.Fatalf("overlay returned nil for a valid frame")
	}
	for i := range src.Pix {
		if src.Pix[i] != 0 {
			t.Fatalf("overlay mutated the source frame")
		}
	}
	if out.RGBAAt(2, 2) != red {
		t.Fatalf("overlay did not draw the rectangle")
	}
}

func TestEncodePNG(t *testing.T) {
	if EncodePNG(nil) != nil {
		t.Fatalf("nil image should encode to nil")
	}
	data := EncodePNG(image.NewRGBA(image.Rect(0, 0, 4, 4)))
	if len(data) == 0 {
		t.Fatalf("expected PNG bytes")
	}
	// PNG signature.
	if data[0] != 0x89 || string(data[1:4]) != "PNG" {
		t.Fatalf("output is not a PNG")
	}
}

func TestOverlayNilFrame(t *testing.T) {
	if Overlay(nil, nil, red, 1) != nil {
		t.Fatalf("nil frame should yield nil overlay")
	}
}
