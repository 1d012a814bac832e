package images

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/png"
)

// EncodePNG encodes an image to PNG bytes for a Tk photo. Errors are ignored
// and may return an empty slice.
func EncodePNG(img image.Image) []byte {
	if img == nil {
		return nil
	}
	var buf bytes.Buffer
	_ = png.Encode(&buf, img)
	return buf.Bytes()
}

// DrawRect draws the border of r onto dst with the given color and
// thickness. The border is centered on the rectangle's edges and clipped to
// dst's bounds. Degenerate rectangles collapse to a dot or line.
func DrawRect(dst *image.RGBA, r image.Rectangle, col color.RGBA, thickness int) {
	if dst == nil {
		return
	}
	if thickness < 1 {
		thickness = 1
	}
	r = r.Canon()
	t := thickness
	lo := t / 2
	hi := t - lo
	edges := [4]image.Rectangle{
		image.Rect(r.Min.X-lo, r.Min.Y-lo, r.Max.X+hi, r.Min.Y+hi), // top
		image.Rect(r.Min.X-lo, r.Max.Y-lo, r.Max.X+hi, r.Max.Y+hi), // bottom
		image.Rect(r.Min.X-lo, r.Min.Y-lo, r.Min.X+hi, r.Max.Y+hi), // left
		image.Rect(r.Max.X-lo, r.Min.Y-lo, r.Max.X+hi, r.Max.Y+hi), // right
	}
	src := image.NewUniform(col)
	for _, e := range edges {
		draw.Draw(dst, e.Intersect(dst.Bounds()), src, image.Point{}, draw.Src)
	}
}

// Overlay copies frame and draws every rectangle's border onto the copy.
// The source image is never mutated.
func Overlay(frame image.Image, rects []image.Rectangle, col color.RGBA, thickness int) *image.RGBA {
	if frame == nil {
		return nil
	}
	b := frame.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), frame, b.Min, draw.Src)
	for _, r := range rects {
		DrawRect(dst, r, col, thickness)
	}
	return dst
}
