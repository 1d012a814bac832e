package voc

import (
	"fmt"
	"image"
	"os"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// Annotated images are treated as three-channel regardless of the decoded
// pixel format; the depth element exists for VOC compatibility only.
const imageDepth = 3

// LoadImage decodes the image at path and returns it together with its
// dimensions. Paths that cannot be decoded are reported as ErrImageRead.
func LoadImage(path string) (image.Image, Dimensions, error) {
	img, err := imaging.Open(path)
	if err != nil {
		// Retry with the dedicated webp decoder for files the registered
		// decoders reject.
		if f, ferr := os.Open(path); ferr == nil {
			if w, werr := webp.Decode(f); werr == nil {
				img, err = w, nil
			}
			f.Close()
		}
	}
	if err != nil {
		return nil, Dimensions{}, fmt.Errorf("%s: %w: %v", path, ErrImageRead, err)
	}
	b := img.Bounds()
	return img, Dimensions{Width: b.Dx(), Height: b.Dy(), Depth: imageDepth}, nil
}
