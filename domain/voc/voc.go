// Package voc converts between in-memory bounding box annotations and
// Pascal VOC style XML annotation files.
package voc

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
)

var (
	// ErrAlreadyExists is returned by WriteFile when the target exists and
	// overwriting was not requested.
	ErrAlreadyExists = errors.New("annotation file already exists")
	// ErrMalformed is returned by ReadFile for unparsable documents or
	// documents missing required fields.
	ErrMalformed = errors.New("malformed annotation file")
	// ErrImageRead is returned by LoadImage when the path cannot be decoded
	// as an image.
	ErrImageRead = errors.New("could not read image")
)

// Box is an axis-aligned rectangle in image pixel coordinates.
type Box struct {
	XMin, YMin, XMax, YMax int
}

// Canon returns the box with its corners reordered so that min <= max on
// both axes. Drags can go in any direction; persisted boxes are canonical.
func (b Box) Canon() Box {
	if b.XMin > b.XMax {
		b.XMin, b.XMax = b.XMax, b.XMin
	}
	if b.YMin > b.YMax {
		b.YMin, b.YMax = b.YMax, b.YMin
	}
	return b
}

// Dimensions describes the pixel size of an annotated image.
type Dimensions struct {
	Width  int
	Height int
	Depth  int
}

// Annotation is the document tree written to disk for one image.
type Annotation struct {
	XMLName xml.Name `xml:"annotation"`
	Size    Size     `xml:"size"`
	Objects []Object `xml:"object"`
}

// Size is the image dimension block of an annotation document.
type Size struct {
	Width  int `xml:"width"`
	Height int `xml:"height"`
	Depth  int `xml:"depth"`
}

// Object is one labeled bounding box entry of an annotation document.
// Truncated and Difficult are always written as literal 0.
type Object struct {
	Name      string `xml:"name"`
	Truncated int    `xml:"truncated"`
	Difficult int    `xml:"difficult"`
	BndBox    BndBox `xml:"bndbox"`
}

// BndBox holds the four corner coordinates of an Object.
type BndBox struct {
	XMin int `xml:"xmin"`
	YMin int `xml:"ymin"`
	XMax int `xml:"xmax"`
	YMax int `xml:"ymax"`
}

// Encode builds an annotation document from image dimensions and positional
// (label, box) pairs. labels and boxes must have equal length; pairing is by
// index and extra entries on either side are ignored.
func Encode(dim Dimensions, labels []string, boxes []Box) *Annotation {
	doc := &Annotation{
		Size: Size{Width: dim.Width, Height: dim.Height, Depth: dim.Depth},
	}
	n := len(boxes)
	if len(labels) < n {
		n = len(labels)
	}
	for i := 0; i < n; i++ {
		doc.Objects = append(doc.Objects, Object{
			Name: labels[i],
			BndBox: BndBox{
				XMin: boxes[i].XMin,
				YMin: boxes[i].YMin,
				XMax: boxes[i].XMax,
				YMax: boxes[i].YMax,
			},
		})
	}
	return doc
}

// WriteFile serializes the document to path as pretty-printed XML, fully
// replacing any prior content. When overwrite is false an existing file is
// reported as ErrAlreadyExists instead.
func (a *Annotation) WriteFile(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s: %w", path, ErrAlreadyExists)
		}
	}
	data, err := xml.MarshalIndent(a, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal annotation: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// readObject mirrors Object with pointer fields so that missing required
// elements are detectable after decoding.
type readObject struct {
	Name   *string `xml:"name"`
	BndBox *struct {
		XMin *int `xml:"xmin"`
		YMin *int `xml:"ymin"`
		XMax *int `xml:"xmax"`
		YMax *int `xml:"ymax"`
	} `xml:"bndbox"`
}

// ReadFile parses an annotation file and returns its boxes and labels as two
// order-aligned sequences in document order.
func ReadFile(path string) ([]Box, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	var doc struct {
		XMLName xml.Name     `xml:"annotation"`
		Objects []readObject `xml:"object"`
	}
	if err := xml.NewDecoder(f).Decode(&doc); err != nil {
		return nil, nil, fmt.Errorf("%s: %w: %v", path, ErrMalformed, err)
	}

	boxes := make([]Box, 0, len(doc.Objects))
	labels := make([]string, 0, len(doc.Objects))
	for i, obj := range doc.Objects {
		if obj.Name == nil || obj.BndBox == nil {
			return nil, nil, fmt.Errorf("%s: object %d: %w: missing name or bndbox", path, i, ErrMalformed)
		}
		bb := obj.BndBox
		if bb.XMin == nil || bb.YMin == nil || bb.XMax == nil || bb.YMax == nil {
			return nil, nil, fmt.Errorf("%s: object %d: %w: incomplete bndbox", path, i, ErrMalformed)
		}
		boxes = append(boxes, Box{XMin: *bb.XMin, YMin: *bb.YMin, XMax: *bb.XMax, YMax: *bb.YMax})
		labels = append(labels, *obj.Name)
	}
	return boxes, labels, nil
}
