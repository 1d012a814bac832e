package voc

import (
	"os"
	"path/filepath"
	"strings"
)

// Stem returns the file name of path without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// AnnotationPath returns the annotation file path for imagePath inside dir.
func AnnotationPath(imagePath, dir string) string {
	return filepath.Join(dir, Stem(imagePath)+".xml")
}

// AnnotateImageFile reads the image at imagePath for its dimensions and
// writes an annotation file for the given (label, box) pairs.
//
// With an empty annotationDir the file is written next to the image as
// <stem>.xml. A relative annotationDir is resolved against the image's
// folder and created on demand.
func AnnotateImageFile(imagePath string, labels []string, boxes []Box, annotationDir string, overwrite bool) error {
	_, dim, err := LoadImage(imagePath)
	if err != nil {
		return err
	}

	var out string
	if annotationDir == "" {
		out = strings.TrimSuffix(imagePath, filepath.Ext(imagePath)) + ".xml"
	} else {
		dir := annotationDir
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(filepath.Dir(imagePath), dir)
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		out = AnnotationPath(imagePath, dir)
	}
	return Encode(dim, labels, boxes).WriteFile(out, overwrite)
}
