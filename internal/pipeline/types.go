package pipeline

import (
	"image"
	"sort"
)

// ImageSet maps a source identifier, usually a file name relative to the
// source directory, to its decoded image.
type ImageSet map[string]image.Image

// IDs returns the identifiers in lexical order
func (s ImageSet) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// PreviewResult holds the processed images of a preview run. Identifiers
// whose chain application failed appear in Failures instead of Images.
type PreviewResult struct {
	Images   ImageSet
	Failures map[string]error
}

// ExportResult describes a completed or partially completed export.
type ExportResult struct {
	OutputDir string
	// Paths maps each written identifier to its output file
	Paths map[string]string
	// Written lists identifiers in the order their files were written
	Written []string
}
