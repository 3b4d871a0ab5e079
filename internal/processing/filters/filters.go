// Package filters implements the transform library. Every transform takes a
// Mat it does not modify and returns a new working-mode (RGBA) Mat owned by
// the caller. Parameters are validated before any pixel work.
package filters

import (
	"fmt"

	"mass-image-editor/internal/models"
	"mass-image-editor/internal/opencv/conversion"
	"mass-image-editor/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// Scan whitens every luminance value strictly above threshold, then
// enhances edges.
func Scan(src *safe.Mat, threshold int) (*safe.Mat, error) {
	if err := (models.ScanParams{Threshold: threshold}).Validate(); err != nil {
		return nil, err
	}

	gray, err := conversion.ToGray(src)
	if err != nil {
		return nil, err
	}
	defer gray.Close()

	mask := gocv.NewMat()
	defer mask.Close()
	gocv.Threshold(gray.GetMat(), &mask, float32(threshold), 255, gocv.ThresholdBinary)

	whitened := gocv.NewMat()
	if err := gocv.Max(gray.GetMat(), mask, &whitened); err != nil {
		whitened.Close()
		return nil, fmt.Errorf("scan threshold failed: %w", err)
	}
	scanned, err := safe.Own(whitened, "scan")
	if err != nil {
		return nil, fmt.Errorf("scan threshold failed: %w", err)
	}
	defer scanned.Close()

	edged, err := edgeEnhanceKernel.apply(scanned)
	if err != nil {
		return nil, err
	}
	defer edged.Close()

	return conversion.ToRGBA(edged)
}

// Sharpen applies the fixed sharpening kernel
func Sharpen(src *safe.Mat) (*safe.Mat, error) {
	working, err := conversion.ToRGBA(src)
	if err != nil {
		return nil, err
	}
	defer working.Close()

	return sharpenKernel.apply(working)
}

// Smooth applies the fixed smoothing kernel intensity times in sequence.
func Smooth(src *safe.Mat, intensity int) (*safe.Mat, error) {
	if err := (models.SmoothParams{Intensity: intensity}).Validate(); err != nil {
		return nil, err
	}

	current, err := conversion.ToRGBA(src)
	if err != nil {
		return nil, err
	}

	for pass := 0; pass < intensity; pass++ {
		next, err := smoothKernel.apply(current)
		current.Close()
		if err != nil {
			return nil, fmt.Errorf("smooth pass %d: %w", pass+1, err)
		}
		current = next
	}

	return current, nil
}

// Emboss embosses the luminance channel and re-expands it to RGBA
func Emboss(src *safe.Mat) (*safe.Mat, error) {
	gray, err := conversion.ToGray(src)
	if err != nil {
		return nil, err
	}
	defer gray.Close()

	embossed, err := embossKernel.apply(gray)
	if err != nil {
		return nil, err
	}
	defer embossed.Close()

	return conversion.ToRGBA(embossed)
}
