package filters

import (
	"mass-image-editor/internal/opencv/conversion"
	"mass-image-editor/internal/opencv/safe"
)

// Greyscale converts to luminance and back: R = G = B, alpha opaque.
func Greyscale(src *safe.Mat) (*safe.Mat, error) {
	gray, err := conversion.ToGray(src)
	if err != nil {
		return nil, err
	}
	defer gray.Close()

	return conversion.ToRGBA(gray)
}
