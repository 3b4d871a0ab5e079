package filters

import (
	"fmt"
	"image"
	"math"

	"mass-image-editor/internal/models"
	"mass-image-editor/internal/opencv/conversion"
	"mass-image-editor/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// BlurKernel returns the Gaussian standard deviation and the odd kernel
// size used for an intensity. Both grow strictly with intensity.
func BlurKernel(intensity int) (sigma float64, size int) {
	sigma = models.BlurParams{Intensity: intensity}.Radius()
	size = 2*int(math.Ceil(3*sigma)) + 1
	return sigma, size
}

// Blur applies a Gaussian blur of radius 1 + 2*intensity
func Blur(src *safe.Mat, intensity int) (*safe.Mat, error) {
	if err := (models.BlurParams{Intensity: intensity}).Validate(); err != nil {
		return nil, err
	}

	working, err := conversion.ToRGBA(src)
	if err != nil {
		return nil, err
	}
	defer working.Close()

	sigma, size := BlurKernel(intensity)

	dst := gocv.NewMat()
	err = gocv.GaussianBlur(working.GetMat(), &dst, image.Point{X: size, Y: size}, sigma, sigma, gocv.BorderReplicate)
	if err != nil {
		dst.Close()
		return nil, fmt.Errorf("gaussian blur failed: %w", err)
	}

	return safe.Own(dst, "blur")
}
