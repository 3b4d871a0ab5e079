package filters

import (
	"fmt"
	"image"

	"mass-image-editor/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// kernel is a 3x3 enhancement kernel: each output pixel is
// sum(weights*neighbourhood)/scale + offset, saturated to 0..255.
type kernel struct {
	name    string
	weights [9]float32
	scale   float32
	offset  float64
}

var (
	edgeEnhanceKernel = kernel{
		name:    "edge_enhance",
		weights: [9]float32{-1, -1, -1, -1, 10, -1, -1, -1, -1},
		scale:   2,
	}
	sharpenKernel = kernel{
		name:    "sharpen",
		weights: [9]float32{-2, -2, -2, -2, 32, -2, -2, -2, -2},
		scale:   16,
	}
	smoothKernel = kernel{
		name:    "smooth",
		weights: [9]float32{1, 1, 1, 1, 5, 1, 1, 1, 1},
		scale:   13,
	}
	embossKernel = kernel{
		name:    "emboss",
		weights: [9]float32{-1, 0, 0, 0, 1, 0, 0, 0, 0},
		scale:   1,
		offset:  128,
	}
)

// apply filters every channel of src, replicating edge pixels at the border
func (k kernel) apply(src *safe.Mat) (*safe.Mat, error) {
	if err := safe.ValidateMatForOperation(src, k.name); err != nil {
		return nil, err
	}

	weights := gocv.NewMatWithSize(3, 3, gocv.MatTypeCV32F)
	defer weights.Close()

	for i, w := range k.weights {
		weights.SetFloatAt(i/3, i%3, w/k.scale)
	}

	dst := gocv.NewMat()
	err := gocv.Filter2D(src.GetMat(), &dst, -1, weights, image.Point{X: -1, Y: -1}, k.offset, gocv.BorderReplicate)
	if err != nil {
		dst.Close()
		return nil, fmt.Errorf("%s kernel failed: %w", k.name, err)
	}

	return safe.Own(dst, k.name)
}
