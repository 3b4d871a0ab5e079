package filters

import (
	"image"
	"image/color"
	"testing"

	"mass-image-editor/internal/opencv/conversion"
	"mass-image-editor/internal/opencv/safe"

	"github.com/stretchr/testify/require"
)

// gradient gives every pixel a distinct colour: R = x, G = y, B = x ^ y.
func gradient(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: uint8(x ^ y), A: 255})
		}
	}
	return img
}

func uniform(width, height int, c color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

// stepEdge is a vertical edge: columns left of at hold left, the rest right.
func stepEdge(width, height, at int, left, right uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := right
			if x < at {
				v = left
			}
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

func checkerboard(width, height, cell int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint8(0)
			if (x/cell+y/cell)%2 == 0 {
				v = 255
			}
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

func toMat(t *testing.T, img image.Image) *safe.Mat {
	t.Helper()
	mat, err := conversion.ImageToMat(img)
	require.NoError(t, err)
	t.Cleanup(mat.Close)
	return mat
}

func toImage(t *testing.T, mat *safe.Mat) *image.NRGBA {
	t.Helper()
	img, err := conversion.MatToImage(mat)
	require.NoError(t, err)
	mat.Close()
	return img
}
