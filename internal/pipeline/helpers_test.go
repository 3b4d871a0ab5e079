package pipeline

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/go-git/go-billy/v6"
	"github.com/stretchr/testify/require"
)

var errDiskFull = errors.New("disk full")

// failingFS fails every Create after the first allowed ones
type failingFS struct {
	billy.Filesystem
	allowed int
	creates int
}

func (f *failingFS) Create(filename string) (billy.File, error) {
	f.creates++
	if f.creates > f.allowed {
		return nil, errDiskFull
	}
	return f.Filesystem.Create(filename)
}

func gradient(width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 3), G: uint8(y * 3), B: 90, A: 255})
		}
	}
	return img
}

func writePNG(t *testing.T, fs billy.Filesystem, path string, img image.Image) {
	t.Helper()
	f, err := fs.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
}

func readPNG(t *testing.T, fs billy.Filesystem, path string) image.Image {
	t.Helper()
	f, err := fs.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	return img
}
