package conversion

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Run("copies NRGBA sub-images", func(t *testing.T) {
		src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
		src.SetNRGBA(2, 3, color.NRGBA{R: 1, G: 2, B: 3, A: 4})
		sub := src.SubImage(image.Rect(1, 1, 4, 4))

		out, err := Normalize(sub)
		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 3, 3), out.Bounds())
		assert.Equal(t, color.NRGBA{R: 1, G: 2, B: 3, A: 4}, out.NRGBAAt(1, 2))

		out.Pix[0] = 200
		assert.Equal(t, uint8(0), src.Pix[src.PixOffset(1, 1)])
	})

	t.Run("expands gray with opaque alpha", func(t *testing.T) {
		src := image.NewGray(image.Rect(0, 0, 2, 1))
		src.SetGray(1, 0, color.Gray{Y: 77})

		out, err := Normalize(src)
		require.NoError(t, err)
		assert.Equal(t, color.NRGBA{R: 77, G: 77, B: 77, A: 255}, out.NRGBAAt(1, 0))
	})

	t.Run("un-premultiplies RGBA", func(t *testing.T) {
		src := image.NewRGBA(image.Rect(0, 0, 1, 1))
		src.SetRGBA(0, 0, color.RGBA{R: 50, G: 0, B: 0, A: 128})

		out, err := Normalize(src)
		require.NoError(t, err)
		c := out.NRGBAAt(0, 0)
		assert.Equal(t, uint8(128), c.A)
		assert.InDelta(t, 100, int(c.R), 1)
	})

	t.Run("rejects nil and empty", func(t *testing.T) {
		_, err := Normalize(nil)
		assert.Error(t, err)
		_, err = Normalize(image.NewNRGBA(image.Rectangle{}))
		assert.Error(t, err)
	})
}

func TestImageMatRoundTrip(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 5, 3))
	for i := range src.Pix {
		src.Pix[i] = uint8(i * 7)
	}

	mat, err := ImageToMat(src)
	require.NoError(t, err)
	defer mat.Close()

	assert.Equal(t, WorkingType, mat.Type())
	assert.Equal(t, 3, mat.Rows())
	assert.Equal(t, 5, mat.Cols())

	out, err := MatToImage(mat)
	require.NoError(t, err)
	assert.Equal(t, src, out)
}

func TestGrayConversions(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for i := 0; i < 4; i++ {
		src.SetNRGBA(i%2, i/2, color.NRGBA{R: 255, G: 255, B: 255, A: 10})
	}

	mat, err := ImageToMat(src)
	require.NoError(t, err)
	defer mat.Close()

	gray, err := ToGray(mat)
	require.NoError(t, err)
	defer gray.Close()
	assert.Equal(t, 1, gray.Channels())

	rgba, err := ToRGBA(gray)
	require.NoError(t, err)
	defer rgba.Close()
	assert.Equal(t, 4, rgba.Channels())

	px, err := rgba.Pixel(1, 1)
	require.NoError(t, err)
	assert.Equal(t, []uint8{255, 255, 255, 255}, px)
}
