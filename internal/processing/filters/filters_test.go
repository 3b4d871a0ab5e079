package filters

import (
	"image/color"
	"testing"

	"mass-image-editor/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func opaqueGray(v uint8) color.NRGBA {
	return color.NRGBA{R: v, G: v, B: v, A: 255}
}

func TestBlurKernelGrowsWithIntensity(t *testing.T) {
	prevSigma, prevSize := 0.0, 0
	for i := models.BlurIntensityMin; i <= models.BlurIntensityMax; i++ {
		sigma, size := BlurKernel(i)
		assert.Greater(t, sigma, prevSigma)
		assert.Greater(t, size, prevSize)
		assert.Equal(t, 1, size%2, "kernel size must be odd")
		prevSigma, prevSize = sigma, size
	}

	sigma, _ := BlurKernel(0)
	assert.Equal(t, 1.0, sigma)
	sigma, _ = BlurKernel(7)
	assert.Equal(t, 15.0, sigma)
}

func TestBlurKeepsUniformImage(t *testing.T) {
	c := color.NRGBA{R: 10, G: 120, B: 240, A: 255}

	out, err := Blur(toMat(t, uniform(16, 16, c)), 3)
	require.NoError(t, err)
	img := toImage(t, out)

	assert.Equal(t, c, img.NRGBAAt(0, 0))
	assert.Equal(t, c, img.NRGBAAt(8, 8))
}

func TestBlurSpreadsEdgeWithIntensity(t *testing.T) {
	src := stepEdge(64, 4, 32, 64, 192)

	light, err := Blur(toMat(t, src), 0)
	require.NoError(t, err)
	lightImg := toImage(t, light)

	heavy, err := Blur(toMat(t, src), 2)
	require.NoError(t, err)
	heavyImg := toImage(t, heavy)

	// Next to the edge both blurs mix in the bright side.
	assert.Greater(t, lightImg.NRGBAAt(31, 2).R, uint8(64))
	assert.Less(t, lightImg.NRGBAAt(32, 2).R, uint8(192))

	// Six columns away only the wider kernel reaches across.
	assert.Equal(t, uint8(64), lightImg.NRGBAAt(26, 2).R)
	assert.Greater(t, heavyImg.NRGBAAt(26, 2).R, uint8(64))
	assert.Equal(t, uint8(192), lightImg.NRGBAAt(38, 2).R)
	assert.Less(t, heavyImg.NRGBAAt(38, 2).R, uint8(192))

	// Far from the edge nothing changes.
	assert.Equal(t, opaqueGray(64), heavyImg.NRGBAAt(2, 2))
	assert.Equal(t, uint8(255), heavyImg.NRGBAAt(31, 2).A)
}

func TestBlurRejectsIntensity(t *testing.T) {
	_, err := Blur(toMat(t, gradient(4, 4)), 8)
	assert.ErrorIs(t, err, models.ErrInvalidParameter)
}

func TestSmoothRepeatsSinglePass(t *testing.T) {
	src := toMat(t, checkerboard(12, 12, 2))

	once, err := Smooth(src, 1)
	require.NoError(t, err)
	defer once.Close()

	current := once
	for i := 0; i < 2; i++ {
		next, err := Smooth(current, 1)
		require.NoError(t, err)
		if current != once {
			current.Close()
		}
		current = next
	}
	threeSingles := toImage(t, current)

	three, err := Smooth(src, 3)
	require.NoError(t, err)
	threeAtOnce := toImage(t, three)

	assert.Equal(t, threeSingles, threeAtOnce)

	oneCopy, err := once.Clone()
	require.NoError(t, err)
	assert.NotEqual(t, toImage(t, oneCopy), threeAtOnce)
}

func TestSmoothRejectsIntensity(t *testing.T) {
	_, err := Smooth(toMat(t, gradient(4, 4)), 0)
	assert.ErrorIs(t, err, models.ErrInvalidParameter)
}

func TestGreyscale(t *testing.T) {
	src := toMat(t, gradient(16, 16))

	grey, err := Greyscale(src)
	require.NoError(t, err)
	defer grey.Close()

	again, err := Greyscale(grey)
	require.NoError(t, err)

	greyCopy, err := grey.Clone()
	require.NoError(t, err)
	first := toImage(t, greyCopy)
	second := toImage(t, again)

	assert.Equal(t, first, second)
	for _, c := range []color.NRGBA{first.NRGBAAt(0, 0), first.NRGBAAt(9, 3), first.NRGBAAt(15, 15)} {
		assert.Equal(t, c.R, c.G)
		assert.Equal(t, c.G, c.B)
		assert.Equal(t, uint8(255), c.A)
	}
}

func TestSharpenKeepsUniformImage(t *testing.T) {
	c := color.NRGBA{R: 40, G: 80, B: 160, A: 255}

	out, err := Sharpen(toMat(t, uniform(8, 8, c)))
	require.NoError(t, err)

	assert.Equal(t, c, toImage(t, out).NRGBAAt(4, 4))
}

func TestSharpenIncreasesEdgeContrast(t *testing.T) {
	out, err := Sharpen(toMat(t, stepEdge(8, 4, 4, 64, 192)))
	require.NoError(t, err)
	img := toImage(t, out)

	// (32*64 - 2*(5*64 + 3*192)) / 16 and (32*192 - 2*(5*192 + 3*64)) / 16
	assert.Equal(t, opaqueGray(16), img.NRGBAAt(3, 2))
	assert.Equal(t, opaqueGray(240), img.NRGBAAt(4, 2))

	assert.Equal(t, opaqueGray(64), img.NRGBAAt(1, 2))
	assert.Equal(t, opaqueGray(192), img.NRGBAAt(6, 2))
}

func TestEmbossFlatAreaIsMidGray(t *testing.T) {
	out, err := Emboss(toMat(t, uniform(8, 8, opaqueGray(30))))
	require.NoError(t, err)

	assert.Equal(t, opaqueGray(128), toImage(t, out).NRGBAAt(3, 3))
}

func TestScan(t *testing.T) {
	t.Run("values above threshold turn white", func(t *testing.T) {
		out, err := Scan(toMat(t, uniform(8, 8, opaqueGray(220))), 200)
		require.NoError(t, err)
		assert.Equal(t, opaqueGray(255), toImage(t, out).NRGBAAt(4, 4))
	})

	t.Run("values at or below threshold are kept", func(t *testing.T) {
		out, err := Scan(toMat(t, uniform(8, 8, opaqueGray(100))), 200)
		require.NoError(t, err)
		assert.Equal(t, opaqueGray(100), toImage(t, out).NRGBAAt(4, 4))
	})

	t.Run("edges are enhanced after thresholding", func(t *testing.T) {
		out, err := Scan(toMat(t, stepEdge(8, 4, 4, 100, 220)), 200)
		require.NoError(t, err)
		img := toImage(t, out)

		// Thresholding alone leaves 100 | 255; the edge kernel then pushes
		// the dark side of the boundary to black.
		assert.Equal(t, opaqueGray(0), img.NRGBAAt(3, 2))
		assert.Equal(t, opaqueGray(255), img.NRGBAAt(4, 2))
		assert.Equal(t, opaqueGray(100), img.NRGBAAt(1, 2))
		assert.Equal(t, opaqueGray(255), img.NRGBAAt(6, 2))
	})

	t.Run("rejects threshold", func(t *testing.T) {
		_, err := Scan(toMat(t, uniform(2, 2, opaqueGray(0))), 300)
		assert.ErrorIs(t, err, models.ErrInvalidParameter)
	})
}

func TestLookup(t *testing.T) {
	for _, kind := range models.Kinds {
		transform, err := Lookup(kind)
		require.NoError(t, err, kind)
		assert.NotNil(t, transform)
	}

	_, err := Lookup("posterize")
	assert.ErrorIs(t, err, models.ErrInvalidParameter)

	transform, err := Lookup(models.KindBlur)
	require.NoError(t, err)
	_, err = transform(toMat(t, gradient(2, 2)), models.SmoothParams{Intensity: 1})
	assert.ErrorIs(t, err, models.ErrInvalidParameter)
}
