package models

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadChain(t *testing.T) {
	doc := `
filters:
  - kind: rotate
    angle: 90
  - kind: crop
    left: 10
    right: 20
  - kind: blur
    enabled: false
    intensity: 3
  - kind: greyscale
`
	chain, err := ReadChain(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, chain, 4)

	assert.Equal(t, RotateParams{Angle: 90}, chain[0].Params)
	assert.Equal(t, CropParams{Left: 10, Right: 20}, chain[1].Params)
	assert.False(t, chain[2].Enabled)
	assert.Equal(t, BlurParams{Intensity: 3}, chain[2].Params)
	assert.True(t, chain[3].Enabled)
	for i, fd := range chain {
		assert.Equal(t, i, fd.OrderIndex)
	}
}

func TestReadChainErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "unknown kind", doc: "filters:\n  - kind: posterize\n"},
		{name: "parameter of other kind", doc: "filters:\n  - kind: blur\n    angle: 3\n"},
		{name: "unknown key", doc: "filters:\n  - kind: blur\n    radius: 3\n"},
		{name: "wrong type", doc: "filters:\n  - kind: blur\n    intensity: lots\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadChain(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestReadChainEmpty(t *testing.T) {
	chain, err := ReadChain(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, chain)
}

func TestWriteChainReadsBack(t *testing.T) {
	chain := DefaultChain()
	chain[1].Enabled = true
	chain[1].Params = RotateRight()
	chain[3].Params = CropParams{Left: 12.5, Bottom: 40}

	var buf bytes.Buffer
	require.NoError(t, WriteChain(&buf, chain))
	assert.Contains(t, buf.String(), "kind: rotate")

	read, err := ReadChain(&buf)
	require.NoError(t, err)
	assert.Equal(t, chain, read)
}

func TestParseFilterSpec(t *testing.T) {
	fd, err := ParseFilterSpec("crop:left=10,right=20", 3)
	require.NoError(t, err)
	assert.Equal(t, KindCrop, fd.Kind)
	assert.True(t, fd.Enabled)
	assert.Equal(t, 3, fd.OrderIndex)
	assert.Equal(t, CropParams{Left: 10, Right: 20}, fd.Params)

	fd, err = ParseFilterSpec("greyscale", 0)
	require.NoError(t, err)
	assert.Equal(t, GreyscaleParams{}, fd.Params)

	fd, err = ParseFilterSpec("flip:axis=vertical", 0)
	require.NoError(t, err)
	assert.Equal(t, FlipParams{Axis: AxisVertical}, fd.Params)

	fd, err = ParseFilterSpec("scan", 0)
	require.NoError(t, err)
	assert.Equal(t, ScanParams{Threshold: DefaultScanThreshold}, fd.Params)

	_, err = ParseFilterSpec("blur:intensity", 0)
	assert.Error(t, err)

	_, err = ParseFilterSpec("sharpen:intensity=2", 0)
	assert.Error(t, err)
}
