package pipeline

import (
	"testing"

	"github.com/go-git/go-billy/v6/memfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocateOutputDir(t *testing.T) {
	fs := memfs.New()

	for _, want := range []string{"/photos/output", "/photos/output1", "/photos/output2"} {
		dir, err := AllocateOutputDir(fs, "/photos/output")
		require.NoError(t, err)
		assert.Equal(t, want, dir)

		info, err := fs.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestAllocateOutputDirSkipsFiles(t *testing.T) {
	fs := memfs.New()
	writePNG(t, fs, "/photos/output", gradient(1, 1))

	dir, err := AllocateOutputDir(fs, "/photos/output")
	require.NoError(t, err)
	assert.Equal(t, "/photos/output1", dir)
}
