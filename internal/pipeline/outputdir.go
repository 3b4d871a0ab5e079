package pipeline

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/go-git/go-billy/v6"
)

const maxOutputDirAttempts = 10000

// AllocateOutputDir creates and returns the first of root, root1, root2, ...
// that does not yet exist. Existing directories are never reused.
//
// billy has no exclusive mkdir, so the Stat/MkdirAll pair is not atomic: two
// exports racing on the same root may be handed the same directory. Callers
// run one export per root at a time.
func AllocateOutputDir(fs billy.Filesystem, root string) (string, error) {
	for n := 0; n < maxOutputDirAttempts; n++ {
		candidate := root
		if n > 0 {
			candidate = root + strconv.Itoa(n)
		}

		_, err := fs.Stat(candidate)
		if err == nil {
			continue
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}

		if err := fs.MkdirAll(candidate, 0o755); err != nil {
			return "", err
		}
		return candidate, nil
	}

	return "", fmt.Errorf("no free output directory for %s after %d attempts", root, maxOutputDirAttempts)
}
