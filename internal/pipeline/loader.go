package pipeline

import (
	"bufio"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"sort"
	"strings"

	"mass-image-editor/internal/logger"
	"mass-image-editor/internal/models"

	"github.com/go-git/go-billy/v6"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Loader discovers and decodes source images.
type Loader struct {
	fs         billy.Filesystem
	logger     logger.Logger
	extensions map[string]struct{}
}

func NewLoader(fs billy.Filesystem, log logger.Logger, extensions []string) *Loader {
	if log == nil {
		log = logger.Nop()
	}

	exts := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		exts[strings.ToLower(ext)] = struct{}{}
	}

	return &Loader{fs: fs, logger: log, extensions: exts}
}

// Supported reports whether name carries one of the loader's extensions
func (l *Loader) Supported(name string) bool {
	_, ok := l.extensions[strings.ToLower(filepath.Ext(name))]
	return ok
}

// List returns the supported image file names directly inside dir, sorted.
// Subdirectories are not descended into.
func (l *Loader) List(dir string) ([]string, error) {
	entries, err := l.fs.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !l.Supported(entry.Name()) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	l.logger.Debug("ImageLoader", "source directory listed", map[string]interface{}{
		"dir":    dir,
		"images": len(names),
	})

	return names, nil
}

// Load decodes names relative to dir. Files that cannot be decoded are
// skipped and reported as warnings; the returned error is reserved for
// cancellation.
func (l *Loader) Load(ctx context.Context, dir string, names []string) (ImageSet, []*models.DecodeError, error) {
	set := make(ImageSet, len(names))
	var warnings []*models.DecodeError

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return set, warnings, err
		}

		path := filepath.Join(dir, name)
		img, format, err := l.decode(path)
		if err != nil {
			de := &models.DecodeError{ID: name, Path: path, Err: err}
			warnings = append(warnings, de)
			l.logger.Warning("ImageLoader", "skipping undecodable image", map[string]interface{}{
				"id":    name,
				"path":  path,
				"error": err.Error(),
			})
			continue
		}

		bounds := img.Bounds()
		l.logger.Debug("ImageLoader", "image loaded", map[string]interface{}{
			"id":     name,
			"format": format,
			"width":  bounds.Dx(),
			"height": bounds.Dy(),
		})
		set[name] = img
	}

	return set, warnings, nil
}

func (l *Loader) decode(path string) (image.Image, string, error) {
	file, err := l.fs.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer file.Close()

	return image.Decode(bufio.NewReader(file))
}
