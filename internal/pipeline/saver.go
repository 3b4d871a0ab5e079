package pipeline

import (
	"fmt"
	"image"
	"image/png"

	"mass-image-editor/internal/logger"

	"github.com/go-git/go-billy/v6"
)

// outputExtension names the single export encoding
const outputExtension = ".png"

type imageSaver struct {
	fs     billy.Filesystem
	logger logger.Logger
}

// Save encodes img as PNG to path
func (s *imageSaver) Save(path string, img image.Image) error {
	file, err := s.fs.Create(path)
	if err != nil {
		return err
	}

	err = png.Encode(file, img)
	if closeErr := file.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("failed to close %s: %w", path, closeErr)
	}
	if err != nil {
		s.logger.Error("ImageSaver", err, map[string]interface{}{
			"path": path,
		})
		return err
	}

	bounds := img.Bounds()
	s.logger.Debug("ImageSaver", "image saved", map[string]interface{}{
		"path":   path,
		"width":  bounds.Dx(),
		"height": bounds.Dy(),
	})

	return nil
}
