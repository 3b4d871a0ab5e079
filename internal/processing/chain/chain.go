package chain

import (
	"context"
	"errors"
	"fmt"
	"image"

	"mass-image-editor/internal/logger"
	"mass-image-editor/internal/models"
	"mass-image-editor/internal/opencv/conversion"
	"mass-image-editor/internal/opencv/safe"
	"mass-image-editor/internal/processing/filters"
)

// Composer folds an ordered chain of filter descriptors over one image.
type Composer struct {
	logger logger.Logger
}

func NewComposer(log logger.Logger) *Composer {
	if log == nil {
		log = logger.Nop()
	}
	return &Composer{logger: log}
}

// Apply validates the chain, then applies every enabled descriptor to img in
// order. The result is a new image in the working color mode; img is never
// modified. An empty or fully disabled chain returns a normalized copy of img.
func (c *Composer) Apply(ctx context.Context, img image.Image, chain models.Chain) (*image.NRGBA, error) {
	if err := chain.Validate(); err != nil {
		return nil, err
	}

	if len(chain.Enabled()) == 0 {
		return conversion.Normalize(img)
	}

	input, err := conversion.ImageToMat(img)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare image: %w", err)
	}
	defer input.Close()

	result, err := c.ApplyMat(ctx, input, chain)
	if err != nil {
		return nil, err
	}
	defer result.Close()

	return conversion.MatToImage(result)
}

// ApplyMat is Apply for callers already holding a Mat. The returned Mat is
// always distinct from input and owned by the caller.
func (c *Composer) ApplyMat(ctx context.Context, input *safe.Mat, chain models.Chain) (*safe.Mat, error) {
	if err := chain.Validate(); err != nil {
		return nil, err
	}

	return c.execute(ctx, input, chain)
}

func (c *Composer) execute(ctx context.Context, input *safe.Mat, chain models.Chain) (*safe.Mat, error) {
	if err := safe.ValidateMatForOperation(input, "apply chain"); err != nil {
		return nil, err
	}

	current := input
	needsCleanup := false

	for i, fd := range chain {
		select {
		case <-ctx.Done():
			if needsCleanup {
				current.Close()
			}
			return nil, ctx.Err()
		default:
		}

		if !fd.Enabled {
			continue
		}

		transform, err := filters.Lookup(fd.Kind)
		if err != nil {
			if needsCleanup {
				current.Close()
			}
			return nil, err
		}

		result, err := transform(current, fd.Params)
		if needsCleanup {
			current.Close()
		}
		if err != nil {
			var pe *models.ParameterError
			if errors.As(err, &pe) && pe.Index < 0 {
				attached := *pe
				attached.Index = i
				return nil, &attached
			}
			return nil, fmt.Errorf("step %d (%s) failed: %w", i, fd.Kind, err)
		}

		c.logger.Debug("Composer", "step applied", map[string]interface{}{
			"index":  i,
			"kind":   string(fd.Kind),
			"width":  result.Cols(),
			"height": result.Rows(),
		})

		current = result
		needsCleanup = true
	}

	if !needsCleanup {
		return conversion.ToRGBA(input)
	}

	return current, nil
}
