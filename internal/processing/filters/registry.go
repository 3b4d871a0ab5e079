package filters

import (
	"fmt"

	"mass-image-editor/internal/models"
	"mass-image-editor/internal/opencv/safe"
)

// Transform applies one kind of filter with its parameter set
type Transform func(src *safe.Mat, params models.ParameterSet) (*safe.Mat, error)

var registry = map[models.TransformKind]Transform{
	models.KindScan: bind(func(src *safe.Mat, p models.ScanParams) (*safe.Mat, error) {
		return Scan(src, p.Threshold)
	}),
	models.KindRotate: bind(func(src *safe.Mat, p models.RotateParams) (*safe.Mat, error) {
		return Rotate(src, p.Angle)
	}),
	models.KindFlip: bind(func(src *safe.Mat, p models.FlipParams) (*safe.Mat, error) {
		return Flip(src, p.Axis)
	}),
	models.KindCrop: bind(Crop),
	models.KindSharpen: bind(func(src *safe.Mat, _ models.SharpenParams) (*safe.Mat, error) {
		return Sharpen(src)
	}),
	models.KindBlur: bind(func(src *safe.Mat, p models.BlurParams) (*safe.Mat, error) {
		return Blur(src, p.Intensity)
	}),
	models.KindSmooth: bind(func(src *safe.Mat, p models.SmoothParams) (*safe.Mat, error) {
		return Smooth(src, p.Intensity)
	}),
	models.KindEmboss: bind(func(src *safe.Mat, _ models.EmbossParams) (*safe.Mat, error) {
		return Emboss(src)
	}),
	models.KindGreyscale: bind(func(src *safe.Mat, _ models.GreyscaleParams) (*safe.Mat, error) {
		return Greyscale(src)
	}),
}

// Lookup returns the transform registered for kind
func Lookup(kind models.TransformKind) (Transform, error) {
	transform, ok := registry[kind]
	if !ok {
		return nil, fmt.Errorf("%w: no transform for kind %q", models.ErrInvalidParameter, kind)
	}
	return transform, nil
}

func bind[P models.ParameterSet](fn func(*safe.Mat, P) (*safe.Mat, error)) Transform {
	return func(src *safe.Mat, params models.ParameterSet) (*safe.Mat, error) {
		typed, ok := params.(P)
		if !ok {
			var want P
			return nil, models.NewParameterError(want.Kind(), "parameters", fmt.Sprintf("%T", params), fmt.Sprintf("type %T", want))
		}
		return fn(src, typed)
	}
}
