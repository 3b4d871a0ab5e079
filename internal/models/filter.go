package models

import (
	"fmt"
	"math"
)

// TransformKind selects which transform a descriptor invokes
type TransformKind string

const (
	KindScan      TransformKind = "scan"
	KindRotate    TransformKind = "rotate"
	KindFlip      TransformKind = "flip"
	KindCrop      TransformKind = "crop"
	KindSharpen   TransformKind = "sharpen"
	KindBlur      TransformKind = "blur"
	KindSmooth    TransformKind = "smooth"
	KindEmboss    TransformKind = "emboss"
	KindGreyscale TransformKind = "greyscale"
)

// Kinds lists every transform in filter panel order.
var Kinds = []TransformKind{
	KindScan,
	KindRotate,
	KindFlip,
	KindCrop,
	KindSharpen,
	KindBlur,
	KindSmooth,
	KindEmboss,
	KindGreyscale,
}

type kindInfo struct {
	title       string
	description string
	ranges      []ParameterRange
}

var kindTable = map[TransformKind]kindInfo{
	KindScan: {
		title:       "Scan",
		description: "Converts to luminance, whitens everything above the threshold and enhances edges",
		ranges:      []ParameterRange{{Name: "threshold", Min: ScanThresholdMin, Max: ScanThresholdMax, Default: DefaultScanThreshold}},
	},
	KindRotate: {
		title:       "Rotate",
		description: "Rotates counter-clockwise about the centre, expanding the canvas with transparent pixels",
		ranges:      []ParameterRange{{Name: "angle", Min: RotateAngleMin, Max: RotateAngleMax, Default: 0.0}},
	},
	KindFlip: {
		title:       "Flip",
		description: "Mirrors the image left-right or top-bottom",
		ranges: []ParameterRange{{
			Name:    "axis",
			Options: []interface{}{AxisHorizontal, AxisVertical},
			Default: AxisHorizontal,
		}},
	},
	KindCrop: {
		title:       "Crop",
		description: "Cuts a percentage from each side; opposite sides must leave a positive span",
		ranges: []ParameterRange{
			{Name: "left", Min: 0.0, Max: 100.0, Default: 0.0},
			{Name: "top", Min: 0.0, Max: 100.0, Default: 0.0},
			{Name: "right", Min: 0.0, Max: 100.0, Default: 0.0},
			{Name: "bottom", Min: 0.0, Max: 100.0, Default: 0.0},
		},
	},
	KindSharpen: {
		title:       "Sharpen",
		description: "Applies a fixed sharpening kernel",
	},
	KindBlur: {
		title:       "Blur",
		description: "Gaussian blur with radius 1 + 2*intensity",
		ranges:      []ParameterRange{{Name: "intensity", Min: BlurIntensityMin, Max: BlurIntensityMax, Default: BlurIntensityMin}},
	},
	KindSmooth: {
		title:       "Smooth",
		description: "Applies a fixed smoothing kernel intensity times",
		ranges:      []ParameterRange{{Name: "intensity", Min: SmoothIntensityMin, Max: SmoothIntensityMax, Default: SmoothIntensityMin}},
	},
	KindEmboss: {
		title:       "Emboss",
		description: "Embosses the luminance channel",
	},
	KindGreyscale: {
		title:       "Greyscale",
		description: "Converts to luminance with opaque alpha",
	},
}

// ParameterRange describes the domain and default of one parameter
type ParameterRange struct {
	Name    string
	Min     interface{}
	Max     interface{}
	Options []interface{}
	Default interface{}
}

// Domain renders the range for listings
func (pr ParameterRange) Domain() string {
	if len(pr.Options) > 0 {
		return fmt.Sprint(pr.Options)
	}
	return fmt.Sprintf("%v..%v", pr.Min, pr.Max)
}

// ParseKind resolves a kind name
func ParseKind(name string) (TransformKind, error) {
	kind := TransformKind(name)
	if !kind.Valid() {
		return "", fmt.Errorf("unknown filter kind %q", name)
	}
	return kind, nil
}

func (k TransformKind) Valid() bool {
	_, ok := kindTable[k]
	return ok
}

func (k TransformKind) Title() string {
	return kindTable[k].title
}

func (k TransformKind) Description() string {
	return kindTable[k].description
}

// Parameters returns the parameter domains of the kind, nil for parameterless kinds.
func (k TransformKind) Parameters() []ParameterRange {
	return kindTable[k].ranges
}

// FlipAxis selects the mirror axis. Exactly one axis is active at a time.
type FlipAxis string

const (
	AxisHorizontal FlipAxis = "horizontal"
	AxisVertical   FlipAxis = "vertical"
)

const (
	ScanThresholdMin     = 0
	ScanThresholdMax     = 255
	DefaultScanThreshold = 200

	RotateAngleMin = -360.0
	RotateAngleMax = 360.0

	BlurIntensityMin = 0
	BlurIntensityMax = 7

	SmoothIntensityMin = 1
	SmoothIntensityMax = 5
)

// ParameterSet is the kind-specific payload of a FilterDescriptor.
type ParameterSet interface {
	Kind() TransformKind
	Validate() error
}

type ScanParams struct {
	Threshold int
}

func (ScanParams) Kind() TransformKind { return KindScan }

func (p ScanParams) Validate() error {
	if p.Threshold < ScanThresholdMin || p.Threshold > ScanThresholdMax {
		return NewParameterError(KindScan, "threshold", p.Threshold, "range 0..255")
	}
	return nil
}

type RotateParams struct {
	Angle float64
}

func (RotateParams) Kind() TransformKind { return KindRotate }

func (p RotateParams) Validate() error {
	if math.IsNaN(p.Angle) || p.Angle < RotateAngleMin || p.Angle > RotateAngleMax {
		return NewParameterError(KindRotate, "angle", p.Angle, "range -360..360")
	}
	return nil
}

// RotateLeft is the quarter turn counter-clockwise preset
func RotateLeft() RotateParams { return RotateParams{Angle: 90} }

// RotateRight is the quarter turn clockwise preset
func RotateRight() RotateParams { return RotateParams{Angle: -90} }

type FlipParams struct {
	Axis FlipAxis
}

func (FlipParams) Kind() TransformKind { return KindFlip }

func (p FlipParams) Validate() error {
	switch p.Axis {
	case AxisHorizontal, AxisVertical:
		return nil
	}
	return NewParameterError(KindFlip, "axis", p.Axis, "one of horizontal, vertical")
}

// CropParams holds the percentage cut from each side.
type CropParams struct {
	Left   float64
	Top    float64
	Right  float64
	Bottom float64
}

func (CropParams) Kind() TransformKind { return KindCrop }

func (p CropParams) Validate() error {
	sides := []struct {
		name  string
		value float64
	}{
		{"left", p.Left},
		{"top", p.Top},
		{"right", p.Right},
		{"bottom", p.Bottom},
	}
	for _, s := range sides {
		if math.IsNaN(s.value) || s.value < 0 || s.value > 100 {
			return NewParameterError(KindCrop, s.name, s.value, "range 0..100")
		}
	}
	if p.Left+p.Right >= 100 {
		return NewParameterError(KindCrop, "left+right", p.Left+p.Right, "left + right < 100")
	}
	if p.Top+p.Bottom >= 100 {
		return NewParameterError(KindCrop, "top+bottom", p.Top+p.Bottom, "top + bottom < 100")
	}
	return nil
}

// MaxLeft is the largest value left may take with the current right. The
// bound itself is excluded by Validate.
func (p CropParams) MaxLeft() float64 { return 100 - p.Right }

func (p CropParams) MaxRight() float64 { return 100 - p.Left }

func (p CropParams) MaxTop() float64 { return 100 - p.Bottom }

func (p CropParams) MaxBottom() float64 { return 100 - p.Top }

type SharpenParams struct{}

func (SharpenParams) Kind() TransformKind { return KindSharpen }
func (SharpenParams) Validate() error     { return nil }

type BlurParams struct {
	Intensity int
}

func (BlurParams) Kind() TransformKind { return KindBlur }

func (p BlurParams) Validate() error {
	if p.Intensity < BlurIntensityMin || p.Intensity > BlurIntensityMax {
		return NewParameterError(KindBlur, "intensity", p.Intensity, "range 0..7")
	}
	return nil
}

// Radius is the Gaussian radius used for the intensity: 1 + 2*intensity.
func (p BlurParams) Radius() float64 {
	return float64(1 + 2*p.Intensity)
}

type SmoothParams struct {
	Intensity int
}

func (SmoothParams) Kind() TransformKind { return KindSmooth }

func (p SmoothParams) Validate() error {
	if p.Intensity < SmoothIntensityMin || p.Intensity > SmoothIntensityMax {
		return NewParameterError(KindSmooth, "intensity", p.Intensity, "range 1..5")
	}
	return nil
}

type EmbossParams struct{}

func (EmbossParams) Kind() TransformKind { return KindEmboss }
func (EmbossParams) Validate() error     { return nil }

type GreyscaleParams struct{}

func (GreyscaleParams) Kind() TransformKind { return KindGreyscale }
func (GreyscaleParams) Validate() error     { return nil }

// DefaultParams returns the default parameter set for a kind
func DefaultParams(kind TransformKind) (ParameterSet, error) {
	switch kind {
	case KindScan:
		return ScanParams{Threshold: DefaultScanThreshold}, nil
	case KindRotate:
		return RotateParams{}, nil
	case KindFlip:
		return FlipParams{Axis: AxisHorizontal}, nil
	case KindCrop:
		return CropParams{}, nil
	case KindSharpen:
		return SharpenParams{}, nil
	case KindBlur:
		return BlurParams{Intensity: BlurIntensityMin}, nil
	case KindSmooth:
		return SmoothParams{Intensity: SmoothIntensityMin}, nil
	case KindEmboss:
		return EmbossParams{}, nil
	case KindGreyscale:
		return GreyscaleParams{}, nil
	}
	return nil, fmt.Errorf("unknown filter kind %q", kind)
}
