package filters

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"mass-image-editor/internal/models"
	"mass-image-editor/internal/opencv/conversion"
	"mass-image-editor/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// Rotate turns the image counter-clockwise by angle degrees about its
// centre. The canvas grows to hold every source pixel; exposed area is
// transparent. Quarter turns are exact.
func Rotate(src *safe.Mat, angle float64) (*safe.Mat, error) {
	if err := (models.RotateParams{Angle: angle}).Validate(); err != nil {
		return nil, err
	}

	working, err := conversion.ToRGBA(src)
	if err != nil {
		return nil, err
	}
	defer working.Close()

	turn := math.Mod(angle, 360)
	if turn < 0 {
		turn += 360
	}

	switch turn {
	case 0:
		return working.Clone()
	case 90:
		return quarterTurn(working, gocv.Rotate90CounterClockwise)
	case 180:
		return quarterTurn(working, gocv.Rotate180Clockwise)
	case 270:
		return quarterTurn(working, gocv.Rotate90Clockwise)
	}

	return rotateExpanded(working, turn)
}

func quarterTurn(src *safe.Mat, flag gocv.RotateFlag) (*safe.Mat, error) {
	dst := gocv.NewMat()
	if err := gocv.Rotate(src.GetMat(), &dst, flag); err != nil {
		dst.Close()
		return nil, fmt.Errorf("rotate failed: %w", err)
	}
	return safe.Own(dst, "rotate")
}

// RotatedSize returns the canvas size needed to hold a width x height image
// rotated by angle degrees.
func RotatedSize(width, height int, angle float64) (int, int) {
	rad := angle * math.Pi / 180
	cos, sin := math.Abs(math.Cos(rad)), math.Abs(math.Sin(rad))
	w, h := float64(width), float64(height)

	// Trim float noise so exact fits do not gain a column.
	newW := int(math.Ceil(w*cos + h*sin - 1e-9))
	newH := int(math.Ceil(w*sin + h*cos - 1e-9))
	return max(newW, 1), max(newH, 1)
}

func rotateExpanded(src *safe.Mat, angle float64) (*safe.Mat, error) {
	cols, rows := src.Cols(), src.Rows()
	newW, newH := RotatedSize(cols, rows, angle)
	if err := safe.ValidateDimensions(newW, newH, "rotate"); err != nil {
		return nil, err
	}

	rad := angle * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	cx, cy := float64(cols)/2, float64(rows)/2

	// Rotation about the source centre, translated onto the new centre.
	m := gocv.NewMatWithSize(2, 3, gocv.MatTypeCV64F)
	defer m.Close()
	m.SetDoubleAt(0, 0, cos)
	m.SetDoubleAt(0, 1, sin)
	m.SetDoubleAt(0, 2, (1-cos)*cx-sin*cy+float64(newW)/2-cx)
	m.SetDoubleAt(1, 0, -sin)
	m.SetDoubleAt(1, 1, cos)
	m.SetDoubleAt(1, 2, sin*cx+(1-cos)*cy+float64(newH)/2-cy)

	dst := gocv.NewMat()
	err := gocv.WarpAffineWithParams(src.GetMat(), &dst, m, image.Point{X: newW, Y: newH},
		gocv.InterpolationNearestNeighbor, gocv.BorderConstant, color.RGBA{})
	if err != nil {
		dst.Close()
		return nil, fmt.Errorf("rotate warp failed: %w", err)
	}

	return safe.Own(dst, "rotate")
}

// Flip mirrors left-right for the horizontal axis and top-bottom for the
// vertical axis.
func Flip(src *safe.Mat, axis models.FlipAxis) (*safe.Mat, error) {
	if err := (models.FlipParams{Axis: axis}).Validate(); err != nil {
		return nil, err
	}

	working, err := conversion.ToRGBA(src)
	if err != nil {
		return nil, err
	}
	defer working.Close()

	flipCode := 1
	if axis == models.AxisVertical {
		flipCode = 0
	}

	dst := gocv.NewMat()
	if err := gocv.Flip(working.GetMat(), &dst, flipCode); err != nil {
		dst.Close()
		return nil, fmt.Errorf("flip failed: %w", err)
	}
	return safe.Own(dst, "flip")
}

// CropBox returns the pixel box [x0,x1) x [y0,y1) kept by p on a
// width x height image.
func CropBox(width, height int, p models.CropParams) image.Rectangle {
	w, h := float64(width), float64(height)

	// Built as a literal: image.Rect would silently swap inverted corners.
	return image.Rectangle{
		Min: image.Point{X: int(math.Floor(w * p.Left / 100)), Y: int(math.Floor(h * p.Top / 100))},
		Max: image.Point{X: int(math.Floor(w * (1 - p.Right/100))), Y: int(math.Floor(h * (1 - p.Bottom/100)))},
	}
}

// Crop keeps the sub-image left after cutting the given percentages from
// each side. A box with no area is rejected, never returned.
func Crop(src *safe.Mat, p models.CropParams) (*safe.Mat, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	if err := safe.ValidateMatForOperation(src, "crop"); err != nil {
		return nil, err
	}

	box := CropBox(src.Cols(), src.Rows(), p)
	if box.Dx() <= 0 || box.Dy() <= 0 {
		return nil, models.NewParameterError(models.KindCrop, "box",
			fmt.Sprintf("%v of %dx%d", box, src.Cols(), src.Rows()), "non-empty pixel box")
	}

	working, err := conversion.ToRGBA(src)
	if err != nil {
		return nil, err
	}
	defer working.Close()

	return working.Region(box)
}
