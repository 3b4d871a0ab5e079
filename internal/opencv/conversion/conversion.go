package conversion

import (
	"fmt"
	"image"
	"image/color"

	"mass-image-editor/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// WorkingType is the Mat type every transform returns: 8-bit RGBA,
// channels in R, G, B, A order, alpha not premultiplied.
const WorkingType = gocv.MatTypeCV8UC4

// Normalize copies img into the working color mode. The result never
// aliases img's pixel buffer.
func Normalize(img image.Image) (*image.NRGBA, error) {
	if img == nil {
		return nil, fmt.Errorf("input image is nil")
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if err := safe.ValidateDimensions(width, height, "normalize"); err != nil {
		return nil, err
	}

	dst := image.NewNRGBA(image.Rect(0, 0, width, height))

	switch typedImg := img.(type) {
	case *image.NRGBA:
		for y := 0; y < height; y++ {
			srcOff := typedImg.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(dst.Pix[y*dst.Stride:y*dst.Stride+width*4], typedImg.Pix[srcOff:srcOff+width*4])
		}
	case *image.Gray:
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				v := typedImg.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y
				i := dst.PixOffset(x, y)
				dst.Pix[i], dst.Pix[i+1], dst.Pix[i+2], dst.Pix[i+3] = v, v, v, 0xff
			}
		}
	default:
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
				dst.SetNRGBA(x, y, c)
			}
		}
	}

	return dst, nil
}

// ImageToMat converts a standard Go image into a working-mode Mat
func ImageToMat(img image.Image) (*safe.Mat, error) {
	normalized, err := Normalize(img)
	if err != nil {
		return nil, err
	}

	bounds := normalized.Bounds()
	mat, err := gocv.NewMatFromBytes(bounds.Dy(), bounds.Dx(), WorkingType, normalized.Pix)
	if err != nil {
		return nil, fmt.Errorf("failed to create Mat from pixels: %w", err)
	}
	defer mat.Close()

	// Clone so the Mat owns its memory instead of referencing the Go slice.
	return safe.NewMatFromMatWithTag(mat, "image")
}

// MatToImage converts a 1- or 4-channel Mat back to the working mode
func MatToImage(src *safe.Mat) (*image.NRGBA, error) {
	if err := safe.ValidateMatForOperation(src, "Mat to image conversion"); err != nil {
		return nil, err
	}

	working, err := ToRGBA(src)
	if err != nil {
		return nil, err
	}
	defer working.Close()

	data, err := working.Bytes()
	if err != nil {
		return nil, fmt.Errorf("pixel access failed: %w", err)
	}

	rows, cols := working.Rows(), working.Cols()
	if len(data) != rows*cols*4 {
		return nil, fmt.Errorf("unexpected pixel buffer size %d for %dx%d RGBA", len(data), cols, rows)
	}

	return &image.NRGBA{
		Pix:    data,
		Stride: cols * 4,
		Rect:   image.Rect(0, 0, cols, rows),
	}, nil
}

// ToGray converts to single-channel luminance (ITU-R 601-2 weights)
func ToGray(src *safe.Mat) (*safe.Mat, error) {
	if err := safe.ValidateMatForOperation(src, "grayscale conversion"); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var code gocv.ColorConversionCode
	switch src.Channels() {
	case 1:
		return src.Clone()
	case 3:
		code = gocv.ColorRGBToGray
	case 4:
		code = gocv.ColorRGBAToGray
	default:
		return nil, fmt.Errorf("unsupported channel count: %d", src.Channels())
	}

	return convert(src, code, "gray")
}

// ToRGBA converts to the working mode. Single-channel input is expanded with
// opaque alpha.
func ToRGBA(src *safe.Mat) (*safe.Mat, error) {
	if err := safe.ValidateMatForOperation(src, "RGBA conversion"); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var code gocv.ColorConversionCode
	switch src.Channels() {
	case 4:
		return src.Clone()
	case 3:
		code = gocv.ColorRGBToRGBA
	case 1:
		code = gocv.ColorGrayToRGBA
	default:
		return nil, fmt.Errorf("unsupported channel count: %d", src.Channels())
	}

	return convert(src, code, "rgba")
}

func convert(src *safe.Mat, code gocv.ColorConversionCode, tag string) (*safe.Mat, error) {
	if err := safe.ValidateColorConversion(src, code); err != nil {
		return nil, err
	}

	dst := gocv.NewMat()
	if err := gocv.CvtColor(src.GetMat(), &dst, code); err != nil {
		dst.Close()
		return nil, fmt.Errorf("color conversion failed: %w", err)
	}

	return safe.Own(dst, tag)
}
