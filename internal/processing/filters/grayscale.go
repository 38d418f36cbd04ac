package filters

import (
	apperrors "image-enhancer/internal/errors"
	"image-enhancer/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// GrayscaleConverter produces a single-channel copy of its input.
type GrayscaleConverter struct{}

func NewGrayscaleConverter() *GrayscaleConverter {
	return &GrayscaleConverter{}
}

func (g *GrayscaleConverter) Name() string {
	return "grayscale"
}

func (g *GrayscaleConverter) Validate() error {
	return nil
}

// Apply clones gray input and converts BGR or BGRA input.
func (g *GrayscaleConverter) Apply(input *safe.Mat) (*safe.Mat, error) {
	if err := safe.ValidateMatForOperation(input, g.Name()); err != nil {
		return nil, err
	}

	var code gocv.ColorConversionCode
	switch input.Channels() {
	case 1:
		return input.Clone()
	case 3:
		code = gocv.ColorBGRToGray
	case 4:
		code = gocv.ColorBGRAToGray
	default:
		return nil, apperrors.NewInvalidParameter("image", "unsupported channel count for grayscale conversion: %d", input.Channels())
	}

	return run(g.Name(), input, func(src gocv.Mat, dst *gocv.Mat) {
		gocv.CvtColor(src, dst, code)
	})
}

// ConvertToGrayscale is a shorthand for NewGrayscaleConverter().Apply.
func ConvertToGrayscale(src *safe.Mat) (*safe.Mat, error) {
	return NewGrayscaleConverter().Apply(src)
}
