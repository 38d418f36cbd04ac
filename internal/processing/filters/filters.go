package filters

import (
	"math"

	apperrors "image-enhancer/internal/errors"
	"image-enhancer/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// Filter is a single pixel transformation. Apply never mutates input and
// always returns a newly allocated Mat owned by the caller.
type Filter interface {
	Name() string
	Validate() error
	Apply(input *safe.Mat) (*safe.Mat, error)
}

// run validates the input, lets fn write into a fresh destination and wraps the result.
func run(name string, input *safe.Mat, fn func(src gocv.Mat, dst *gocv.Mat)) (*safe.Mat, error) {
	if err := safe.ValidateMatForOperation(input, name); err != nil {
		return nil, err
	}

	dst := gocv.NewMat()
	fn(input.GetMat(), &dst)

	result, err := safe.Adopt(dst)
	if err != nil {
		return nil, apperrors.NewProcessingError(name+" produced no output", err)
	}

	return result, nil
}

func isOddPositive(v int) bool {
	return v > 0 && v%2 == 1
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
