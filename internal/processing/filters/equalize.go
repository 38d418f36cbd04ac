package filters

import (
	apperrors "image-enhancer/internal/errors"
	"image-enhancer/internal/models"
	"image-enhancer/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// EqualizeFilter converts to gray and spreads the intensity histogram,
// either over the whole image or tile by tile without clipping.
type EqualizeFilter struct {
	Mode models.EqualizationMode
}

func NewEqualizeFilter(mode models.EqualizationMode) *EqualizeFilter {
	return &EqualizeFilter{Mode: mode}
}

func (e *EqualizeFilter) Name() string {
	return "equalize_" + e.Mode.String()
}

func (e *EqualizeFilter) Validate() error {
	switch e.Mode {
	case models.EqualizationGlobal, models.EqualizationAdaptive:
		return nil
	default:
		return apperrors.NewInvalidParameter("equalization_mode", "unknown mode %d", int(e.Mode))
	}
}

func (e *EqualizeFilter) Apply(input *safe.Mat) (*safe.Mat, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}

	gray, err := ConvertToGrayscale(input)
	if err != nil {
		return nil, err
	}

	if isFlat(gray.GetMat()) {
		return gray, nil
	}
	defer gray.Close()

	if e.Mode == models.EqualizationAdaptive {
		return NewCLAHEFilter(0, DefaultCLAHEGrid).Apply(gray)
	}

	return run(e.Name(), gray, func(src gocv.Mat, dst *gocv.Mat) {
		gocv.EqualizeHist(src, dst)
	})
}
