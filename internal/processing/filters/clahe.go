package filters

import (
	"image"

	apperrors "image-enhancer/internal/errors"
	"image-enhancer/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// DefaultCLAHEGrid is used when CLAHEFilter.Grid is zero.
var DefaultCLAHEGrid = image.Point{X: 8, Y: 8}

// CLAHEFilter applies contrast-limited adaptive histogram equalization.
// Colour input is processed on the L channel of Lab so hue is preserved.
type CLAHEFilter struct {
	ClipLimit float64
	Grid      image.Point
}

func NewCLAHEFilter(clipLimit float64, grid image.Point) *CLAHEFilter {
	return &CLAHEFilter{ClipLimit: clipLimit, Grid: grid}
}

func (c *CLAHEFilter) Name() string {
	return "clahe"
}

func (c *CLAHEFilter) Validate() error {
	if c.ClipLimit < 0 || !isFinite(c.ClipLimit) {
		return apperrors.NewInvalidParameter("contrast_strength", "must be a finite value >= 0, got %g", c.ClipLimit)
	}
	if c.Grid == (image.Point{}) {
		return nil
	}
	if c.Grid.X < 1 || c.Grid.Y < 1 {
		return apperrors.NewInvalidParameter("grid", "tile grid must be at least 1x1, got %dx%d", c.Grid.X, c.Grid.Y)
	}
	return nil
}

func (c *CLAHEFilter) grid() image.Point {
	if c.Grid == (image.Point{}) {
		return DefaultCLAHEGrid
	}
	return c.Grid
}

func (c *CLAHEFilter) Apply(input *safe.Mat) (*safe.Mat, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := safe.ValidateMatForOperation(input, c.Name()); err != nil {
		return nil, err
	}

	switch input.Channels() {
	case 1:
		if isFlat(input.GetMat()) {
			return input.Clone()
		}
		return run(c.Name(), input, c.equalize)
	case 3:
		return c.applyLab(input)
	default:
		return nil, apperrors.NewInvalidParameter("image", "CLAHE needs 1 or 3 channels, got %d", input.Channels())
	}
}

func (c *CLAHEFilter) equalize(src gocv.Mat, dst *gocv.Mat) {
	clahe := gocv.NewCLAHEWithParams(c.ClipLimit, c.grid())
	defer clahe.Close()

	clahe.Apply(src, dst)
}

func (c *CLAHEFilter) applyLab(input *safe.Mat) (*safe.Mat, error) {
	if err := safe.ValidateColorConversion(input, gocv.ColorBGRToLab); err != nil {
		return nil, err
	}

	lab := gocv.NewMat()
	defer lab.Close()
	gocv.CvtColor(input.GetMat(), &lab, gocv.ColorBGRToLab)
	if lab.Empty() {
		return nil, apperrors.NewProcessingError("BGR to Lab conversion produced no output", nil)
	}

	channels := gocv.Split(lab)
	defer func() {
		for i := range channels {
			channels[i].Close()
		}
	}()
	if len(channels) != 3 {
		return nil, apperrors.NewProcessingError("Lab split did not yield 3 channels", nil)
	}

	if isFlat(channels[0]) {
		return input.Clone()
	}

	lightness := gocv.NewMat()
	c.equalize(channels[0], &lightness)
	if lightness.Empty() {
		lightness.Close()
		return nil, apperrors.NewProcessingError("CLAHE produced no output", nil)
	}
	channels[0].Close()
	channels[0] = lightness

	merged := gocv.NewMat()
	defer merged.Close()
	gocv.Merge(channels, &merged)
	if merged.Empty() {
		return nil, apperrors.NewProcessingError("Lab merge produced no output", nil)
	}

	dst := gocv.NewMat()
	gocv.CvtColor(merged, &dst, gocv.ColorLabToBGR)

	result, err := safe.Adopt(dst)
	if err != nil {
		return nil, apperrors.NewProcessingError("Lab to BGR conversion produced no output", err)
	}
	return result, nil
}

// isFlat reports whether a single-channel Mat holds one value only.
func isFlat(m gocv.Mat) bool {
	minVal, maxVal, _, _ := gocv.MinMaxLoc(m)
	return minVal == maxVal
}
