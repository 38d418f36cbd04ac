package filters

import (
	"image"

	apperrors "image-enhancer/internal/errors"
	"image-enhancer/internal/models"
	"image-enhancer/internal/opencv/safe"

	"gocv.io/x/gocv"
)

func squareKernel(size int) gocv.Mat {
	return gocv.GetStructuringElement(gocv.MorphRect, image.Point{X: size, Y: size})
}

func validateMorphology(kernelSize, iterations int) error {
	if kernelSize < 1 {
		return apperrors.NewInvalidParameter("kernel_size", "structuring element must be >= 1, got %d", kernelSize)
	}
	if iterations < 1 {
		return apperrors.NewInvalidParameter("iterations", "must be >= 1, got %d", iterations)
	}
	return nil
}

// iterate applies step repeatedly, releasing every intermediate buffer.
func iterate(src gocv.Mat, dst *gocv.Mat, kernel gocv.Mat, iterations int, step func(src gocv.Mat, dst *gocv.Mat, kernel gocv.Mat)) {
	step(src, dst, kernel)

	for i := 1; i < iterations; i++ {
		if dst.Empty() {
			return
		}
		next := gocv.NewMat()
		step(*dst, &next, kernel)
		dst.Close()
		*dst = next
	}
}

// ErodeFilter shrinks bright regions with a square structuring element.
type ErodeFilter struct {
	KernelSize int
	Iterations int
}

func NewErodeFilter(kernelSize, iterations int) *ErodeFilter {
	return &ErodeFilter{KernelSize: kernelSize, Iterations: iterations}
}

func (e *ErodeFilter) Name() string {
	return "erode"
}

func (e *ErodeFilter) Validate() error {
	return validateMorphology(e.KernelSize, e.Iterations)
}

func (e *ErodeFilter) Apply(input *safe.Mat) (*safe.Mat, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}

	kernel := squareKernel(e.KernelSize)
	defer kernel.Close()

	return run(e.Name(), input, func(src gocv.Mat, dst *gocv.Mat) {
		iterate(src, dst, kernel, e.Iterations, func(s gocv.Mat, d *gocv.Mat, k gocv.Mat) {
			gocv.Erode(s, d, k)
		})
	})
}

// DilateFilter grows bright regions with a square structuring element.
type DilateFilter struct {
	KernelSize int
	Iterations int
}

func NewDilateFilter(kernelSize, iterations int) *DilateFilter {
	return &DilateFilter{KernelSize: kernelSize, Iterations: iterations}
}

func (d *DilateFilter) Name() string {
	return "dilate"
}

func (d *DilateFilter) Validate() error {
	return validateMorphology(d.KernelSize, d.Iterations)
}

func (d *DilateFilter) Apply(input *safe.Mat) (*safe.Mat, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	kernel := squareKernel(d.KernelSize)
	defer kernel.Close()

	return run(d.Name(), input, func(src gocv.Mat, dst *gocv.Mat) {
		iterate(src, dst, kernel, d.Iterations, func(s gocv.Mat, out *gocv.Mat, k gocv.Mat) {
			gocv.Dilate(s, out, k)
		})
	})
}

// MorphologyFilter removes binary noise: opening drops isolated bright
// pixels, closing fills isolated dark ones.
type MorphologyFilter struct {
	KernelSize int
	Mode       models.MorphologyMode
}

func NewMorphologyFilter(kernelSize int, mode models.MorphologyMode) *MorphologyFilter {
	return &MorphologyFilter{KernelSize: kernelSize, Mode: mode}
}

func (m *MorphologyFilter) Name() string {
	return "binary_noise_" + m.Mode.String()
}

func (m *MorphologyFilter) Validate() error {
	if err := validateMorphology(m.KernelSize, 1); err != nil {
		return err
	}
	if _, err := m.operation(); err != nil {
		return err
	}
	return nil
}

func (m *MorphologyFilter) operation() (gocv.MorphType, error) {
	switch m.Mode {
	case models.MorphologyOpening:
		return gocv.MorphOpen, nil
	case models.MorphologyClosing:
		return gocv.MorphClose, nil
	default:
		return 0, apperrors.NewInvalidParameter("morphology_mode", "unknown mode %d", int(m.Mode))
	}
}

func (m *MorphologyFilter) Apply(input *safe.Mat) (*safe.Mat, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	op, _ := m.operation()

	kernel := squareKernel(m.KernelSize)
	defer kernel.Close()

	return run(m.Name(), input, func(src gocv.Mat, dst *gocv.Mat) {
		gocv.MorphologyEx(src, dst, op, kernel)
	})
}
