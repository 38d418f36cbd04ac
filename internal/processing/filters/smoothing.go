package filters

import (
	"image"

	apperrors "image-enhancer/internal/errors"
	"image-enhancer/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// MeanFilter smooths by uniform neighbourhood averaging.
type MeanFilter struct {
	KernelSize image.Point
}

func NewMeanFilter(kernelSize image.Point) *MeanFilter {
	return &MeanFilter{KernelSize: kernelSize}
}

func (m *MeanFilter) Name() string {
	return "mean_blur"
}

func (m *MeanFilter) Validate() error {
	if m.KernelSize.X <= 0 || m.KernelSize.Y <= 0 {
		return apperrors.NewInvalidParameter("kernel_size", "mean blur kernel must be positive, got %dx%d", m.KernelSize.X, m.KernelSize.Y)
	}
	return nil
}

func (m *MeanFilter) Apply(input *safe.Mat) (*safe.Mat, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	return run(m.Name(), input, func(src gocv.Mat, dst *gocv.Mat) {
		gocv.Blur(src, dst, m.KernelSize)
	})
}

// GaussianFilter smooths with a Gaussian-weighted neighbourhood. A zero
// Sigma is derived from the kernel size; a zero kernel is derived from Sigma.
type GaussianFilter struct {
	KernelSize image.Point
	Sigma      float64
}

func NewGaussianFilter(kernelSize image.Point, sigma float64) *GaussianFilter {
	return &GaussianFilter{KernelSize: kernelSize, Sigma: sigma}
}

func (g *GaussianFilter) Name() string {
	return "gaussian_blur"
}

func (g *GaussianFilter) Validate() error {
	if g.Sigma < 0 || !isFinite(g.Sigma) {
		return apperrors.NewInvalidParameter("sigma", "must be a finite value >= 0, got %g", g.Sigma)
	}

	kx, ky := g.KernelSize.X, g.KernelSize.Y
	if kx == 0 && ky == 0 {
		if g.Sigma == 0 {
			return apperrors.NewInvalidParameter("kernel_size", "zero kernel requires a positive sigma")
		}
		return nil
	}

	if !isOddPositive(kx) || !isOddPositive(ky) {
		return apperrors.NewInvalidParameter("kernel_size", "gaussian kernel must be odd and positive, got %dx%d", kx, ky)
	}
	return nil
}

func (g *GaussianFilter) Apply(input *safe.Mat) (*safe.Mat, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}

	return run(g.Name(), input, func(src gocv.Mat, dst *gocv.Mat) {
		gocv.GaussianBlur(src, dst, g.KernelSize, g.Sigma, g.Sigma, gocv.BorderDefault)
	})
}

// MedianFilter replaces each pixel with the median of its square neighbourhood.
type MedianFilter struct {
	KernelSize int
}

func NewMedianFilter(kernelSize int) *MedianFilter {
	return &MedianFilter{KernelSize: kernelSize}
}

func (m *MedianFilter) Name() string {
	return "median_blur"
}

func (m *MedianFilter) Validate() error {
	if m.KernelSize <= 1 || !isOddPositive(m.KernelSize) {
		return apperrors.NewInvalidParameter("kernel_size", "median kernel must be odd and greater than 1, got %d", m.KernelSize)
	}
	return nil
}

func (m *MedianFilter) Apply(input *safe.Mat) (*safe.Mat, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	return run(m.Name(), input, func(src gocv.Mat, dst *gocv.Mat) {
		gocv.MedianBlur(src, dst, m.KernelSize)
	})
}

// BilateralFilter is edge-preserving smoothing weighted by both spatial
// distance (SigmaSpace) and intensity difference (SigmaColor).
type BilateralFilter struct {
	Diameter   int
	SigmaColor float64
	SigmaSpace float64
}

func NewBilateralFilter(diameter int, sigmaColor, sigmaSpace float64) *BilateralFilter {
	return &BilateralFilter{Diameter: diameter, SigmaColor: sigmaColor, SigmaSpace: sigmaSpace}
}

func (b *BilateralFilter) Name() string {
	return "bilateral_filter"
}

func (b *BilateralFilter) Validate() error {
	if b.Diameter <= 0 {
		return apperrors.NewInvalidParameter("diameter", "must be positive, got %d", b.Diameter)
	}
	if b.SigmaColor <= 0 || !isFinite(b.SigmaColor) {
		return apperrors.NewInvalidParameter("sigma_color", "must be finite and positive, got %g", b.SigmaColor)
	}
	if b.SigmaSpace <= 0 || !isFinite(b.SigmaSpace) {
		return apperrors.NewInvalidParameter("sigma_space", "must be finite and positive, got %g", b.SigmaSpace)
	}
	return nil
}

func (b *BilateralFilter) Apply(input *safe.Mat) (*safe.Mat, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	// OpenCV's bilateral filter supports 1 and 3 channel 8-bit images only.
	if err := safe.ValidateMatForOperation(input, b.Name()); err != nil {
		return nil, err
	}
	if ch := input.Channels(); ch != 1 && ch != 3 {
		return nil, apperrors.NewInvalidParameter("image", "bilateral filter needs 1 or 3 channels, got %d", ch)
	}

	return run(b.Name(), input, func(src gocv.Mat, dst *gocv.Mat) {
		gocv.BilateralFilter(src, dst, b.Diameter, b.SigmaColor, b.SigmaSpace)
	})
}
