package pipeline

import (
	"fmt"
	"image"
	"time"

	apperrors "image-enhancer/internal/errors"
	"image-enhancer/internal/logger"
	"image-enhancer/internal/metrics"
	"image-enhancer/internal/models"
	"image-enhancer/internal/opencv/safe"
	"image-enhancer/internal/processing/chain"
	"image-enhancer/internal/processing/filters"
)

type Option func(*Processor)

func WithLogger(l logger.Logger) Option {
	return func(p *Processor) {
		if l != nil {
			p.logger = l
		}
	}
}

func WithRecorder(r metrics.Recorder) Option {
	return func(p *Processor) {
		if r != nil {
			p.recorder = r
		}
	}
}

// Processor holds one image and one configuration. Every operation takes an
// optional override as its first argument; nil selects the held image.
// Results are new Mats owned by the caller. A Processor is not safe for
// concurrent use.
type Processor struct {
	image    *safe.Mat
	config   models.PipelineConfiguration
	logger   logger.Logger
	recorder metrics.Recorder
}

// NewProcessor takes ownership of img, which may be nil.
func NewProcessor(img *safe.Mat, cfg models.PipelineConfiguration, opts ...Option) *Processor {
	p := &Processor{
		image:    img,
		config:   cfg,
		logger:   logger.Nop(),
		recorder: metrics.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Processor) Image() *safe.Mat {
	return p.image
}

func (p *Processor) Configuration() models.PipelineConfiguration {
	return p.config
}

// Close releases the held image.
func (p *Processor) Close() {
	if p.image != nil {
		p.image.Close()
		p.image = nil
	}
}

func (p *Processor) resolve(src *safe.Mat, operation string) (*safe.Mat, error) {
	if src != nil {
		return src, nil
	}
	if p.image == nil {
		return nil, apperrors.NewMissingImage(operation)
	}
	return p.image, nil
}

func (p *Processor) apply(f filters.Filter, src *safe.Mat) (*safe.Mat, error) {
	name := f.Name()
	start := time.Now()

	result, err := p.applyFilter(f, src)

	elapsed := time.Since(start)
	p.recorder.ObserveOperation(name, elapsed, err)

	if err != nil {
		p.logger.Error("Processor", err, map[string]interface{}{
			"operation": name,
		})
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	p.logger.Debug("Processor", "operation completed", map[string]interface{}{
		"operation":   name,
		"duration_ms": elapsed.Milliseconds(),
		"width":       result.Cols(),
		"height":      result.Rows(),
		"channels":    result.Channels(),
	})

	return result, nil
}

func (p *Processor) applyFilter(f filters.Filter, src *safe.Mat) (*safe.Mat, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	input, err := p.resolve(src, f.Name())
	if err != nil {
		return nil, err
	}

	p.logger.Debug("Processor", "operation started", map[string]interface{}{
		"operation": f.Name(),
		"width":     input.Cols(),
		"height":    input.Rows(),
	})

	return f.Apply(input)
}

func (p *Processor) MeanBlur(src *safe.Mat, ksize image.Point) (*safe.Mat, error) {
	return p.apply(filters.NewMeanFilter(ksize), src)
}

func (p *Processor) GaussianBlur(src *safe.Mat, ksize image.Point, sigma float64) (*safe.Mat, error) {
	return p.apply(filters.NewGaussianFilter(ksize, sigma), src)
}

// MedianBlur uses the configured common denoise kernel.
func (p *Processor) MedianBlur(src *safe.Mat) (*safe.Mat, error) {
	return p.MedianBlurWithKernel(src, p.config.DenoiseKernelCommon())
}

func (p *Processor) MedianBlurWithKernel(src *safe.Mat, ksize int) (*safe.Mat, error) {
	return p.apply(filters.NewMedianFilter(ksize), src)
}

func (p *Processor) BilateralFilter(src *safe.Mat, diameter int, sigmaColor, sigmaSpace float64) (*safe.Mat, error) {
	return p.apply(filters.NewBilateralFilter(diameter, sigmaColor, sigmaSpace), src)
}

func (p *Processor) Erode(src *safe.Mat, iterations int) (*safe.Mat, error) {
	return p.apply(filters.NewErodeFilter(p.config.DenoiseKernelBinary(), iterations), src)
}

func (p *Processor) Dilate(src *safe.Mat, iterations int) (*safe.Mat, error) {
	return p.apply(filters.NewDilateFilter(p.config.DenoiseKernelBinary(), iterations), src)
}

// RemoveBinaryNoise opens or closes according to the configured morphology mode.
func (p *Processor) RemoveBinaryNoise(src *safe.Mat) (*safe.Mat, error) {
	return p.apply(filters.NewMorphologyFilter(p.config.DenoiseKernelBinary(), p.config.MorphologyMode()), src)
}

// AdaptiveContrast applies CLAHE clipped at the configured contrast strength.
// A zero grid selects the default 8x8 tiling.
func (p *Processor) AdaptiveContrast(src *safe.Mat, grid image.Point) (*safe.Mat, error) {
	return p.apply(filters.NewCLAHEFilter(p.config.ContrastStrength(), grid), src)
}

// Equalize returns a grayscale, histogram-equalized copy.
func (p *Processor) Equalize(src *safe.Mat) (*safe.Mat, error) {
	return p.apply(filters.NewEqualizeFilter(p.config.EqualizationMode()), src)
}

func (p *Processor) Grayscale(src *safe.Mat) (*safe.Mat, error) {
	return p.apply(filters.NewGrayscaleConverter(), src)
}

// filterFor maps an operation to its filter with configuration-derived defaults.
func (p *Processor) filterFor(op Operation) (filters.Filter, error) {
	k := p.config.DenoiseKernelCommon()
	binary := p.config.DenoiseKernelBinary()

	switch op {
	case OpMedianBlur:
		return filters.NewMedianFilter(k), nil
	case OpMeanBlur:
		return filters.NewMeanFilter(image.Pt(k, k)), nil
	case OpGaussianBlur:
		return filters.NewGaussianFilter(image.Pt(k, k), 0), nil
	case OpBilateral:
		return filters.NewBilateralFilter(DefaultBilateralDiameter, DefaultBilateralSigmaColor, DefaultBilateralSigmaSpace), nil
	case OpErode:
		return filters.NewErodeFilter(binary, DefaultIterations), nil
	case OpDilate:
		return filters.NewDilateFilter(binary, DefaultIterations), nil
	case OpBinaryNoise:
		return filters.NewMorphologyFilter(binary, p.config.MorphologyMode()), nil
	case OpAdaptiveContrast:
		return filters.NewCLAHEFilter(p.config.ContrastStrength(), image.Point{}), nil
	case OpEqualize:
		return filters.NewEqualizeFilter(p.config.EqualizationMode()), nil
	default:
		return nil, apperrors.NewInvalidParameter("operation", "unknown operation %d", int(op))
	}
}

// Run applies op with the defaults the shells use.
func (p *Processor) Run(op Operation, src *safe.Mat) (*safe.Mat, error) {
	f, err := p.filterFor(op)
	if err != nil {
		return nil, err
	}
	return p.apply(f, src)
}

// RunChain applies ops in order, each on the previous result. Every step is
// validated before any pixels are touched.
func (p *Processor) RunChain(ops []Operation, src *safe.Mat) (*safe.Mat, error) {
	if len(ops) == 0 {
		return nil, apperrors.NewInvalidParameter("operations", "at least one operation is required")
	}

	pc := chain.NewProcessingChain(nil)
	for _, op := range ops {
		f, err := p.filterFor(op)
		if err != nil {
			return nil, err
		}
		pc.AddStep(f)
	}

	input, err := p.resolve(src, "chain")
	if err != nil {
		return nil, err
	}

	pc.SetObserver(func(step string, elapsed time.Duration, err error) {
		p.recorder.ObserveOperation(step, elapsed, err)
	})

	result, err := pc.Execute(input)
	if err != nil {
		p.logger.Error("Processor", err, map[string]interface{}{
			"operations": pc.GetStepNames(),
		})
		return nil, err
	}

	p.logger.Debug("Processor", "chain completed", map[string]interface{}{
		"operations": pc.GetStepNames(),
	})

	return result, nil
}
