package pipeline

import (
	"image"
	"testing"

	apperrors "image-enhancer/internal/errors"
	"image-enhancer/internal/models"
	"image-enhancer/internal/opencv/safe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeanBlurOnSolidGrayIsUnchanged(t *testing.T) {
	img := solidGray(t, 100, 100, 128)
	p := NewProcessor(img, models.DefaultPipelineConfiguration())
	defer p.Close()

	out, err := p.MeanBlur(nil, image.Pt(3, 3))
	require.NoError(t, err)
	defer out.Close()

	assert.Equal(t, 100, out.Rows())
	assert.Equal(t, 100, out.Cols())
	assert.True(t, allBytesEqual(out, 128))
}

func TestOpeningRemovesSingleSpeckle(t *testing.T) {
	img := solidGray(t, 20, 20, 0)
	require.NoError(t, img.SetUCharAt(10, 10, 255))

	p := NewProcessor(img, configWith(t, func(c *models.ConfigurationParams) {
		c.DenoiseKernelBinary = 3
		c.MorphologyMode = models.MorphologyOpening
	}))
	defer p.Close()

	out, err := p.RemoveBinaryNoise(nil)
	require.NoError(t, err)
	defer out.Close()

	assert.Zero(t, countNonZero(out))
	assert.Equal(t, 1, countNonZero(img), "input must not be modified")
}

func TestClosingFillsSingleHole(t *testing.T) {
	img := solidGray(t, 20, 20, 255)
	require.NoError(t, img.SetUCharAt(10, 10, 0))

	p := NewProcessor(img, configWith(t, func(c *models.ConfigurationParams) {
		c.DenoiseKernelBinary = 3
		c.MorphologyMode = models.MorphologyClosing
	}))
	defer p.Close()

	out, err := p.RemoveBinaryNoise(nil)
	require.NoError(t, err)
	defer out.Close()

	assert.True(t, allBytesEqual(out, 255))
}

func TestAdaptiveContrastUnclippedOnSolidColorIsUnchanged(t *testing.T) {
	cfg := configWith(t, func(c *models.ConfigurationParams) { c.ContrastStrength = 0 })

	tests := []struct {
		name string
		img  *safe.Mat
		want []uint8
	}{
		{"bgr", solidBGR(t, 64, 64, 40, 120, 200), []uint8{40, 120, 200}},
		{"gray", solidGray(t, 64, 64, 90), []uint8{90}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewProcessor(tt.img, cfg)
			defer p.Close()

			out, err := p.AdaptiveContrast(nil, image.Point{})
			require.NoError(t, err)
			defer out.Close()

			assert.Equal(t, tt.img.Channels(), out.Channels())
			assert.True(t, allBytesEqual(out, tt.want...))
		})
	}
}

func TestMedianBlurEvenKernelIsInvalid(t *testing.T) {
	p := NewProcessor(solidGray(t, 16, 16, 50), models.DefaultPipelineConfiguration())
	defer p.Close()

	out, err := p.MedianBlurWithKernel(nil, 4)
	assert.Nil(t, out)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidParameter)
	assert.Equal(t, "kernel_size", apperrors.Field(err))
}

func TestInvalidParametersAreNeverClamped(t *testing.T) {
	p := NewProcessor(solidGray(t, 16, 16, 50), models.DefaultPipelineConfiguration())
	defer p.Close()

	tests := []struct {
		name string
		run  func() (*safe.Mat, error)
	}{
		{"mean zero width", func() (*safe.Mat, error) { return p.MeanBlur(nil, image.Pt(0, 3)) }},
		{"gaussian even kernel", func() (*safe.Mat, error) { return p.GaussianBlur(nil, image.Pt(4, 4), 1) }},
		{"gaussian zero kernel zero sigma", func() (*safe.Mat, error) { return p.GaussianBlur(nil, image.Point{}, 0) }},
		{"gaussian negative sigma", func() (*safe.Mat, error) { return p.GaussianBlur(nil, image.Pt(3, 3), -1) }},
		{"median one", func() (*safe.Mat, error) { return p.MedianBlurWithKernel(nil, 1) }},
		{"bilateral zero diameter", func() (*safe.Mat, error) { return p.BilateralFilter(nil, 0, 75, 75) }},
		{"bilateral zero sigma", func() (*safe.Mat, error) { return p.BilateralFilter(nil, 9, 0, 75) }},
		{"erode zero iterations", func() (*safe.Mat, error) { return p.Erode(nil, 0) }},
		{"dilate negative iterations", func() (*safe.Mat, error) { return p.Dilate(nil, -2) }},
		{"clahe negative grid", func() (*safe.Mat, error) { return p.AdaptiveContrast(nil, image.Pt(-1, 8)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := tt.run()
			assert.Nil(t, out)
			assert.ErrorIs(t, err, apperrors.ErrInvalidParameter)
		})
	}
}

func TestOperationsWithoutImageReportMissingImage(t *testing.T) {
	p := NewProcessor(nil, models.DefaultPipelineConfiguration())

	for _, op := range Operations() {
		t.Run(op.String(), func(t *testing.T) {
			out, err := p.Run(op, nil)
			assert.Nil(t, out)
			assert.ErrorIs(t, err, apperrors.ErrMissingImage)
		})
	}

	_, err := p.Grayscale(nil)
	assert.ErrorIs(t, err, apperrors.ErrMissingImage)
}

func TestOverrideImageTakesPrecedence(t *testing.T) {
	p := NewProcessor(solidGray(t, 10, 10, 10), models.DefaultPipelineConfiguration())
	defer p.Close()

	override := solidGray(t, 12, 8, 200)
	defer override.Close()

	out, err := p.MedianBlur(override)
	require.NoError(t, err)
	defer out.Close()

	assert.Equal(t, 12, out.Rows())
	assert.Equal(t, 8, out.Cols())
	assert.True(t, allBytesEqual(out, 200))
}

func TestOverrideWorksWithoutHeldImage(t *testing.T) {
	p := NewProcessor(nil, models.DefaultPipelineConfiguration())

	src := solidBGR(t, 10, 10, 1, 2, 3)
	defer src.Close()

	out, err := p.Erode(src, 2)
	require.NoError(t, err)
	defer out.Close()
	assert.True(t, allBytesEqual(out, 1, 2, 3))
}

func TestOutputsAreIndependentOfInput(t *testing.T) {
	img := solidGray(t, 8, 8, 60)
	p := NewProcessor(img, models.DefaultPipelineConfiguration())
	defer p.Close()

	out, err := p.Dilate(nil, 1)
	require.NoError(t, err)
	defer out.Close()

	assert.NotEqual(t, img.ID(), out.ID())
	require.NoError(t, out.SetUCharAt(0, 0, 1))

	v, err := img.GetUCharAt(0, 0)
	require.NoError(t, err)
	assert.Equal(t, uint8(60), v)
}

func TestErodeIterationsShrinkFurther(t *testing.T) {
	img := solidGray(t, 30, 30, 0)
	for r := 5; r < 25; r++ {
		for c := 5; c < 25; c++ {
			require.NoError(t, img.SetUCharAt(r, c, 255))
		}
	}

	p := NewProcessor(img, configWith(t, func(c *models.ConfigurationParams) { c.DenoiseKernelBinary = 3 }))
	defer p.Close()

	once, err := p.Erode(nil, 1)
	require.NoError(t, err)
	defer once.Close()

	twice, err := p.Erode(nil, 2)
	require.NoError(t, err)
	defer twice.Close()

	assert.Equal(t, 18*18, countNonZero(once))
	assert.Equal(t, 16*16, countNonZero(twice))
}

func TestDilateGrowsSquare(t *testing.T) {
	img := solidGray(t, 30, 30, 0)
	require.NoError(t, img.SetUCharAt(15, 15, 255))

	p := NewProcessor(img, configWith(t, func(c *models.ConfigurationParams) { c.DenoiseKernelBinary = 3 }))
	defer p.Close()

	out, err := p.Dilate(nil, 2)
	require.NoError(t, err)
	defer out.Close()

	assert.Equal(t, 5*5, countNonZero(out))
}

func TestEqualizeReturnsGrayscale(t *testing.T) {
	img := solidBGR(t, 32, 32, 10, 200, 30)
	require.NoError(t, img.SetUCharAt3(0, 0, 1, 0))

	for _, mode := range []models.EqualizationMode{models.EqualizationGlobal, models.EqualizationAdaptive} {
		t.Run(mode.String(), func(t *testing.T) {
			p := NewProcessor(nil, configWith(t, func(c *models.ConfigurationParams) { c.EqualizationMode = mode }))

			out, err := p.Equalize(img)
			require.NoError(t, err)
			defer out.Close()

			assert.Equal(t, 1, out.Channels())
			assert.Equal(t, 32, out.Rows())
		})
	}
	img.Close()
}

func TestGlobalEqualizationKeepsUniformRamp(t *testing.T) {
	img := ramp(t, 16)
	p := NewProcessor(img, models.DefaultPipelineConfiguration())
	defer p.Close()

	out, err := p.Equalize(nil)
	require.NoError(t, err)
	defer out.Close()

	assert.Equal(t, pixels(img), pixels(out))
}

func TestEqualizeFlatImageIsUnchanged(t *testing.T) {
	for _, mode := range []models.EqualizationMode{models.EqualizationGlobal, models.EqualizationAdaptive} {
		t.Run(mode.String(), func(t *testing.T) {
			p := NewProcessor(solidGray(t, 20, 20, 77), configWith(t, func(c *models.ConfigurationParams) { c.EqualizationMode = mode }))
			defer p.Close()

			out, err := p.Equalize(nil)
			require.NoError(t, err)
			defer out.Close()
			assert.True(t, allBytesEqual(out, 77))
		})
	}
}

func TestAdaptiveContrastKeepsShapeOnTexturedColor(t *testing.T) {
	img := solidBGR(t, 64, 48, 30, 60, 90)
	for r := 0; r < 64; r++ {
		for c := 0; c < 24; c++ {
			require.NoError(t, img.SetUCharAt3(r, c, 2, 220))
		}
	}

	p := NewProcessor(img, models.DefaultPipelineConfiguration())
	defer p.Close()

	out, err := p.AdaptiveContrast(nil, image.Pt(4, 4))
	require.NoError(t, err)
	defer out.Close()

	assert.Equal(t, 3, out.Channels())
	assert.Equal(t, 64, out.Rows())
	assert.Equal(t, 48, out.Cols())
}

func TestRunAppliesEveryOperation(t *testing.T) {
	img := solidBGR(t, 40, 40, 100, 110, 120)
	rec := &fakeRecorder{}
	p := NewProcessor(img, models.DefaultPipelineConfiguration(), WithRecorder(rec))
	defer p.Close()

	for _, op := range Operations() {
		t.Run(op.String(), func(t *testing.T) {
			out, err := p.Run(op, nil)
			require.NoError(t, err)
			defer out.Close()

			assert.Equal(t, 40, out.Rows())
			if op == OpEqualize {
				assert.Equal(t, 1, out.Channels())
			} else {
				assert.Equal(t, 3, out.Channels())
			}
		})
	}

	require.Len(t, rec.observations, len(Operations()))
	for _, o := range rec.observations {
		assert.False(t, o.failed, o.operation)
	}
}

func TestRecorderSeesFailures(t *testing.T) {
	rec := &fakeRecorder{}
	p := NewProcessor(nil, models.DefaultPipelineConfiguration(), WithRecorder(rec))

	_, err := p.MedianBlur(nil)
	require.Error(t, err)

	require.Len(t, rec.observations, 1)
	assert.Equal(t, "median_blur", rec.observations[0].operation)
	assert.True(t, rec.observations[0].failed)
}

func TestRunChain(t *testing.T) {
	img := solidGray(t, 20, 20, 0)
	require.NoError(t, img.SetUCharAt(3, 3, 255))

	rec := &fakeRecorder{}
	p := NewProcessor(img, configWith(t, func(c *models.ConfigurationParams) { c.DenoiseKernelBinary = 3 }), WithRecorder(rec))
	defer p.Close()

	out, err := p.RunChain([]Operation{OpBinaryNoise, OpMedianBlur, OpEqualize}, nil)
	require.NoError(t, err)
	defer out.Close()

	assert.True(t, allBytesEqual(out, 0))
	assert.Len(t, rec.observations, 3)
	assert.Equal(t, 1, countNonZero(img))
}

func TestRunChainValidatesBeforeProcessing(t *testing.T) {
	rec := &fakeRecorder{}
	p := NewProcessor(solidGray(t, 8, 8, 5), configWith(t, func(c *models.ConfigurationParams) { c.DenoiseKernelCommon = 1 }), WithRecorder(rec))
	defer p.Close()

	out, err := p.RunChain([]Operation{OpErode, OpMedianBlur}, nil)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, apperrors.ErrInvalidParameter)
	assert.Empty(t, rec.observations)

	_, err = p.RunChain(nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidParameter)
}

func TestRunUnknownOperation(t *testing.T) {
	p := NewProcessor(nil, models.DefaultPipelineConfiguration())
	_, err := p.Run(Operation(99), nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidParameter)
}
