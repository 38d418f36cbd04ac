package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	apperrors "image-enhancer/internal/errors"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func TestRootCommandHelp(t *testing.T) {
	output, err := execute(t, "--help")
	require.NoError(t, err)

	assert.Contains(t, output, "Available Commands:")
	assert.Contains(t, output, "process")
	assert.Contains(t, output, "ops")
	assert.Contains(t, output, "gui")
}

func TestRootCommandSubcommands(t *testing.T) {
	cmd := NewRootCommand()

	names := make([]string, 0)
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, expected := range []string{"process", "ops", "gui"} {
		assert.Contains(t, names, expected)
	}
}

func TestOpsListsOperationsWithTitles(t *testing.T) {
	output, err := execute(t, "ops")
	require.NoError(t, err)

	assert.Contains(t, output, "median")
	assert.Contains(t, output, "median_blurred")
	assert.Contains(t, output, "binary-noise")
	assert.Contains(t, output, "binary_image")
	assert.Contains(t, output, "equalized_image")
}

func TestProcessUnreadableImageFallsBackAndSaves(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.png")
	metricsFile := filepath.Join(dir, "metrics.prom")

	output, err := execute(t, "process", filepath.Join(dir, "missing.png"),
		"--op", "median", "--op", "equalize",
		"--output", out,
		"--metrics-file", metricsFile,
	)
	require.NoError(t, err)
	assert.Contains(t, output, "equalized_image: 640x480, 1 channel(s)")

	img, err := imaging.Open(out)
	require.NoError(t, err)
	assert.Equal(t, 640, img.Bounds().Dx())
	assert.Equal(t, 480, img.Bounds().Dy())

	data, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "image_enhancer_operations_total")
}

func TestProcessRejectsUnknownOperation(t *testing.T) {
	_, err := execute(t, "process", "any.png", "--op", "sharpen")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidParameter)
}

func TestProcessRejectsEvenKernelFlag(t *testing.T) {
	_, err := execute(t, "process", "any.png", "--kernel-common", "4")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidParameter)
}

func TestProcessRejectsNonFiniteContrastFlag(t *testing.T) {
	for _, value := range []string{"NaN", "+Inf"} {
		_, err := execute(t, "process", "any.png", "--op", "clahe", "--contrast", value)
		require.Error(t, err, value)
		assert.ErrorIs(t, err, apperrors.ErrInvalidParameter)
		assert.Equal(t, "contrast_strength", apperrors.Field(err))
	}
}

func TestProcessRequiresImageArgument(t *testing.T) {
	_, err := execute(t, "process")
	assert.Error(t, err)
}
