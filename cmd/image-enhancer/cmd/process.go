package cmd

import (
	"fmt"

	"image-enhancer/internal/config"
	"image-enhancer/internal/display"
	apperrors "image-enhancer/internal/errors"
	"image-enhancer/internal/opencv/safe"
	"image-enhancer/internal/pipeline"

	"github.com/spf13/cobra"
)

func newProcessCommand(s *session) *cobra.Command {
	defaults := config.DefaultConfig().Pipeline

	cmd := &cobra.Command{
		Use:   "process <image>",
		Short: "Apply one or more operations to an image",
		Long: `Load an image, apply the given operations in order and optionally show
or save the result. An unreadable image is replaced by a blank 640x480 image.

Operations: median, mean, gaussian, bilateral, erode, dilate, binary-noise,
clahe, equalize.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			names, err := cmd.Flags().GetStringSlice("op")
			if err != nil {
				return err
			}
			return runProcess(cmd, s, args[0], names)
		},
	}

	flags := cmd.Flags()
	flags.StringSliceP("op", "p", []string{pipeline.OpMedianBlur.String()}, "operation to apply (repeatable, applied in order)")
	flags.StringP("output", "o", "", "write the result to this file (format from extension)")
	flags.Bool("show", false, "show the result in an OpenCV window")
	flags.Int("kernel-common", defaults.DenoiseKernelCommon, "median blur kernel size (odd)")
	flags.Int("kernel-binary", defaults.DenoiseKernelBinary, "kernel size for erode, dilate and binary noise removal")
	flags.String("morphology", defaults.MorphologyMode, "binary noise removal mode (opening, closing)")
	flags.String("equalization", defaults.EqualizationMode, "equalization mode (global, adaptive)")
	flags.Float64("contrast", defaults.ContrastStrength, "CLAHE clip limit (0 disables clipping)")
	flags.Int("quality", defaults.Display.Quality, "JPEG quality for --output (0-100)")

	bind(s, cmd, map[string]string{
		"output.path":                    "output",
		"show":                           "show",
		"pipeline.denoise_kernel_common": "kernel-common",
		"pipeline.denoise_kernel_binary": "kernel-binary",
		"pipeline.morphology_mode":       "morphology",
		"pipeline.equalization_mode":     "equalization",
		"pipeline.contrast_strength":     "contrast",
		"pipeline.display.quality":       "quality",
	})

	return cmd
}

func runProcess(cmd *cobra.Command, s *session, path string, names []string) error {
	ops, err := parseOperations(names)
	if err != nil {
		return err
	}

	cfg, err := s.cfg.PipelineConfiguration()
	if err != nil {
		return err
	}

	source := pipeline.NewImageSource(s.log)
	img := source.Load(path)
	defer img.Close()

	processor := pipeline.NewProcessor(img, cfg,
		pipeline.WithLogger(s.log),
		pipeline.WithRecorder(s.recorder),
	)

	var result *safe.Mat
	if len(ops) == 1 {
		result, err = processor.Run(ops[0], nil)
	} else {
		result, err = processor.RunChain(ops, nil)
	}

	viewer := display.NewViewer(display.NewWindow(), s.cfg.Show, s.log)
	result, err = viewer.Present(ops[len(ops)-1].Title(), result, err)
	if result != nil {
		defer result.Close()
	}
	if err != nil {
		if result == nil || !apperrors.IsType(err, apperrors.ErrorTypeDisplay) {
			return err
		}
		s.log.Warning("CLI", "result could not be shown", map[string]interface{}{
			"error": err.Error(),
		})
	}

	if out := s.cfg.Output.Path; out != "" {
		if err := pipeline.Save(out, result, cfg.Display().Quality); err != nil {
			return err
		}
		s.log.Info("CLI", "result saved", map[string]interface{}{
			"path": out,
		})
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s: %dx%d, %d channel(s)\n",
		ops[len(ops)-1].Title(), result.Cols(), result.Rows(), result.Channels())

	return nil
}

func parseOperations(names []string) ([]pipeline.Operation, error) {
	ops := make([]pipeline.Operation, 0, len(names))
	for _, name := range names {
		op, err := pipeline.ParseOperation(name)
		if err != nil {
			return nil, err
		}
		ops = append(ops, op)
	}
	if len(ops) == 0 {
		return nil, fmt.Errorf("at least one --op is required")
	}
	return ops, nil
}

func bind(s *session, cmd *cobra.Command, keys map[string]string) {
	for key, flag := range keys {
		_ = s.v.BindPFlag(key, cmd.Flags().Lookup(flag))
	}
}
