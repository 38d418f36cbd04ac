package models

import (
	"fmt"
	"math"
	"strings"

	apperrors "image-enhancer/internal/errors"
)

// ConfigurationVersion is the current schema version of PipelineConfiguration.
const ConfigurationVersion = 1

// MorphologyMode selects how binary noise is removed.
type MorphologyMode int

const (
	// MorphologyOpening erodes then dilates, removing small bright speckles.
	MorphologyOpening MorphologyMode = iota
	// MorphologyClosing dilates then erodes, filling small dark holes.
	MorphologyClosing
)

func (m MorphologyMode) String() string {
	switch m {
	case MorphologyOpening:
		return "opening"
	case MorphologyClosing:
		return "closing"
	default:
		return fmt.Sprintf("MorphologyMode(%d)", int(m))
	}
}

// ParseMorphologyMode accepts "opening" or "closing" in any case.
func ParseMorphologyMode(s string) (MorphologyMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "opening", "open":
		return MorphologyOpening, nil
	case "closing", "close":
		return MorphologyClosing, nil
	default:
		return 0, apperrors.NewInvalidParameter("morphology_mode", "unknown mode %q (want opening or closing)", s)
	}
}

// EqualizationMode selects the histogram equalization strategy.
type EqualizationMode int

const (
	EqualizationGlobal EqualizationMode = iota
	EqualizationAdaptive
)

func (m EqualizationMode) String() string {
	switch m {
	case EqualizationGlobal:
		return "global"
	case EqualizationAdaptive:
		return "adaptive"
	default:
		return fmt.Sprintf("EqualizationMode(%d)", int(m))
	}
}

// ParseEqualizationMode accepts "global" or "adaptive" in any case.
func ParseEqualizationMode(s string) (EqualizationMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "global":
		return EqualizationGlobal, nil
	case "adaptive":
		return EqualizationAdaptive, nil
	default:
		return 0, apperrors.NewInvalidParameter("equalization_mode", "unknown mode %q (want global or adaptive)", s)
	}
}

// DisplaySettings only affect preview and export, never pixel computation.
type DisplaySettings struct {
	Resolution int `mapstructure:"resolution" yaml:"resolution" json:"resolution"`
	Quality    int `mapstructure:"quality" yaml:"quality" json:"quality"`
}

// ConfigurationParams is the flat, editable record the shell fills in before
// building a PipelineConfiguration.
type ConfigurationParams struct {
	Version             int              `mapstructure:"version" yaml:"version" json:"version"`
	DenoiseKernelCommon int              `mapstructure:"denoise_kernel_common" yaml:"denoise_kernel_common" json:"denoise_kernel_common"`
	DenoiseKernelBinary int              `mapstructure:"denoise_kernel_binary" yaml:"denoise_kernel_binary" json:"denoise_kernel_binary"`
	MorphologyMode      MorphologyMode   `mapstructure:"-" yaml:"-" json:"-"`
	EqualizationMode    EqualizationMode `mapstructure:"-" yaml:"-" json:"-"`
	ContrastStrength    float64          `mapstructure:"contrast_strength" yaml:"contrast_strength" json:"contrast_strength"`
	Display             DisplaySettings  `mapstructure:"display" yaml:"display" json:"display"`
}

// DefaultConfigurationParams mirrors the defaults of the settings tab.
func DefaultConfigurationParams() ConfigurationParams {
	return ConfigurationParams{
		Version:             ConfigurationVersion,
		DenoiseKernelCommon: 5,
		DenoiseKernelBinary: 5,
		MorphologyMode:      MorphologyOpening,
		EqualizationMode:    EqualizationGlobal,
		ContrastStrength:    2.0,
		Display: DisplaySettings{
			Resolution: 800,
			Quality:    75,
		},
	}
}

// PipelineConfiguration is an immutable, validated set of pipeline parameters.
// Build one with NewPipelineConfiguration; edit via Params and rebuild.
type PipelineConfiguration struct {
	params ConfigurationParams
}

// NewPipelineConfiguration validates params and freezes them.
func NewPipelineConfiguration(params ConfigurationParams) (PipelineConfiguration, error) {
	if err := params.Validate(); err != nil {
		return PipelineConfiguration{}, err
	}
	return PipelineConfiguration{params: params}, nil
}

// DefaultPipelineConfiguration returns the configuration built from defaults.
func DefaultPipelineConfiguration() PipelineConfiguration {
	return PipelineConfiguration{params: DefaultConfigurationParams()}
}

// Validate checks every field; the first violation is returned.
func (p ConfigurationParams) Validate() error {
	if p.Version != ConfigurationVersion {
		return apperrors.NewInvalidParameter("version", "unsupported configuration version %d (want %d)", p.Version, ConfigurationVersion)
	}
	if p.DenoiseKernelCommon < 1 || p.DenoiseKernelCommon%2 == 0 {
		return apperrors.NewInvalidParameter("denoise_kernel_common", "must be an odd integer >= 1, got %d", p.DenoiseKernelCommon)
	}
	if p.DenoiseKernelBinary < 1 {
		return apperrors.NewInvalidParameter("denoise_kernel_binary", "must be >= 1, got %d", p.DenoiseKernelBinary)
	}
	switch p.MorphologyMode {
	case MorphologyOpening, MorphologyClosing:
	default:
		return apperrors.NewInvalidParameter("morphology_mode", "unknown mode %d", int(p.MorphologyMode))
	}
	switch p.EqualizationMode {
	case EqualizationGlobal, EqualizationAdaptive:
	default:
		return apperrors.NewInvalidParameter("equalization_mode", "unknown mode %d", int(p.EqualizationMode))
	}
	if p.ContrastStrength < 0 || math.IsNaN(p.ContrastStrength) || math.IsInf(p.ContrastStrength, 0) {
		return apperrors.NewInvalidParameter("contrast_strength", "must be a finite value >= 0, got %g", p.ContrastStrength)
	}
	if p.Display.Resolution < 100 || p.Display.Resolution > 2000 {
		return apperrors.NewInvalidParameter("display.resolution", "must be within [100, 2000], got %d", p.Display.Resolution)
	}
	if p.Display.Quality < 0 || p.Display.Quality > 100 {
		return apperrors.NewInvalidParameter("display.quality", "must be within [0, 100], got %d", p.Display.Quality)
	}
	return nil
}

// Params returns a copy of the parameters for editing.
func (c PipelineConfiguration) Params() ConfigurationParams { return c.params }

func (c PipelineConfiguration) Version() int                       { return c.params.Version }
func (c PipelineConfiguration) DenoiseKernelCommon() int           { return c.params.DenoiseKernelCommon }
func (c PipelineConfiguration) DenoiseKernelBinary() int           { return c.params.DenoiseKernelBinary }
func (c PipelineConfiguration) MorphologyMode() MorphologyMode     { return c.params.MorphologyMode }
func (c PipelineConfiguration) EqualizationMode() EqualizationMode { return c.params.EqualizationMode }
func (c PipelineConfiguration) ContrastStrength() float64          { return c.params.ContrastStrength }
func (c PipelineConfiguration) Display() DisplaySettings           { return c.params.Display }

// Fields returns the configuration as log fields.
func (c PipelineConfiguration) Fields() map[string]interface{} {
	return map[string]interface{}{
		"version":               c.params.Version,
		"denoise_kernel_common": c.params.DenoiseKernelCommon,
		"denoise_kernel_binary": c.params.DenoiseKernelBinary,
		"morphology_mode":       c.params.MorphologyMode.String(),
		"equalization_mode":     c.params.EqualizationMode.String(),
		"contrast_strength":     c.params.ContrastStrength,
	}
}
