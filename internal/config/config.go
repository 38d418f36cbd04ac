package config

import (
	"fmt"
	"strings"

	apperrors "image-enhancer/internal/errors"
	"image-enhancer/internal/models"
)

// Config is everything the shells read from flags, files and the environment.
type Config struct {
	LogLevel string         `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Show     bool           `mapstructure:"show" yaml:"show" json:"show"`
	Pipeline PipelineConfig `mapstructure:"pipeline" yaml:"pipeline" json:"pipeline"`
	Output   OutputConfig   `mapstructure:"output" yaml:"output" json:"output"`
	Metrics  MetricsConfig  `mapstructure:"metrics" yaml:"metrics" json:"metrics"`
}

// PipelineConfig carries the pipeline parameters with the enum fields in
// their textual form.
type PipelineConfig struct {
	models.ConfigurationParams `mapstructure:",squash" yaml:",inline" json:",inline"`

	MorphologyMode   string `mapstructure:"morphology_mode" yaml:"morphology_mode" json:"morphology_mode"`
	EqualizationMode string `mapstructure:"equalization_mode" yaml:"equalization_mode" json:"equalization_mode"`
}

type OutputConfig struct {
	Path string `mapstructure:"path" yaml:"path" json:"path"`
}

type MetricsConfig struct {
	File string `mapstructure:"file" yaml:"file" json:"file"`
}

var validLogLevels = []string{"debug", "info", "warn", "warning", "error"}

func DefaultConfig() Config {
	params := models.DefaultConfigurationParams()

	return Config{
		LogLevel: "info",
		Pipeline: PipelineConfig{
			ConfigurationParams: params,
			MorphologyMode:      params.MorphologyMode.String(),
			EqualizationMode:    params.EqualizationMode.String(),
		},
	}
}

// PipelineConfiguration parses the mode names and builds the validated core configuration.
func (c *Config) PipelineConfiguration() (models.PipelineConfiguration, error) {
	params := c.Pipeline.ConfigurationParams

	morphology, err := models.ParseMorphologyMode(c.Pipeline.MorphologyMode)
	if err != nil {
		return models.PipelineConfiguration{}, err
	}
	params.MorphologyMode = morphology

	equalization, err := models.ParseEqualizationMode(c.Pipeline.EqualizationMode)
	if err != nil {
		return models.PipelineConfiguration{}, err
	}
	params.EqualizationMode = equalization

	return models.NewPipelineConfiguration(params)
}

func (c *Config) Validate() error {
	level := strings.ToLower(c.LogLevel)
	known := false
	for _, l := range validLogLevels {
		if l == level {
			known = true
			break
		}
	}
	if !known {
		return apperrors.NewInvalidParameter("log_level", "must be one of %v, got %q", validLogLevels, c.LogLevel)
	}

	if _, err := c.PipelineConfiguration(); err != nil {
		return fmt.Errorf("pipeline: %w", err)
	}

	return nil
}
