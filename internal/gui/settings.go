package gui

import (
	"fmt"

	apperrors "image-enhancer/internal/errors"
	"image-enhancer/internal/models"
	"image-enhancer/internal/pipeline"
)

// Quick selection entries offered on the Image tab.
const (
	QuickRemoveNoise       = "Remove noise"
	QuickRemoveBinaryNoise = "Remove noise (for binary)"
	QuickEqualization      = "Make Equalization"
	QuickEnhanceContrast   = "Enhance contrast"
)

var quickOperations = map[string]pipeline.Operation{
	QuickRemoveNoise:       pipeline.OpMedianBlur,
	QuickRemoveBinaryNoise: pipeline.OpBinaryNoise,
	QuickEqualization:      pipeline.OpEqualize,
	QuickEnhanceContrast:   pipeline.OpAdaptiveContrast,
}

// QuickSelections returns the entries in menu order.
func QuickSelections() []string {
	return []string{QuickRemoveNoise, QuickRemoveBinaryNoise, QuickEqualization, QuickEnhanceContrast}
}

// QuickOperation maps a quick selection entry to its operation.
func QuickOperation(label string) (pipeline.Operation, error) {
	op, ok := quickOperations[label]
	if !ok {
		return 0, apperrors.NewInvalidParameter("quick_selection", "unknown entry %q", label)
	}
	return op, nil
}

// Setting names emitted by the settings panel.
const (
	SettingResolution       = "resolution"
	SettingQuality          = "quality"
	SettingReductionCommon  = "reduction_common"
	SettingReductionBinary  = "reduction_binary"
	SettingMorphologyMode   = "morphology_mode"
	SettingEqualizationMode = "equalization_mode"
	SettingContrast         = "contrast_strength"
)

// Settings mirrors the Settings tab. It is edited one value at a time and
// turned into a validated configuration when processing starts.
type Settings struct {
	params models.ConfigurationParams
}

func NewSettings(params models.ConfigurationParams) *Settings {
	return &Settings{params: params}
}

func (s *Settings) Params() models.ConfigurationParams {
	return s.params
}

// Apply stores one widget value. Range checks are left to Configuration.
func (s *Settings) Apply(name string, value interface{}) error {
	switch name {
	case SettingResolution, SettingQuality, SettingReductionCommon, SettingReductionBinary:
		v, ok := value.(int)
		if !ok {
			return apperrors.NewInvalidParameter(name, "expected an integer, got %T", value)
		}
		switch name {
		case SettingResolution:
			s.params.Display.Resolution = v
		case SettingQuality:
			s.params.Display.Quality = v
		case SettingReductionCommon:
			s.params.DenoiseKernelCommon = v
		case SettingReductionBinary:
			s.params.DenoiseKernelBinary = v
		}
	case SettingMorphologyMode:
		mode, err := models.ParseMorphologyMode(fmt.Sprint(value))
		if err != nil {
			return err
		}
		s.params.MorphologyMode = mode
	case SettingEqualizationMode:
		mode, err := models.ParseEqualizationMode(fmt.Sprint(value))
		if err != nil {
			return err
		}
		s.params.EqualizationMode = mode
	case SettingContrast:
		v, ok := value.(float64)
		if !ok {
			return apperrors.NewInvalidParameter(name, "expected a number, got %T", value)
		}
		s.params.ContrastStrength = v
	default:
		return apperrors.NewInvalidParameter(name, "unknown setting")
	}
	return nil
}

func (s *Settings) Configuration() (models.PipelineConfiguration, error) {
	return models.NewPipelineConfiguration(s.params)
}
