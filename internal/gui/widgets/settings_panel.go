package widgets

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// SettingsValues seeds the panel widgets.
type SettingsValues struct {
	Resolution       int
	Quality          int
	ReductionCommon  int
	ReductionBinary  int
	MorphologyMode   string
	EqualizationMode string
	Contrast         float64
}

// SettingsPanel is the content of the Settings tab. Every change is reported
// through the change handler as (setting name, int|float64|string).
type SettingsPanel struct {
	container     *fyne.Container
	changeHandler func(name string, value interface{})
}

func NewSettingsPanel(values SettingsValues) *SettingsPanel {
	panel := &SettingsPanel{}
	panel.container = container.NewVBox(
		panel.imageSettings(values),
		panel.processingSettings(values),
	)
	return panel
}

func (sp *SettingsPanel) GetContainer() *fyne.Container {
	return sp.container
}

func (sp *SettingsPanel) SetChangeHandler(handler func(name string, value interface{})) {
	sp.changeHandler = handler
}

func (sp *SettingsPanel) emit(name string, value interface{}) {
	if sp.changeHandler != nil {
		sp.changeHandler(name, value)
	}
}

func (sp *SettingsPanel) imageSettings(values SettingsValues) fyne.CanvasObject {
	resolution := sp.intSlider("resolution", "Resolution", 100, 2000, 10, values.Resolution)
	quality := sp.intSlider("quality", "Quality", 0, 100, 1, values.Quality)

	return widget.NewCard("Image Settings", "", container.NewVBox(resolution, quality))
}

func (sp *SettingsPanel) processingSettings(values SettingsValues) fyne.CanvasObject {
	common := sp.intSlider("reduction_common", "Level of reduction for common cases", 1, 13, 2, values.ReductionCommon)
	binary := sp.intSlider("reduction_binary", "Level of reduction for binary cases", 1, 13, 1, values.ReductionBinary)

	morphology := widget.NewRadioGroup([]string{"opening", "closing"}, func(selected string) {
		if selected != "" {
			sp.emit("morphology_mode", selected)
		}
	})
	morphology.Horizontal = true
	morphology.SetSelected(values.MorphologyMode)

	equalization := widget.NewRadioGroup([]string{"global", "adaptive"}, func(selected string) {
		if selected != "" {
			sp.emit("equalization_mode", selected)
		}
	})
	equalization.Horizontal = true
	equalization.SetSelected(values.EqualizationMode)

	contrastLabel := widget.NewLabel(fmt.Sprintf("Contrast: %.1f", values.Contrast))
	contrast := widget.NewSlider(0, 10)
	contrast.Step = 0.5
	contrast.SetValue(values.Contrast)
	contrast.OnChanged = func(value float64) {
		contrastLabel.SetText(fmt.Sprintf("Contrast: %.1f", value))
		sp.emit("contrast_strength", value)
	}

	return widget.NewCard("Processing Settings", "", container.NewVBox(
		common,
		binary,
		widget.NewLabel("Binary noise removal (opening removes specks, closing fills holes)"),
		morphology,
		widget.NewLabel("Equalization"),
		equalization,
		contrastLabel,
		contrast,
	))
}

func (sp *SettingsPanel) intSlider(name, title string, low, high, step float64, value int) fyne.CanvasObject {
	label := widget.NewLabel(title + ": " + strconv.Itoa(value))

	slider := widget.NewSlider(low, high)
	slider.Step = step
	slider.SetValue(float64(value))
	slider.OnChanged = func(v float64) {
		intValue := int(v)
		label.SetText(title + ": " + strconv.Itoa(intValue))
		sp.emit(name, intValue)
	}

	return container.NewVBox(label, slider)
}
