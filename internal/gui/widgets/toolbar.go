package widgets

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Toolbar holds the Image tab actions and the quick selection.
type Toolbar struct {
	container     *fyne.Container
	loadButton    *widget.Button
	processButton *widget.Button
	clearButton   *widget.Button
	saveButton    *widget.Button
	quickSelect   *widget.Select
	statusLabel   *widget.Label

	loadHandler    func()
	processHandler func(selection string)
	clearHandler   func()
	saveHandler    func()
}

func NewToolbar(selections []string) *Toolbar {
	toolbar := &Toolbar{}
	toolbar.createComponents(selections)
	toolbar.buildLayout()
	return toolbar
}

func (t *Toolbar) createComponents(selections []string) {
	t.loadButton = widget.NewButton("Load Image", t.onLoadClicked)
	t.loadButton.Importance = widget.HighImportance

	t.processButton = widget.NewButton("Process Image", t.onProcessClicked)
	t.processButton.Importance = widget.HighImportance

	t.clearButton = widget.NewButton("Clear", t.onClearClicked)

	t.saveButton = widget.NewButton("Save Result", t.onSaveClicked)
	t.saveButton.Disable()

	t.quickSelect = widget.NewSelect(selections, nil)
	if len(selections) > 0 {
		t.quickSelect.SetSelected(selections[0])
	}

	t.statusLabel = widget.NewLabel("Ready")
}

func (t *Toolbar) buildLayout() {
	background := canvas.NewRectangle(color.RGBA{R: 248, G: 249, B: 250, A: 255})

	choice := container.NewHBox(
		widget.NewLabel("Quick selection:"),
		t.quickSelect,
	)

	buttons := container.NewHBox(
		t.loadButton,
		t.processButton,
		t.clearButton,
		widget.NewSeparator(),
		t.saveButton,
	)

	content := container.NewVBox(
		choice,
		buttons,
		t.statusLabel,
	)

	t.container = container.NewStack(
		background,
		container.NewPadded(content),
	)
}

func (t *Toolbar) onLoadClicked() {
	if t.loadHandler != nil {
		t.loadHandler()
	}
}

func (t *Toolbar) onProcessClicked() {
	if t.processHandler != nil {
		t.processHandler(t.quickSelect.Selected)
	}
}

func (t *Toolbar) onClearClicked() {
	if t.clearHandler != nil {
		t.clearHandler()
	}
}

func (t *Toolbar) onSaveClicked() {
	if t.saveHandler != nil {
		t.saveHandler()
	}
}

func (t *Toolbar) GetContainer() *fyne.Container {
	return t.container
}

func (t *Toolbar) SetLoadHandler(handler func()) {
	t.loadHandler = handler
}

func (t *Toolbar) SetProcessHandler(handler func(selection string)) {
	t.processHandler = handler
}

func (t *Toolbar) SetClearHandler(handler func()) {
	t.clearHandler = handler
}

func (t *Toolbar) SetSaveHandler(handler func()) {
	t.saveHandler = handler
}

func (t *Toolbar) SetStatus(status string) {
	t.statusLabel.SetText(status)
}

// SetProcessing disables the actions that must not overlap a running operation.
func (t *Toolbar) SetProcessing(active bool) {
	if active {
		t.processButton.Disable()
		t.loadButton.Disable()
		t.clearButton.Disable()
		return
	}
	t.processButton.Enable()
	t.loadButton.Enable()
	t.clearButton.Enable()
}

func (t *Toolbar) SetSaveEnabled(enabled bool) {
	if enabled {
		t.saveButton.Enable()
	} else {
		t.saveButton.Disable()
	}
}
