package gui

import (
	"image"

	"image-enhancer/internal/gui/widgets"
	"image-enhancer/internal/models"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
)

// View lays out the Image and Settings tabs.
type View struct {
	window     fyne.Window
	controller *Controller

	imageDisplay  *widgets.ImageDisplay
	toolbar       *widgets.Toolbar
	settingsPanel *widgets.SettingsPanel
	tabs          *container.AppTabs
}

func NewView(window fyne.Window, params models.ConfigurationParams) *View {
	view := &View{
		window: window,
	}

	view.setupComponents(params)
	view.setupLayout()

	return view
}

func (v *View) SetController(controller *Controller) {
	v.controller = controller
	v.setupEventHandlers()
}

func (v *View) setupComponents(params models.ConfigurationParams) {
	v.imageDisplay = widgets.NewImageDisplay()
	v.toolbar = widgets.NewToolbar(QuickSelections())
	v.settingsPanel = widgets.NewSettingsPanel(widgets.SettingsValues{
		Resolution:       params.Display.Resolution,
		Quality:          params.Display.Quality,
		ReductionCommon:  params.DenoiseKernelCommon,
		ReductionBinary:  params.DenoiseKernelBinary,
		MorphologyMode:   params.MorphologyMode.String(),
		EqualizationMode: params.EqualizationMode.String(),
		Contrast:         params.ContrastStrength,
	})
}

func (v *View) setupLayout() {
	imageTab := container.NewBorder(
		nil,
		v.toolbar.GetContainer(),
		nil, nil,
		v.imageDisplay.GetContainer(),
	)

	v.tabs = container.NewAppTabs(
		container.NewTabItem("Image", imageTab),
		container.NewTabItem("Settings", container.NewVScroll(v.settingsPanel.GetContainer())),
	)
}

func (v *View) setupEventHandlers() {
	if v.controller == nil {
		return
	}

	v.toolbar.SetLoadHandler(v.controller.LoadImage)
	v.toolbar.SetProcessHandler(v.controller.ProcessImage)
	v.toolbar.SetClearHandler(v.controller.Clear)
	v.toolbar.SetSaveHandler(v.controller.SaveImage)

	v.settingsPanel.SetChangeHandler(v.controller.UpdateSetting)
}

func (v *View) Content() fyne.CanvasObject {
	return v.tabs
}

func (v *View) SetOriginalImage(img image.Image) {
	v.imageDisplay.SetOriginalImage(img)
}

func (v *View) SetResultImage(img image.Image) {
	v.imageDisplay.SetResultImage(img)
	v.toolbar.SetSaveEnabled(img != nil)
}

func (v *View) ClearImages() {
	v.imageDisplay.Clear()
	v.toolbar.SetSaveEnabled(false)
}

func (v *View) SetStatus(status string) {
	v.toolbar.SetStatus(status)
}

func (v *View) SetProcessing(active bool) {
	v.toolbar.SetProcessing(active)
}

func (v *View) ShowError(err error) {
	dialog.ShowError(err, v.window)
}

func (v *View) ShowFileDialog(callback func(fyne.URIReadCloser, error)) {
	dialog.ShowFileOpen(callback, v.window)
}

func (v *View) ShowSaveDialog(callback func(fyne.URIWriteCloser, error)) {
	dialog.ShowFileSave(callback, v.window)
}

func (v *View) GetWindow() fyne.Window {
	return v.window
}

func (v *View) Show() {
	v.window.SetContent(v.tabs)
	v.window.Show()
}
