package widgets

import (
	"image"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

const (
	ImageAreaWidth  = 400
	ImageAreaHeight = 300

	noImageText = "No image loaded"
)

// ImageDisplay shows the loaded image next to the latest result.
type ImageDisplay struct {
	container     fyne.CanvasObject
	originalImage *canvas.Image
	resultImage   *canvas.Image
	placeholder   *widget.Label
	splitView     *container.Split
}

func NewImageDisplay() *ImageDisplay {
	display := &ImageDisplay{}
	display.createComponents()
	display.setupLayout()
	return display
}

func newCanvasImage() *canvas.Image {
	img := canvas.NewImageFromImage(nil)
	img.FillMode = canvas.ImageFillContain
	img.ScaleMode = canvas.ImageScaleSmooth
	img.SetMinSize(fyne.NewSize(ImageAreaWidth, ImageAreaHeight))
	return img
}

func (id *ImageDisplay) createComponents() {
	id.originalImage = newCanvasImage()
	id.resultImage = newCanvasImage()
	id.placeholder = widget.NewLabel(noImageText)
	id.placeholder.Alignment = fyne.TextAlignCenter
}

func (id *ImageDisplay) setupLayout() {
	originalContainer := container.NewBorder(
		widget.NewRichTextFromMarkdown("**Original**"),
		nil, nil, nil,
		container.NewStack(id.placeholder, id.originalImage),
	)

	resultContainer := container.NewBorder(
		widget.NewRichTextFromMarkdown("**Result**"),
		nil, nil, nil,
		id.resultImage,
	)

	id.splitView = container.NewHSplit(originalContainer, resultContainer)
	id.splitView.SetOffset(0.5)
	id.container = id.splitView
}

func (id *ImageDisplay) GetContainer() fyne.CanvasObject {
	return id.container
}

func (id *ImageDisplay) SetOriginalImage(img image.Image) {
	id.originalImage.Image = img
	if img == nil {
		id.placeholder.SetText(noImageText)
	} else {
		id.placeholder.SetText("")
	}
	id.originalImage.Refresh()
}

func (id *ImageDisplay) SetResultImage(img image.Image) {
	id.resultImage.Image = img
	id.resultImage.Refresh()
}

// Clear empties both panes and restores the placeholder text.
func (id *ImageDisplay) Clear() {
	id.SetOriginalImage(nil)
	id.SetResultImage(nil)
}
