package gui

import (
	"fmt"

	apperrors "image-enhancer/internal/errors"
	"image-enhancer/internal/opencv/safe"
	"image-enhancer/internal/pipeline"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
)

// PreviewDisplay shows results in a separate fyne window scaled to fit the
// configured resolution. Show blocks until that window is closed or stop is
// closed, so it must not be called from the fyne event goroutine.
type PreviewDisplay struct {
	app        fyne.App
	resolution int
	stop       <-chan struct{}
}

// NewPreviewDisplay builds a preview bound to app. A nil stop channel means
// Show only returns when the window is dismissed.
func NewPreviewDisplay(app fyne.App, resolution int, stop <-chan struct{}) *PreviewDisplay {
	return &PreviewDisplay{app: app, resolution: resolution, stop: stop}
}

func (p *PreviewDisplay) Show(title string, img *safe.Mat) error {
	if p.app == nil {
		return apperrors.NewDisplayError("no fyne application", nil)
	}

	preview, err := pipeline.Preview(img, p.resolution)
	if err != nil {
		return err
	}

	closed := make(chan struct{})

	fyne.Do(func() {
		window := p.app.NewWindow(title)

		picture := canvas.NewImageFromImage(preview)
		picture.FillMode = canvas.ImageFillOriginal

		window.SetContent(picture)
		window.SetOnClosed(func() { close(closed) })
		window.Show()
	})

	select {
	case <-closed:
		return nil
	case <-p.stop:
		return apperrors.NewDisplayError(fmt.Sprintf("preview %q dismissed by shutdown", title), nil)
	}
}
