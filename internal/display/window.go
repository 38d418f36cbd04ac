package display

import (
	apperrors "image-enhancer/internal/errors"
	"image-enhancer/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// Window shows images in an OpenCV HighGUI window and waits for a key press.
// HighGUI must be driven from the main goroutine on most platforms.
type Window struct{}

func NewWindow() *Window {
	return &Window{}
}

func (w *Window) Show(title string, img *safe.Mat) error {
	if err := safe.ValidateMatForOperation(img, "show"); err != nil {
		return err
	}

	window := gocv.NewWindow(title)
	defer window.Close()

	window.IMShow(img.GetMat())
	if key := window.WaitKey(0); key < 0 {
		return apperrors.NewDisplayError("window closed without acknowledgement", nil)
	}

	return nil
}
