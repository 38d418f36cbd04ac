package display

import (
	"fmt"

	apperrors "image-enhancer/internal/errors"
	"image-enhancer/internal/logger"
	"image-enhancer/internal/opencv/safe"
)

// Display shows an image under a title and blocks until the user acknowledges it.
type Display interface {
	Show(title string, img *safe.Mat) error
}

// Viewer routes operation results to a Display when showing is enabled.
// The zero value never shows anything.
type Viewer struct {
	display Display
	show    bool
	logger  logger.Logger
}

func NewViewer(d Display, show bool, log logger.Logger) *Viewer {
	if d == nil {
		d = Nop()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Viewer{display: d, show: show, logger: log}
}

func (v *Viewer) Enabled() bool {
	return v != nil && v.show && v.display != nil
}

// Present passes an operation result through, showing it first if enabled.
// Operation errors are returned untouched. When the display itself fails
// the result is still returned together with a display error.
func (v *Viewer) Present(title string, result *safe.Mat, err error) (*safe.Mat, error) {
	if err != nil || !v.Enabled() {
		return result, err
	}

	v.logger.Debug("Viewer", "showing result", map[string]interface{}{
		"title":  title,
		"width":  result.Cols(),
		"height": result.Rows(),
	})

	if showErr := v.display.Show(title, result); showErr != nil {
		return result, apperrors.NewDisplayError(fmt.Sprintf("cannot show %q", title), showErr)
	}

	return result, nil
}

type nopDisplay struct{}

func (nopDisplay) Show(string, *safe.Mat) error { return nil }

// Nop accepts every image without showing it.
func Nop() Display {
	return nopDisplay{}
}
