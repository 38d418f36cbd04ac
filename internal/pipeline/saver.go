package pipeline

import (
	"fmt"
	"image"
	"io"
	"strings"

	apperrors "image-enhancer/internal/errors"
	"image-enhancer/internal/opencv/conversion"
	"image-enhancer/internal/opencv/safe"

	"fyne.io/fyne/v2"
	"github.com/disintegration/imaging"
)

// Save writes mat to path, choosing the format from the extension. quality
// applies to JPEG output only.
func Save(path string, mat *safe.Mat, quality int) error {
	if quality < 0 || quality > 100 {
		return apperrors.NewInvalidParameter("display.quality", "must be within [0, 100], got %d", quality)
	}

	img, err := conversion.MatToImage(mat)
	if err != nil {
		return fmt.Errorf("preparing %s: %w", path, err)
	}

	if err := imaging.Save(img, path, imaging.JPEGQuality(quality)); err != nil {
		return fmt.Errorf("saving %s: %w", path, err)
	}

	return nil
}

// SaveToWriter encodes mat in the named format ("png", "jpeg", ...). An empty
// format is taken from the URI of a fyne writer and defaults to PNG.
func SaveToWriter(writer io.Writer, mat *safe.Mat, format string, quality int) error {
	if format == "" {
		if uriWriter, ok := writer.(fyne.URIWriteCloser); ok {
			format = strings.TrimPrefix(uriWriter.URI().Extension(), ".")
		}
	}
	if format == "" {
		format = "png"
	}

	f, err := imaging.FormatFromExtension(format)
	if err != nil {
		return apperrors.NewInvalidParameter("format", "unsupported output format %q", format)
	}

	img, err := conversion.MatToImage(mat)
	if err != nil {
		return err
	}

	return imaging.Encode(writer, img, f, imaging.JPEGQuality(quality))
}

// Preview converts mat for on-screen display, scaled down to fit within
// resolution x resolution pixels. Smaller images are left as they are.
func Preview(mat *safe.Mat, resolution int) (image.Image, error) {
	if resolution <= 0 {
		return nil, apperrors.NewInvalidParameter("display.resolution", "must be positive, got %d", resolution)
	}

	img, err := conversion.MatToImage(mat)
	if err != nil {
		return nil, err
	}

	return imaging.Fit(img, resolution, resolution, imaging.Lanczos), nil
}
