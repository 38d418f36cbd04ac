package pipeline

import (
	"fmt"
	"io"
	"os"

	apperrors "image-enhancer/internal/errors"
	"image-enhancer/internal/logger"
	"image-enhancer/internal/opencv/safe"

	"fyne.io/fyne/v2"
	"gocv.io/x/gocv"
)

// Dimensions of the blank image returned when decoding fails.
const (
	FallbackRows = 480
	FallbackCols = 640
)

// ImageSource decodes images from disk or memory into 8-bit BGR Mats.
type ImageSource struct {
	logger logger.Logger
}

func NewImageSource(log logger.Logger) *ImageSource {
	if log == nil {
		log = logger.Nop()
	}
	return &ImageSource{logger: log}
}

// Load decodes path as a colour image. Any decode failure is logged and
// answered with the blank fallback image, so the result is always usable.
func (s *ImageSource) Load(path string) *safe.Mat {
	mat, err := s.LoadStrict(path)
	if err == nil {
		return mat
	}

	s.logger.Warning("ImageSource", "decode failed, using blank image", map[string]interface{}{
		"path":  path,
		"error": err.Error(),
		"rows":  FallbackRows,
		"cols":  FallbackCols,
	})

	return s.Fallback()
}

// LoadStrict is Load without the fallback: failures are decode_failure errors.
func (s *ImageSource) LoadStrict(path string) (*safe.Mat, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, apperrors.NewDecodeFailure(path, err)
	}

	mat := gocv.IMRead(path, gocv.IMReadColor)
	result, err := safe.Adopt(mat)
	if err != nil {
		return nil, apperrors.NewDecodeFailure(path, fmt.Errorf("unsupported or corrupt image: %w", err))
	}

	s.logger.Info("ImageSource", "image loaded", map[string]interface{}{
		"path":     path,
		"width":    result.Cols(),
		"height":   result.Rows(),
		"channels": result.Channels(),
	})

	return result, nil
}

// LoadBytes decodes an encoded image held in memory.
func (s *ImageSource) LoadBytes(data []byte) (*safe.Mat, error) {
	if len(data) == 0 {
		return nil, apperrors.NewDecodeFailure("<memory>", fmt.Errorf("no image data"))
	}

	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		mat.Close()
		return nil, apperrors.NewDecodeFailure("<memory>", err)
	}

	result, err := safe.Adopt(mat)
	if err != nil {
		return nil, apperrors.NewDecodeFailure("<memory>", fmt.Errorf("unsupported or corrupt image: %w", err))
	}

	s.logger.Debug("ImageSource", "image decoded from memory", map[string]interface{}{
		"size_bytes": len(data),
		"width":      result.Cols(),
		"height":     result.Rows(),
	})

	return result, nil
}

// LoadFromReader reads and decodes a file chosen in a fyne file dialog.
func (s *ImageSource) LoadFromReader(reader fyne.URIReadCloser) (*safe.Mat, error) {
	uri := reader.URI()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, apperrors.NewDecodeFailure(uri.Path(), err)
	}

	mat, err := s.LoadBytes(data)
	if err != nil {
		return nil, apperrors.NewDecodeFailure(uri.Path(), err)
	}

	return mat, nil
}

// Fallback returns a new all-black 480x640 BGR image.
func (s *ImageSource) Fallback() *safe.Mat {
	mat, err := safe.NewMatFromScalar(gocv.NewScalar(0, 0, 0, 0), FallbackRows, FallbackCols, gocv.MatTypeCV8UC3)
	if err != nil {
		// Only reachable when OpenCV cannot allocate.
		panic(fmt.Sprintf("allocating fallback image: %v", err))
	}
	return mat
}
