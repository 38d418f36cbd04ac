package safe

import (
	"fmt"

	apperrors "image-enhancer/internal/errors"

	"gocv.io/x/gocv"
)

// ValidateMatForOperation reports a missing_image error for nil, closed or
// empty Mats, and an invalid_parameter error for unsupported depths.
func ValidateMatForOperation(mat *Mat, operation string) error {
	if mat == nil || !mat.IsValid() || mat.Empty() {
		return apperrors.NewMissingImage(operation)
	}

	if mat.Rows() <= 0 || mat.Cols() <= 0 {
		return apperrors.NewInvalidParameter("image", "invalid dimensions %dx%d for operation: %s",
			mat.Cols(), mat.Rows(), operation)
	}

	return ValidateMatType(mat.Type(), operation)
}

// ValidateMatType accepts 8-bit gray, BGR and BGRA buffers.
func ValidateMatType(matType gocv.MatType, operation string) error {
	switch matType {
	case gocv.MatTypeCV8UC1, gocv.MatTypeCV8UC3, gocv.MatTypeCV8UC4:
		return nil
	default:
		return apperrors.NewInvalidParameter("image", "unsupported MatType %d for operation: %s", int(matType), operation)
	}
}

func ValidateColorConversion(src *Mat, code gocv.ColorConversionCode) error {
	if err := ValidateMatForOperation(src, "CvtColor"); err != nil {
		return err
	}

	channels := src.Channels()

	switch code {
	case gocv.ColorBGRToGray, gocv.ColorBGRToLab, gocv.ColorLabToBGR:
		if channels != 3 {
			return apperrors.NewInvalidParameter("image", "color conversion %d requires 3 channels, got %d", int(code), channels)
		}
	case gocv.ColorBGRAToGray, gocv.ColorBGRAToBGR:
		if channels != 4 {
			return apperrors.NewInvalidParameter("image", "color conversion %d requires 4 channels, got %d", int(code), channels)
		}
	case gocv.ColorGrayToBGR:
		if channels != 1 {
			return apperrors.NewInvalidParameter("image", "Gray to BGR conversion requires 1 channel, got %d", channels)
		}
	}

	return nil
}

func ValidateCoordinates(row, col, rows, cols int, operation string) error {
	if row < 0 || row >= rows {
		return fmt.Errorf("row %d out of bounds [0, %d) for operation: %s", row, rows, operation)
	}

	if col < 0 || col >= cols {
		return fmt.Errorf("col %d out of bounds [0, %d) for operation: %s", col, cols, operation)
	}

	return nil
}

func ValidateChannel(channel, channels int, operation string) error {
	if channel < 0 || channel >= channels {
		return fmt.Errorf("channel %d out of bounds [0, %d) for operation: %s", channel, channels, operation)
	}

	return nil
}
