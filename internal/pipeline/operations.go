package pipeline

import (
	"fmt"
	"strings"

	apperrors "image-enhancer/internal/errors"
)

// Operation identifies one processor operation for dispatch from the shells.
type Operation int

const (
	OpMedianBlur Operation = iota
	OpMeanBlur
	OpGaussianBlur
	OpBilateral
	OpErode
	OpDilate
	OpBinaryNoise
	OpAdaptiveContrast
	OpEqualize
)

// Defaults used by Run for parameters the configuration does not carry.
const (
	DefaultBilateralDiameter   = 9
	DefaultBilateralSigmaColor = 75.0
	DefaultBilateralSigmaSpace = 75.0
	DefaultIterations          = 1
)

var operationNames = map[Operation]string{
	OpMedianBlur:       "median",
	OpMeanBlur:         "mean",
	OpGaussianBlur:     "gaussian",
	OpBilateral:        "bilateral",
	OpErode:            "erode",
	OpDilate:           "dilate",
	OpBinaryNoise:      "binary-noise",
	OpAdaptiveContrast: "clahe",
	OpEqualize:         "equalize",
}

var operationTitles = map[Operation]string{
	OpMedianBlur:       "median_blurred",
	OpMeanBlur:         "mean_blurred",
	OpGaussianBlur:     "gaussian_blurred",
	OpBilateral:        "filtered_image",
	OpErode:            "eroded_image",
	OpDilate:           "dilated_image",
	OpBinaryNoise:      "binary_image",
	OpAdaptiveContrast: "clahe_image",
	OpEqualize:         "equalized_image",
}

// Operations lists every operation in declaration order.
func Operations() []Operation {
	return []Operation{
		OpMedianBlur, OpMeanBlur, OpGaussianBlur, OpBilateral,
		OpErode, OpDilate, OpBinaryNoise, OpAdaptiveContrast, OpEqualize,
	}
}

func (o Operation) String() string {
	if name, ok := operationNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Operation(%d)", int(o))
}

// Title is the window title used when the result is displayed.
func (o Operation) Title() string {
	if title, ok := operationTitles[o]; ok {
		return title
	}
	return o.String()
}

// ParseOperation accepts the names printed by String, case-insensitively.
func ParseOperation(name string) (Operation, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	for op, n := range operationNames {
		if n == needle {
			return op, nil
		}
	}
	return 0, apperrors.NewInvalidParameter("operation", "unknown operation %q", name)
}
