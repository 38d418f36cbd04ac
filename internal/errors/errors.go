package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents different categories of pipeline errors
type ErrorType string

const (
	ErrorTypeDecodeFailure    ErrorType = "decode_failure"
	ErrorTypeMissingImage     ErrorType = "missing_image"
	ErrorTypeInvalidParameter ErrorType = "invalid_parameter"
	ErrorTypeProcessing       ErrorType = "processing"
	ErrorTypeDisplay          ErrorType = "display"
)

// Sentinels for errors.Is checks. Any *AppError of the same type matches.
var (
	ErrDecodeFailure    = &AppError{Type: ErrorTypeDecodeFailure, Message: "image could not be decoded"}
	ErrMissingImage     = &AppError{Type: ErrorTypeMissingImage, Message: "no image available"}
	ErrInvalidParameter = &AppError{Type: ErrorTypeInvalidParameter, Message: "invalid parameter"}
	ErrProcessing       = &AppError{Type: ErrorTypeProcessing, Message: "processing failed"}
	ErrDisplay          = &AppError{Type: ErrorTypeDisplay, Message: "display failed"}
)

// AppError represents a structured pipeline error
type AppError struct {
	Type    ErrorType
	Message string
	// Field names the offending parameter for invalid_parameter errors.
	Field string
	Cause error
}

// Error implements the error interface
func (e *AppError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Type, e.Message)
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s: %s", e.Type, e.Field, e.Message)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s (caused by: %v)", msg, e.Cause)
	}
	return msg
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an AppError of the same type.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Type == e.Type
}

// NewDecodeFailure creates a new decode failure error
func NewDecodeFailure(path string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeDecodeFailure,
		Message: fmt.Sprintf("failed to decode image %q", path),
		Cause:   cause,
	}
}

// NewMissingImage creates a new missing image error
func NewMissingImage(operation string) *AppError {
	return &AppError{
		Type:    ErrorTypeMissingImage,
		Message: fmt.Sprintf("no image available for operation: %s", operation),
	}
}

// NewInvalidParameter creates a new invalid parameter error for the named field
func NewInvalidParameter(field, format string, args ...interface{}) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidParameter,
		Message: fmt.Sprintf(format, args...),
		Field:   field,
	}
}

// NewProcessingError creates a new processing error
func NewProcessingError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeProcessing,
		Message: message,
		Cause:   cause,
	}
}

// NewDisplayError creates a new display error
func NewDisplayError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeDisplay,
		Message: message,
		Cause:   cause,
	}
}

// IsType checks if the error chain contains an AppError of a specific type
func IsType(err error, errorType ErrorType) bool {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Type == errorType
	}
	return false
}

// Field extracts the offending field name from an invalid parameter error.
func Field(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Field
	}
	return ""
}
