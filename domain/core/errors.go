package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound         = errors.New("resource not found")
	ErrAnalysisNotFound = fmt.Errorf("%w: analysis", ErrNotFound)
	ErrGuideNotFound    = fmt.Errorf("%w: guide", ErrNotFound)

	// Dataset errors
	ErrInsufficientData  = errors.New("insufficient data for box plot")
	ErrDegenerateDataset = errors.New("all values are identical")

	// Acquisition errors
	ErrNoNumericData     = errors.New("no numeric data found")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrMalformedInput    = errors.New("malformed input")
	ErrUploadTooLarge    = errors.New("upload exceeds size limit")
)

// MinDataPoints is the smallest dataset a five-number summary is computed for.
const MinDataPoints = 4

// Error constructors with context
func NewNotFoundError(kind error, id string) error {
	return fmt.Errorf("%w with id %s", kind, id)
}

func NewInsufficientDataError(have int) error {
	return fmt.Errorf("%w: need at least %d values, have %d", ErrInsufficientData, MinDataPoints, have)
}

func NewUnsupportedFormatError(name string) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError reports whether err rejects the dataset itself rather than
// the way it was delivered.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInsufficientData) ||
		errors.Is(err, ErrDegenerateDataset)
}

// IsInputError reports whether err stems from unreadable or unusable input.
func IsInputError(err error) bool {
	return errors.Is(err, ErrNoNumericData) ||
		errors.Is(err, ErrUnsupportedFormat) ||
		errors.Is(err, ErrMalformedInput) ||
		errors.Is(err, ErrUploadTooLarge)
}
