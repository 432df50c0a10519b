package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"boxplot/domain/core"
)

// AppError represents a structured application error
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if appErr, ok := asAppError(err); ok {
		return &AppError{
			Code:    appErr.Code,
			Message: message,
			Cause:   err,
		}
	}
	return &AppError{
		Code:    CodeInternalError,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps an error with formatted additional context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WithCode adds an error code to an existing error
func WithCode(code string, err error) error {
	if err == nil {
		return nil
	}
	if appErr, ok := err.(*AppError); ok {
		return &AppError{
			Code:    code,
			Message: appErr.Message,
			Cause:   appErr.Cause,
		}
	}
	return &AppError{
		Code:    code,
		Message: err.Error(),
		Cause:   err,
	}
}

// IsAppError checks if an error is, or wraps, an AppError
func IsAppError(err error) bool {
	_, ok := asAppError(err)
	return ok
}

// GetCode returns the code of the outermost AppError in the chain, otherwise "UNKNOWN"
func GetCode(err error) string {
	if appErr, ok := asAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN"
}

// UserMessage returns the message meant for end users. AppErrors carry their
// own message; anything else is reported generically.
func UserMessage(err error) string {
	if appErr, ok := asAppError(err); ok {
		return appErr.Message
	}
	return "Something went wrong. Please try again."
}

func asAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// Predefined error codes
const (
	CodeConfigInvalid     = "CONFIG_INVALID"
	CodeDatabaseError     = "DATABASE_ERROR"
	CodeValidationError   = "VALIDATION_ERROR"
	CodeNotFound          = "NOT_FOUND"
	CodeInternalError     = "INTERNAL_ERROR"
	CodeInvalidInput      = "INVALID_INPUT"
	CodeInsufficientData  = "INSUFFICIENT_DATA"
	CodeDegenerateDataset = "DEGENERATE_DATASET"
	CodeParseError        = "PARSE_ERROR"
	CodeNoNumericData     = "NO_NUMERIC_DATA"
	CodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	CodeExportError       = "EXPORT_ERROR"
)

// Common error constructors
func ConfigInvalid(message string) *AppError {
	return New(CodeConfigInvalid, message)
}

func DatabaseError(message string, cause error) *AppError {
	return &AppError{Code: CodeDatabaseError, Message: message, Cause: cause}
}

func ValidationError(message string) *AppError {
	return New(CodeValidationError, message)
}

func NotFound(resource string, cause error) *AppError {
	return &AppError{Code: CodeNotFound, Message: fmt.Sprintf("%s not found", resource), Cause: cause}
}

func InternalError(message string) *AppError {
	return New(CodeInternalError, message)
}

func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message)
}

// InsufficientData reports a dataset below the minimum size
func InsufficientData(message string, cause error) *AppError {
	return &AppError{Code: CodeInsufficientData, Message: message, Cause: cause}
}

// DegenerateDataset reports a dataset with no variation
func DegenerateDataset(message string) *AppError {
	return &AppError{Code: CodeDegenerateDataset, Message: message, Cause: core.ErrDegenerateDataset}
}

// ParseError reports an unreadable upload
func ParseError(message string, cause error) *AppError {
	return &AppError{Code: CodeParseError, Message: message, Cause: cause}
}

// NoNumericData reports input that parsed but held no usable number
func NoNumericData(message string) *AppError {
	return &AppError{Code: CodeNoNumericData, Message: message, Cause: core.ErrNoNumericData}
}

// UnsupportedFormat reports an upload whose format cannot be read
func UnsupportedFormat(name string) *AppError {
	return &AppError{
		Code:    CodeUnsupportedFormat,
		Message: fmt.Sprintf("Unsupported file type: %s. Upload a .csv, .txt or .xlsx file.", name),
		Cause:   core.NewUnsupportedFormatError(name),
	}
}

// UploadTooLarge reports a body or file above limit bytes
func UploadTooLarge(limit int64) *AppError {
	return &AppError{
		Code:    CodeInvalidInput,
		Message: fmt.Sprintf("File is too large. The limit is %d KB.", limit>>10),
		Cause:   core.ErrUploadTooLarge,
	}
}

// HTTPStatus maps an error to the status code an HTTP surface should answer with
func HTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if stderrors.Is(err, core.ErrUploadTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	switch GetCode(err) {
	case CodeInsufficientData, CodeDegenerateDataset, CodeValidationError:
		return http.StatusUnprocessableEntity
	case CodeNotFound:
		return http.StatusNotFound
	case CodeParseError, CodeNoNumericData, CodeUnsupportedFormat, CodeInvalidInput:
		return http.StatusBadRequest
	}
	switch {
	case core.IsValidationError(err):
		return http.StatusUnprocessableEntity
	case core.IsNotFoundError(err):
		return http.StatusNotFound
	case core.IsInputError(err):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
