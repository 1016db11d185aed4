package apperror

import (
	"errors"
	"net/http"
)

// AppError is a custom error type that includes an HTTP status code and an optional internal error code.
type AppError struct {
	Code    int    // HTTP Status Code (e.g., 400, 404)
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with a status code and message.
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewValidation creates a 400 error for missing or malformed input.
func NewValidation(message string) *AppError {
	return New(http.StatusBadRequest, message)
}

// NewNotFound creates a 404 error for a missing entity.
func NewNotFound(message string) *AppError {
	return New(http.StatusNotFound, message)
}

// WrapStore creates a 500 error around a failed data-store call.
// The underlying cause is kept for server-side logging only.
func WrapStore(err error, message string) *AppError {
	return Wrap(err, http.StatusInternalServerError, message)
}

// IsNotFound reports whether err carries a 404 status.
func IsNotFound(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == http.StatusNotFound
}

// IsValidation reports whether err carries a 400 status.
func IsValidation(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == http.StatusBadRequest
}
