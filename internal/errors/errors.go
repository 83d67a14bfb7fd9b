package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// =============================================================================
// ERROR CODES
// =============================================================================

// Error code constants for structured errors
const (
	CodeConfigError      = "CONFIG_ERROR"
	CodeNotAuthorized    = "NOT_AUTHORIZED"
	CodePermissionDenied = "PERMISSION_DENIED"
	CodeValidationError  = "VALIDATION_ERROR"
)

// =============================================================================
// GANTRY ERROR (STRUCTURED ERROR)
// =============================================================================

// GantryError represents a structured error with a stable code and context.
type GantryError struct {
	Code    string
	Message string
	Cause   error
	Context map[string]any
}

func (e *GantryError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *GantryError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for GantryError. Errors match on code, which
// allows comparison against the sentinel errors below.
func (e *GantryError) Is(target error) bool {
	t, ok := target.(*GantryError)
	if !ok {
		return false
	}
	return e.Code != "" && e.Code == t.Code
}

// WithContext adds context to the error.
func (e *GantryError) WithContext(key string, value any) *GantryError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// ErrConfig creates a configuration error. Configuration errors are raised
// at construction or registration time and are never retryable.
func ErrConfig(message string, cause error) *GantryError {
	return &GantryError{
		Code:    CodeConfigError,
		Message: message,
		Cause:   cause,
		Context: make(map[string]any),
	}
}

// ErrConfigf creates a configuration error with a formatted message.
func ErrConfigf(format string, args ...any) *GantryError {
	return ErrConfig(fmt.Sprintf(format, args...), nil)
}

// ErrNotAuthorized creates an authorization error for an unauthenticated
// connection.
func ErrNotAuthorized(message string) *GantryError {
	if message == "" {
		message = "not authorized"
	}
	return &GantryError{
		Code:    CodeNotAuthorized,
		Message: message,
		Context: make(map[string]any),
	}
}

// ErrPermissionDenied creates an authorization error for an authenticated
// connection that fails a guard check.
func ErrPermissionDenied(message string) *GantryError {
	if message == "" {
		message = "permission denied"
	}
	return &GantryError{
		Code:    CodePermissionDenied,
		Message: message,
		Context: make(map[string]any),
	}
}

// ErrValidation creates a validation error for a named key.
func ErrValidation(key string, cause error) *GantryError {
	return &GantryError{
		Code:    CodeValidationError,
		Message: fmt.Sprintf("validation error for '%s'", key),
		Cause:   cause,
		Context: map[string]any{"key": key},
	}
}

// =============================================================================
// HTTP ERRORS
// =============================================================================

// HTTPError represents an HTTP error with a status code.
type HTTPError struct {
	Code    int
	Message string
	Err     error
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for HTTPError, matching on status code.
func (e *HTTPError) Is(target error) bool {
	t, ok := target.(*HTTPError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// HTTP error constructors
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{Code: code, Message: message}
}

func Unauthorized(message string) *HTTPError {
	return &HTTPError{Code: http.StatusUnauthorized, Message: message}
}

func Forbidden(message string) *HTTPError {
	return &HTTPError{Code: http.StatusForbidden, Message: message}
}

func InternalError(err error) *HTTPError {
	return &HTTPError{Code: http.StatusInternalServerError, Err: err}
}

// GetHTTPStatusCode maps an error to an HTTP status code. Authorization
// errors map to 401/403, everything else to 500.
func GetHTTPStatusCode(err error) int {
	var httpErr *HTTPError
	if As(err, &httpErr) {
		return httpErr.Code
	}
	var gantryErr *GantryError
	if As(err, &gantryErr) {
		switch gantryErr.Code {
		case CodeNotAuthorized:
			return http.StatusUnauthorized
		case CodePermissionDenied:
			return http.StatusForbidden
		}
	}
	return http.StatusInternalServerError
}

// =============================================================================
// SENTINEL ERRORS (for use with Is)
// =============================================================================

var (
	// ErrConfigErrorSentinel is a sentinel error for configuration errors
	ErrConfigErrorSentinel = &GantryError{Code: CodeConfigError}

	// ErrNotAuthorizedSentinel is a sentinel error for unauthenticated access
	ErrNotAuthorizedSentinel = &GantryError{Code: CodeNotAuthorized}

	// ErrPermissionDeniedSentinel is a sentinel error for denied access
	ErrPermissionDeniedSentinel = &GantryError{Code: CodePermissionDenied}

	// ErrValidationErrorSentinel is a sentinel error for validation errors
	ErrValidationErrorSentinel = &GantryError{Code: CodeValidationError}
)

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsConfigError checks if the error is a configuration error.
func IsConfigError(err error) bool {
	return Is(err, ErrConfigErrorSentinel)
}

// IsAuthorizationError checks if the error is either kind of authorization
// failure a guard may surface.
func IsAuthorizationError(err error) bool {
	return Is(err, ErrNotAuthorizedSentinel) || Is(err, ErrPermissionDeniedSentinel)
}

// IsValidationError checks if the error is a validation error.
func IsValidationError(err error) bool {
	return Is(err, ErrValidationErrorSentinel)
}

// =============================================================================
// STANDARD ERRORS PACKAGE INTEGRATION
// =============================================================================

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around errors.Is from the standard library.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around errors.As from the standard library.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// New returns an error that formats as the given text.
// This is a convenience wrapper around errors.New from the standard library.
func New(text string) error {
	return errors.New(text)
}
