package gantry

import (
	"github.com/xraph/gantry/internal/errors"
)

// GantryError is the structured error type used throughout the framework.
type GantryError = errors.GantryError

// HTTPError carries an HTTP status code alongside a framework error.
type HTTPError = errors.HTTPError

// Error codes.
const (
	CodeConfigError      = errors.CodeConfigError
	CodeNotAuthorized    = errors.CodeNotAuthorized
	CodePermissionDenied = errors.CodePermissionDenied
	CodeValidationError  = errors.CodeValidationError
)

// Re-export error constructors.
var (
	ErrConfig           = errors.ErrConfig
	ErrConfigf          = errors.ErrConfigf
	ErrNotAuthorized    = errors.ErrNotAuthorized
	ErrPermissionDenied = errors.ErrPermissionDenied
	ErrValidation       = errors.ErrValidation

	NewHTTPError  = errors.NewHTTPError
	Unauthorized  = errors.Unauthorized
	Forbidden     = errors.Forbidden
	InternalError = errors.InternalError

	GetHTTPStatusCode = errors.GetHTTPStatusCode

	IsConfigError        = errors.IsConfigError
	IsAuthorizationError = errors.IsAuthorizationError
	IsValidationError    = errors.IsValidationError
)
