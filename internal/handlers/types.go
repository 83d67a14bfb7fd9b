package handlers

import (
	"context"
	"reflect"

	"github.com/xraph/gantry/internal/di"
	"github.com/xraph/gantry/internal/shared"
	"github.com/xraph/gantry/internal/signature"
)

// HandlerFunc is the dispatchable form of a route handler.
type HandlerFunc func(ctx context.Context, conn *shared.Connection) error

// Middleware wraps a handler. Middleware is carried and merged as
// configuration here; the routing tree applies it.
type Middleware func(next HandlerFunc) HandlerFunc

// ExceptionHandler maps a failed dispatch to a response, keyed by error
// code in the handler's exception-handler mapping.
type ExceptionHandler func(ctx context.Context, conn *shared.Connection, err error) error

// TypeEncoder transforms a value of its keyed type into one supported for
// serialization.
type TypeEncoder func(value any) (any, error)

// Owner is the routing scope (controller or router) a handler merges into.
type Owner interface {
	Path() string
	Dependencies() map[string]*di.Provide
	Guards() []shared.Guard
	Middleware() []Middleware
	ExceptionHandlers() map[string]ExceptionHandler
	Opt() map[string]any
	SignatureNamespace() signature.Namespace
	Parameters() map[string]any
	TypeDecoders() []signature.TypeDecoder
	TypeEncoders() map[reflect.Type]TypeEncoder
}

// OwnerWithSignatureTypes is implemented by scopes that expose additional
// types for signature-namespace resolution. Handlers inherit these verbatim
// on merge.
type OwnerWithSignatureTypes interface {
	Owner
	SignatureTypes() []reflect.Type
}
