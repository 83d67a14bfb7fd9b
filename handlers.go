package gantry

import (
	"github.com/xraph/gantry/internal/handlers"
	"github.com/xraph/gantry/internal/shared"
)

// ASGIRouteHandler dispatches raw connection-scope traffic to a single
// handler function.
type ASGIRouteHandler = handlers.ASGIRouteHandler

// BaseRouteHandler carries the configuration shared by all route handlers.
type BaseRouteHandler = handlers.BaseRouteHandler

// HandlerOption configures route handler construction.
type HandlerOption = handlers.HandlerOption

// Owner is a configuration layer that a handler can be merged onto.
type Owner = handlers.Owner

// OwnerWithSignatureTypes is an Owner that also contributes signature
// namespace types to handlers merged onto it.
type OwnerWithSignatureTypes = handlers.OwnerWithSignatureTypes

// HandlerFunc is the normalized form a handler takes after merging.
type HandlerFunc = handlers.HandlerFunc

// Middleware wraps a HandlerFunc with additional behavior.
type Middleware = handlers.Middleware

// ExceptionHandler handles an error raised during dispatch.
type ExceptionHandler = handlers.ExceptionHandler

// TypeEncoder serializes a handler return value for the wire.
type TypeEncoder = handlers.TypeEncoder

// Connection-level types.
type (
	Connection  = shared.Connection
	Scope       = shared.Scope
	Message     = shared.Message
	Kwargs      = shared.Kwargs
	ReceiveFunc = shared.ReceiveFunc
	SendFunc    = shared.SendFunc
	Guard       = shared.Guard
	GuardFunc   = shared.GuardFunc
	Stream      = shared.Stream
)

// Empty marks a value slot that has never been populated.
var Empty = shared.Empty

// HandlerConstructor builds a route handler from a function and options.
type HandlerConstructor = handlers.HandlerConstructor

// Asgi returns a factory that wraps a handler function with the given
// options.
func Asgi(opts ...HandlerOption) func(fn any) (*ASGIRouteHandler, error) {
	return handlers.Asgi(opts...)
}

// AsgiWithConstructor is Asgi with the handler constructor swapped out.
func AsgiWithConstructor(newHandler HandlerConstructor, opts ...HandlerOption) func(fn any) (*ASGIRouteHandler, error) {
	return handlers.AsgiWithConstructor(newHandler, opts...)
}

// Handler construction options.
var (
	WithPath               = handlers.WithPath
	WithName               = handlers.WithName
	WithGuards             = handlers.WithGuards
	WithDependency         = handlers.WithDependency
	WithDependencies       = handlers.WithDependencies
	WithExceptionHandler   = handlers.WithExceptionHandler
	WithMiddleware         = handlers.WithMiddleware
	WithOpt                = handlers.WithOpt
	WithOptMap             = handlers.WithOptMap
	WithSignatureNamespace = handlers.WithSignatureNamespace
	WithParameters         = handlers.WithParameters
	WithTypeDecoders       = handlers.WithTypeDecoders
	WithTypeEncoders       = handlers.WithTypeEncoders
	WithSignatureTypes     = handlers.WithSignatureTypes
	WithMount              = handlers.WithMount
)
