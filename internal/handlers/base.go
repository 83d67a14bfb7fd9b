package handlers

import (
	"context"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cast"

	"github.com/xraph/gantry/internal/di"
	"github.com/xraph/gantry/internal/errors"
	"github.com/xraph/gantry/internal/shared"
	"github.com/xraph/gantry/internal/signature"
)

// BaseRouteHandler carries the configuration every route handler variant
// shares: paths, the wrapped callable, guards, and the mergeable
// configuration mappings.
type BaseRouteHandler struct {
	paths              []string
	fn                 any
	name               string
	guards             []shared.Guard
	dependencies       map[string]*di.Provide
	exceptionHandlers  map[string]ExceptionHandler
	middleware         []Middleware
	opt                map[string]any
	signatureNamespace signature.Namespace
	parameters         map[string]any
	typeDecoders       []signature.TypeDecoder
	typeEncoders       map[reflect.Type]TypeEncoder
	signatureTypes     []reflect.Type

	parsedFnSignature *signature.Signature
}

// newBaseRouteHandler wraps fn with the given configuration, parses its
// signature and runs the structural checks common to all handler variants.
func newBaseRouteHandler(fn any, cfg *handlerConfig) (*BaseRouteHandler, error) {
	if fn == nil {
		return nil, errors.ErrConfig("route handler requires a handler function", nil)
	}
	if !signature.IsCallable(fn) {
		return nil, errors.ErrConfig("route handler function must be a callable value", nil)
	}

	paths := cfg.paths
	if len(paths) == 0 {
		paths = []string{"/"}
	}
	normalized := make([]string, len(paths))
	for i, p := range paths {
		normalized[i] = normalizePath(p)
	}

	name := cfg.name
	if name == "" {
		name = "handler-" + uuid.NewString()
	}

	ns := make(signature.Namespace, len(cfg.signatureNamespace)+len(cfg.signatureTypes))
	for k, v := range cfg.signatureNamespace {
		ns[k] = v
	}
	for _, t := range cfg.signatureTypes {
		if t != nil && t.Name() != "" {
			ns[t.Name()] = t
		}
	}

	sig, err := signature.FromCallable(fn, ns)
	if err != nil {
		return nil, errors.ErrConfig("route handler function could not be introspected", err)
	}

	return &BaseRouteHandler{
		paths:              normalized,
		fn:                 fn,
		name:               name,
		guards:             cfg.guards,
		dependencies:       cfg.dependencies,
		exceptionHandlers:  cfg.exceptionHandlers,
		middleware:         cfg.middleware,
		opt:                cfg.opt,
		signatureNamespace: ns,
		parameters:         cfg.parameters,
		typeDecoders:       cfg.typeDecoders,
		typeEncoders:       cfg.typeEncoders,
		signatureTypes:     cfg.signatureTypes,
		parsedFnSignature:  sig,
	}, nil
}

// Paths returns the handler's normalized path fragments.
func (h *BaseRouteHandler) Paths() []string {
	return h.paths
}

// Fn returns the wrapped callable.
func (h *BaseRouteHandler) Fn() any {
	return h.fn
}

// Name returns the handler's identifying name.
func (h *BaseRouteHandler) Name() string {
	return h.name
}

// Guards returns the guard sequence in evaluation order.
func (h *BaseRouteHandler) Guards() []shared.Guard {
	return h.guards
}

// Dependencies returns the handler's dependency providers keyed by name.
func (h *BaseRouteHandler) Dependencies() map[string]*di.Provide {
	return h.dependencies
}

// ExceptionHandlers returns the error-code to handler mapping.
func (h *BaseRouteHandler) ExceptionHandlers() map[string]ExceptionHandler {
	return h.exceptionHandlers
}

// Middleware returns the middleware sequence in application order.
func (h *BaseRouteHandler) Middleware() []Middleware {
	return h.middleware
}

// Opt returns the free-form options mapping.
func (h *BaseRouteHandler) Opt() map[string]any {
	return h.opt
}

// OptValue returns one opt entry and whether it is present.
func (h *BaseRouteHandler) OptValue(key string) (any, bool) {
	v, ok := h.opt[key]
	return v, ok
}

// OptString reads an opt entry as a string.
func (h *BaseRouteHandler) OptString(key string) string {
	return cast.ToString(h.opt[key])
}

// OptBool reads an opt entry as a bool.
func (h *BaseRouteHandler) OptBool(key string) bool {
	return cast.ToBool(h.opt[key])
}

// OptInt reads an opt entry as an int.
func (h *BaseRouteHandler) OptInt(key string) int {
	return cast.ToInt(h.opt[key])
}

// OptDuration reads an opt entry as a time.Duration.
func (h *BaseRouteHandler) OptDuration(key string) time.Duration {
	return cast.ToDuration(h.opt[key])
}

// SignatureNamespace returns the signature-resolution namespace.
func (h *BaseRouteHandler) SignatureNamespace() signature.Namespace {
	return h.signatureNamespace
}

// Parameters returns the layered parameters mapping.
func (h *BaseRouteHandler) Parameters() map[string]any {
	return h.parameters
}

// TypeDecoders returns the decoder sequence in application order.
func (h *BaseRouteHandler) TypeDecoders() []signature.TypeDecoder {
	return h.typeDecoders
}

// TypeEncoders returns the encoder mapping.
func (h *BaseRouteHandler) TypeEncoders() map[reflect.Type]TypeEncoder {
	return h.typeEncoders
}

// SignatureTypes returns types exposed by name to signature resolution.
func (h *BaseRouteHandler) SignatureTypes() []reflect.Type {
	return h.signatureTypes
}

// ParsedSignature returns the parsed parameter/return metadata of fn.
func (h *BaseRouteHandler) ParsedSignature() *signature.Signature {
	return h.parsedFnSignature
}

// resolveGuards returns the effective guard sequence. Ancestor guards are
// already folded in at merge time.
func (h *BaseRouteHandler) resolveGuards() []shared.Guard {
	return h.guards
}

// authorizeConnection runs the guards in order. The first failure aborts
// and surfaces unchanged.
func (h *BaseRouteHandler) authorizeConnection(ctx context.Context, conn *shared.Connection) error {
	for _, guard := range h.resolveGuards() {
		if err := guard.Check(ctx, conn); err != nil {
			return err
		}
	}
	return nil
}
