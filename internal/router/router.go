package router

import (
	"reflect"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/xraph/gantry/internal/di"
	"github.com/xraph/gantry/internal/errors"
	"github.com/xraph/gantry/internal/handlers"
	"github.com/xraph/gantry/internal/logger"
	"github.com/xraph/gantry/internal/plugins"
	"github.com/xraph/gantry/internal/shared"
	"github.com/xraph/gantry/internal/signature"
)

// Router is a routing scope: it owns configuration that route handlers
// merge into at registration time and finalizes their dependency providers
// once application-wide context is available. Building the request-routing
// tree itself is left to the transport layer.
type Router struct {
	path               string
	name               string
	plugins            *plugins.Registry
	dependencies       map[string]*di.Provide
	guards             []shared.Guard
	middleware         []handlers.Middleware
	exceptionHandlers  map[string]handlers.ExceptionHandler
	opt                map[string]any
	signatureNamespace signature.Namespace
	parameters         map[string]any
	typeDecoders       []signature.TypeDecoder
	typeEncoders       map[reflect.Type]handlers.TypeEncoder
	signatureTypes     []reflect.Type
	dataTransform      reflect.Type
	log                logger.Logger

	mu       sync.RWMutex
	handlers []*handlers.ASGIRouteHandler
}

// RouterOption configures router construction.
type RouterOption func(*Router)

// WithPath sets the scope's mount path. Defaults to "/".
func WithPath(path string) RouterOption {
	return func(r *Router) { r.path = path }
}

// WithName sets the scope's identifying name.
func WithName(name string) RouterOption {
	return func(r *Router) { r.name = name }
}

// WithPlugins sets the plugin registry consulted when finalizing
// dependency providers.
func WithPlugins(registry *plugins.Registry) RouterOption {
	return func(r *Router) { r.plugins = registry }
}

// WithDependency declares a scope-level dependency provider.
func WithDependency(key string, provider *di.Provide) RouterOption {
	return func(r *Router) { r.dependencies[key] = provider }
}

// WithGuards appends scope-level guards.
func WithGuards(guards ...shared.Guard) RouterOption {
	return func(r *Router) { r.guards = append(r.guards, guards...) }
}

// WithMiddleware appends scope-level middleware.
func WithMiddleware(middleware ...handlers.Middleware) RouterOption {
	return func(r *Router) { r.middleware = append(r.middleware, middleware...) }
}

// WithExceptionHandler maps an error code to a scope-level handler.
func WithExceptionHandler(code string, handler handlers.ExceptionHandler) RouterOption {
	return func(r *Router) { r.exceptionHandlers[code] = handler }
}

// WithOpt sets one free-form option value.
func WithOpt(key string, value any) RouterOption {
	return func(r *Router) { r.opt[key] = value }
}

// WithSignatureNamespace adds names to the scope's signature namespace.
func WithSignatureNamespace(ns signature.Namespace) RouterOption {
	return func(r *Router) {
		for k, v := range ns {
			r.signatureNamespace[k] = v
		}
	}
}

// WithParameters declares scope-level layered parameters.
func WithParameters(params map[string]any) RouterOption {
	return func(r *Router) {
		for k, v := range params {
			r.parameters[k] = v
		}
	}
}

// WithTypeDecoders appends scope-level type decoders.
func WithTypeDecoders(decoders ...signature.TypeDecoder) RouterOption {
	return func(r *Router) { r.typeDecoders = append(r.typeDecoders, decoders...) }
}

// WithTypeEncoders merges scope-level type encoders.
func WithTypeEncoders(encoders map[reflect.Type]handlers.TypeEncoder) RouterOption {
	return func(r *Router) {
		for k, v := range encoders {
			r.typeEncoders[k] = v
		}
	}
}

// WithSignatureTypes exposes additional types to signature resolution;
// handlers inherit these on merge.
func WithSignatureTypes(types ...reflect.Type) RouterOption {
	return func(r *Router) { r.signatureTypes = append(r.signatureTypes, types...) }
}

// WithDataTransform sets the data-transform type handed to providers at
// finalization.
func WithDataTransform(t reflect.Type) RouterOption {
	return func(r *Router) { r.dataTransform = t }
}

// WithLogger sets the scope's logger.
func WithLogger(log logger.Logger) RouterOption {
	return func(r *Router) { r.log = log }
}

// NewRouter creates a routing scope.
func NewRouter(opts ...RouterOption) *Router {
	r := &Router{
		path:               "/",
		dependencies:       make(map[string]*di.Provide),
		exceptionHandlers:  make(map[string]handlers.ExceptionHandler),
		opt:                make(map[string]any),
		signatureNamespace: make(signature.Namespace),
		parameters:         make(map[string]any),
		typeEncoders:       make(map[reflect.Type]handlers.TypeEncoder),
		log:                logger.GetGlobalLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Path returns the scope's mount path.
func (r *Router) Path() string { return r.path }

// Name returns the scope's identifying name.
func (r *Router) Name() string { return r.name }

// Dependencies returns the scope-level dependency providers.
func (r *Router) Dependencies() map[string]*di.Provide { return r.dependencies }

// Guards returns the scope-level guards.
func (r *Router) Guards() []shared.Guard { return r.guards }

// Middleware returns the scope-level middleware.
func (r *Router) Middleware() []handlers.Middleware { return r.middleware }

// ExceptionHandlers returns the scope-level exception handlers.
func (r *Router) ExceptionHandlers() map[string]handlers.ExceptionHandler {
	return r.exceptionHandlers
}

// Opt returns the scope-level options mapping.
func (r *Router) Opt() map[string]any { return r.opt }

// SignatureNamespace returns the scope-level signature namespace.
func (r *Router) SignatureNamespace() signature.Namespace { return r.signatureNamespace }

// Parameters returns the scope-level layered parameters.
func (r *Router) Parameters() map[string]any { return r.parameters }

// TypeDecoders returns the scope-level type decoders.
func (r *Router) TypeDecoders() []signature.TypeDecoder { return r.typeDecoders }

// TypeEncoders returns the scope-level type encoders.
func (r *Router) TypeEncoders() map[reflect.Type]handlers.TypeEncoder { return r.typeEncoders }

// SignatureTypes returns types exposed to signature resolution.
func (r *Router) SignatureTypes() []reflect.Type { return r.signatureTypes }

// Register merges a handler into this scope and finalizes every dependency
// provider visible to it. The merged handler is returned; the original is
// left untouched. Finalization failures are configuration errors and fail
// registration before any request can hit the handler.
func (r *Router) Register(h *handlers.ASGIRouteHandler) (*handlers.ASGIRouteHandler, error) {
	merged := h.Merge(r)

	deps := merged.Dependencies()
	keys := make([]string, 0, len(deps))
	for key := range deps {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		err := deps[key].Finalize(
			r.plugins,
			merged.SignatureNamespace(),
			keys,
			r.dataTransform,
			merged.TypeDecoders(),
		)
		if err != nil {
			return nil, errors.ErrConfig("failed to finalize dependency '"+key+"'", err)
		}
	}

	r.mu.Lock()
	r.handlers = append(r.handlers, merged)
	r.mu.Unlock()

	r.log.Debug("route handler registered",
		zap.String("name", merged.Name()),
		zap.Strings("paths", merged.Paths()),
		zap.Bool("mount", merged.IsMount()),
	)

	return merged, nil
}

// Handlers returns the registered (merged) handlers.
func (r *Router) Handlers() []*handlers.ASGIRouteHandler {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*handlers.ASGIRouteHandler(nil), r.handlers...)
}
