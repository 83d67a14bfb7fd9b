package handlers

import (
	"reflect"

	"github.com/xraph/gantry/internal/di"
	"github.com/xraph/gantry/internal/shared"
	"github.com/xraph/gantry/internal/signature"
)

// HandlerOption configures handler construction.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	paths              []string
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
	isMount            bool
}

func newHandlerConfig(opts []HandlerOption) *handlerConfig {
	cfg := &handlerConfig{
		dependencies:       make(map[string]*di.Provide),
		exceptionHandlers:  make(map[string]ExceptionHandler),
		opt:                make(map[string]any),
		signatureNamespace: make(signature.Namespace),
		parameters:         make(map[string]any),
		typeEncoders:       make(map[reflect.Type]TypeEncoder),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithPath sets one or more path fragments. Defaults to "/" when omitted.
func WithPath(paths ...string) HandlerOption {
	return func(cfg *handlerConfig) {
		cfg.paths = append(cfg.paths, paths...)
	}
}

// WithName sets the handler's identifying name.
func WithName(name string) HandlerOption {
	return func(cfg *handlerConfig) {
		cfg.name = name
	}
}

// WithGuards appends authorization guards, evaluated in order before
// dispatch.
func WithGuards(guards ...shared.Guard) HandlerOption {
	return func(cfg *handlerConfig) {
		cfg.guards = append(cfg.guards, guards...)
	}
}

// WithDependency declares a dependency provider under a key.
func WithDependency(key string, provider *di.Provide) HandlerOption {
	return func(cfg *handlerConfig) {
		cfg.dependencies[key] = provider
	}
}

// WithDependencies declares multiple dependency providers.
func WithDependencies(deps map[string]*di.Provide) HandlerOption {
	return func(cfg *handlerConfig) {
		for k, v := range deps {
			cfg.dependencies[k] = v
		}
	}
}

// WithExceptionHandler maps an error code to a handler.
func WithExceptionHandler(code string, handler ExceptionHandler) HandlerOption {
	return func(cfg *handlerConfig) {
		cfg.exceptionHandlers[code] = handler
	}
}

// WithMiddleware appends middleware, applied in order.
func WithMiddleware(middleware ...Middleware) HandlerOption {
	return func(cfg *handlerConfig) {
		cfg.middleware = append(cfg.middleware, middleware...)
	}
}

// WithOpt sets one free-form option value.
func WithOpt(key string, value any) HandlerOption {
	return func(cfg *handlerConfig) {
		cfg.opt[key] = value
	}
}

// WithOptMap folds a whole options mapping into the opt dictionary.
func WithOptMap(opt map[string]any) HandlerOption {
	return func(cfg *handlerConfig) {
		for k, v := range opt {
			cfg.opt[k] = v
		}
	}
}

// WithSignatureNamespace adds names to the signature-resolution namespace.
func WithSignatureNamespace(ns signature.Namespace) HandlerOption {
	return func(cfg *handlerConfig) {
		for k, v := range ns {
			cfg.signatureNamespace[k] = v
		}
	}
}

// WithParameters declares additional layered parameters.
func WithParameters(params map[string]any) HandlerOption {
	return func(cfg *handlerConfig) {
		for k, v := range params {
			cfg.parameters[k] = v
		}
	}
}

// WithTypeDecoders appends type decoders, applied in order.
func WithTypeDecoders(decoders ...signature.TypeDecoder) HandlerOption {
	return func(cfg *handlerConfig) {
		cfg.typeDecoders = append(cfg.typeDecoders, decoders...)
	}
}

// WithTypeEncoders merges type encoders.
func WithTypeEncoders(encoders map[reflect.Type]TypeEncoder) HandlerOption {
	return func(cfg *handlerConfig) {
		for k, v := range encoders {
			cfg.typeEncoders[k] = v
		}
	}
}

// WithSignatureTypes exposes additional types by name to signature
// resolution.
func WithSignatureTypes(types ...reflect.Type) HandlerOption {
	return func(cfg *handlerConfig) {
		cfg.signatureTypes = append(cfg.signatureTypes, types...)
	}
}

// WithMount marks the handler's paths as mount prefixes: any path sharing
// the registered prefix matches, not just an exact path.
func WithMount() HandlerOption {
	return func(cfg *handlerConfig) {
		cfg.isMount = true
	}
}
