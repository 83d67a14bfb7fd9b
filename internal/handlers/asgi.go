package handlers

import (
	"context"

	"github.com/xraph/gantry/internal/errors"
	"github.com/xraph/gantry/internal/shared"
	"github.com/xraph/gantry/internal/signature"
)

// asgiParams are the transport primitives every ASGI-style handler function
// must declare.
var asgiParams = []string{"scope", "send", "receive"}

// ASGIRouteHandler dispatches a connection directly to a handler function
// taking the three transport primitives.
type ASGIRouteHandler struct {
	*BaseRouteHandler

	isMount bool
}

// NewASGIRouteHandler wraps fn as an ASGI-style route handler and validates
// it. The handler function must accept a context.Context plus the scope,
// receive and send primitives, and must not return a value.
func NewASGIRouteHandler(fn any, opts ...HandlerOption) (*ASGIRouteHandler, error) {
	cfg := newHandlerConfig(opts)
	base, err := newBaseRouteHandler(fn, cfg)
	if err != nil {
		return nil, err
	}
	h := &ASGIRouteHandler{BaseRouteHandler: base, isMount: cfg.isMount}
	if err := h.validateHandlerFunction(); err != nil {
		return nil, err
	}
	return h, nil
}

// IsMount reports whether the handler's paths are prefix mounts rather than
// exact matches.
func (h *ASGIRouteHandler) IsMount() bool {
	return h.isMount
}

// validateHandlerFunction checks the parsed signature against the
// transport contract. Runs once at registration so misconfiguration never
// reaches request time.
func (h *ASGIRouteHandler) validateHandlerFunction() error {
	if h.parsedFnSignature.ReturnType != signature.NoneType {
		return errors.ErrConfig("ASGI handler functions must not return a value", nil)
	}
	for _, key := range asgiParams {
		if !h.parsedFnSignature.HasParameter(key) {
			return errors.ErrConfig(
				"ASGI handler functions must define 'scope', 'send' and 'receive' arguments", nil)
		}
	}
	if !signature.IsAsyncCallable(h.fn) {
		return errors.ErrConfig(
			"ASGI handler functions must accept a context.Context as their first argument", nil)
	}
	return nil
}

// Merge combines this handler's configuration with an enclosing scope's,
// producing a new handler. Neither side is mutated: parent and child stay
// independently reusable. Mappings merge with this handler's entries
// winning on key collision; sequences concatenate parent-first; the
// callable identity, name and mount flag are taken from this handler
// unchanged.
func (h *ASGIRouteHandler) Merge(parent Owner) *ASGIRouteHandler {
	paths := make([]string, 0, len(h.paths))
	for _, p := range h.paths {
		paths = append(paths, joinPaths(parent.Path(), p))
	}

	merged := &BaseRouteHandler{
		paths:              paths,
		fn:                 h.fn,
		name:               h.name,
		guards:             concatSlices(parent.Guards(), h.guards),
		dependencies:       mergeMaps(parent.Dependencies(), h.dependencies),
		exceptionHandlers:  mergeMaps(parent.ExceptionHandlers(), h.exceptionHandlers),
		middleware:         concatSlices(parent.Middleware(), h.middleware),
		opt:                mergeMaps(parent.Opt(), h.opt),
		signatureNamespace: mergeMaps(parent.SignatureNamespace(), h.signatureNamespace),
		parameters:         mergeMaps(parent.Parameters(), h.parameters),
		typeDecoders:       concatSlices(parent.TypeDecoders(), h.typeDecoders),
		typeEncoders:       mergeMaps(parent.TypeEncoders(), h.typeEncoders),
		parsedFnSignature:  h.parsedFnSignature,
	}
	if st, ok := parent.(OwnerWithSignatureTypes); ok {
		merged.signatureTypes = st.SignatureTypes()
	}

	return &ASGIRouteHandler{BaseRouteHandler: merged, isMount: h.isMount}
}

// Handle authorizes the connection and then invokes the handler function
// with the connection's transport primitives. A failing guard aborts before
// the function is reached; its error surfaces unchanged.
func (h *ASGIRouteHandler) Handle(ctx context.Context, conn *shared.Connection) error {
	if len(h.resolveGuards()) > 0 {
		if err := h.authorizeConnection(ctx, conn); err != nil {
			return err
		}
	}

	_, err := signature.Call(ctx, h.fn, shared.Kwargs{
		"scope":   conn.Scope,
		"receive": conn.Receive,
		"send":    conn.Send,
	}, h.typeDecoders)
	return err
}

// HandlerConstructor builds a route handler from a function and options.
// It lets a factory substitute a handler variant for the standard one.
type HandlerConstructor func(fn any, opts ...HandlerOption) (*ASGIRouteHandler, error)

// Asgi returns a factory that wraps a handler function with the given
// configuration, the decorator-style construction convenience.
func Asgi(opts ...HandlerOption) func(fn any) (*ASGIRouteHandler, error) {
	return AsgiWithConstructor(NewASGIRouteHandler, opts...)
}

// AsgiWithConstructor is Asgi with the handler constructor swapped out.
func AsgiWithConstructor(newHandler HandlerConstructor, opts ...HandlerOption) func(fn any) (*ASGIRouteHandler, error) {
	if newHandler == nil {
		newHandler = NewASGIRouteHandler
	}
	return func(fn any) (*ASGIRouteHandler, error) {
		return newHandler(fn, opts...)
	}
}

// mergeMaps shallow-merges two maps with child entries winning on key
// collision.
func mergeMaps[K comparable, V any](parent, child map[K]V) map[K]V {
	out := make(map[K]V, len(parent)+len(child))
	for k, v := range parent {
		out[k] = v
	}
	for k, v := range child {
		out[k] = v
	}
	return out
}

// concatSlices concatenates two sequences, parent entries first.
func concatSlices[T any](parent, child []T) []T {
	out := make([]T, 0, len(parent)+len(child))
	out = append(out, parent...)
	return append(out, child...)
}
