package shared

import (
	"context"
	"iter"
)

// Callable is the object form of a dependency: any value exposing a Call
// entry point can be wrapped by a provider. Classification inspects the
// Call method, so generator-shaped and context-aware variants are
// recognized the same way plain functions are.
type Callable interface {
	Call(kwargs Kwargs) (any, error)
}

// CallableContext is the context-aware object form of a dependency. A
// provider wrapping one is classified asynchronous.
type CallableContext interface {
	Call(ctx context.Context, kwargs Kwargs) (any, error)
}

// Stream is the canonical generator-dependency result: a value sequence
// with per-request setup/teardown driven by the surrounding lifecycle
// manager. Any iter.Seq-shaped result is recognized as a generator, not
// just this alias.
type Stream = iter.Seq[any]
