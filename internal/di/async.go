package di

import (
	"context"

	"github.com/xraph/gantry/internal/shared"
	"github.com/xraph/gantry/internal/signature"
)

// asyncAdapter runs a plain synchronous callable on its own goroutine so a
// blocking dependency cannot starve the caller. Cancellation of ctx
// abandons the wait; the goroutine itself runs to completion. The adapter
// binds with the same decoders as a direct invocation, so offloading never
// changes the produced value.
type asyncAdapter struct {
	wrapped  any
	decoders []signature.TypeDecoder
}

type callResult struct {
	value any
	err   error
}

func (a *asyncAdapter) Call(ctx context.Context, kwargs shared.Kwargs) (any, error) {
	done := make(chan callResult, 1)
	go func() {
		value, err := signature.Call(context.Background(), a.wrapped, kwargs, a.decoders)
		done <- callResult{value: value, err: err}
	}()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.value, r.err
	}
}

// Unwrap returns the original synchronous callable.
func (a *asyncAdapter) Unwrap() any {
	return a.wrapped
}

// ensureAsyncCallable wraps a synchronous callable in a context-accepting
// adapter. The returned value classifies as asynchronous.
func ensureAsyncCallable(dependency any) any {
	return &asyncAdapter{wrapped: dependency}
}
