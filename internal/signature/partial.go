package signature

import (
	"context"

	"github.com/xraph/gantry/internal/shared"
)

// Partial binds a subset of a callable's named arguments ahead of time. A
// Partial is itself a callable object, so it can be wrapped by a provider;
// signature resolution unwraps it to introspect the underlying callable.
type Partial struct {
	fn    any
	bound shared.Kwargs
}

// NewPartial wraps fn with pre-bound named arguments. Call-time kwargs take
// precedence over bound ones on key collision.
func NewPartial(fn any, bound shared.Kwargs) *Partial {
	kw := make(shared.Kwargs, len(bound))
	for k, v := range bound {
		kw[k] = v
	}
	return &Partial{fn: fn, bound: kw}
}

// Call invokes the underlying callable with bound and call-time arguments
// merged.
func (p *Partial) Call(ctx context.Context, kwargs shared.Kwargs) (any, error) {
	merged := make(shared.Kwargs, len(p.bound)+len(kwargs))
	for k, v := range p.bound {
		merged[k] = v
	}
	for k, v := range kwargs {
		merged[k] = v
	}
	return Call(ctx, p.fn, merged, nil)
}

// Func returns the wrapped callable.
func (p *Partial) Func() any {
	return p.fn
}

// Bound returns the pre-bound arguments.
func (p *Partial) Bound() shared.Kwargs {
	return p.bound
}

// UnwrapPartial peels any Partial layers off a callable, returning the
// innermost callable.
func UnwrapPartial(callable any) any {
	for {
		p, ok := callable.(*Partial)
		if !ok {
			return callable
		}
		callable = p.fn
	}
}
