package di

import (
	"context"
	"reflect"
	"sync"

	"github.com/xraph/gantry/internal/errors"
	"github.com/xraph/gantry/internal/plugins"
	"github.com/xraph/gantry/internal/shared"
	"github.com/xraph/gantry/internal/signature"
)

// Convention is a dependency's calling convention, computed once at
// construction and never re-inspected.
type Convention int

const (
	// ConventionSync is a plain callable without a context parameter.
	ConventionSync Convention = iota

	// ConventionSyncGenerator is a callable producing an iter.Seq-shaped
	// value without accepting a context.
	ConventionSyncGenerator

	// ConventionAsync is a context-accepting callable.
	ConventionAsync

	// ConventionAsyncGenerator is a context-accepting callable producing an
	// iter.Seq-shaped value.
	ConventionAsyncGenerator
)

func (c Convention) String() string {
	switch c {
	case ConventionSync:
		return "sync"
	case ConventionSyncGenerator:
		return "sync_generator"
	case ConventionAsync:
		return "async"
	case ConventionAsyncGenerator:
		return "async_generator"
	default:
		return "unknown"
	}
}

// IsAsync reports whether the convention is context-accepting.
func (c Convention) IsAsync() bool {
	return c == ConventionAsync || c == ConventionAsyncGenerator
}

// IsGenerator reports whether the convention has streaming/cleanup
// semantics.
func (c Convention) IsGenerator() bool {
	return c == ConventionSyncGenerator || c == ConventionAsyncGenerator
}

// Classify determines the calling convention of a dependency by inspecting
// its entry point (the value itself for a func, the Call method for an
// object dependency).
func Classify(dependency any) (Convention, error) {
	entry, _, err := signature.EntryPoint(dependency)
	if err != nil {
		return ConventionSync, err
	}
	if entry.Type().IsVariadic() {
		return ConventionSync, errors.ErrConfig("variadic dependencies are not supported", nil)
	}

	async := signature.IsAsyncCallable(dependency)
	generator := signature.IsGeneratorCallable(dependency)

	switch {
	case async && generator:
		return ConventionAsyncGenerator, nil
	case generator:
		return ConventionSyncGenerator, nil
	case async:
		return ConventionAsync, nil
	default:
		return ConventionSync, nil
	}
}

// ProvideOption configures provider construction.
type ProvideOption func(*provideOptions)

type provideOptions struct {
	useCache     bool
	syncToThread *bool
}

// WithUseCache memoizes the dependency's first result for the provider's
// lifetime. Not permitted for generator dependencies.
func WithUseCache() ProvideOption {
	return func(o *provideOptions) {
		o.useCache = true
	}
}

// WithSyncToThread explicitly states whether a synchronous dependency
// should be offloaded to its own goroutine. Leaving the option off means
// "unspecified", which draws an advisory warning for plain synchronous
// dependencies.
func WithSyncToThread(enabled bool) ProvideOption {
	return func(o *provideOptions) {
		o.syncToThread = &enabled
	}
}

// Provide wraps one callable as a lazily-invoked, optionally cached
// dependency.
type Provide struct {
	dependency   any
	convention   Convention
	useCache     bool
	syncToThread bool

	mu    sync.Mutex
	value any

	parsedFnSignature *signature.Signature
	signatureModel    *signature.Model
	decoders          []signature.TypeDecoder
}

// NewProvide wraps a callable or object dependency. The result of the
// callable is injected as a dependency wherever its key is declared.
func NewProvide(dependency any, opts ...ProvideOption) (*Provide, error) {
	var o provideOptions
	for _, opt := range opts {
		opt(&o)
	}

	convention, err := Classify(dependency)
	if err != nil {
		return nil, err
	}

	if convention.IsGenerator() && o.useCache {
		return nil, errors.ErrConfig(
			"cannot cache a generator dependency, consider using lifespan context instead", nil)
	}

	if o.syncToThread != nil {
		if convention.IsGenerator() {
			warnSyncToThreadWithGenerator(dependency)
		} else if convention.IsAsync() {
			warnSyncToThreadWithAsyncCallable(dependency)
		}
	} else if convention == ConventionSync {
		warnImplicitSyncToThread(dependency)
	}

	p := &Provide{
		dependency:   dependency,
		convention:   convention,
		useCache:     o.useCache,
		syncToThread: o.syncToThread != nil && *o.syncToThread,
		value:        shared.Empty,
	}

	if p.syncToThread && convention == ConventionSync {
		p.dependency = ensureAsyncCallable(dependency)
		p.convention = ConventionAsync
	}

	return p, nil
}

// Dependency returns the wrapped callable. When sync-to-thread adaptation
// was applied this is the goroutine-offloading wrapper, not the original.
func (p *Provide) Dependency() any {
	return p.dependency
}

// Convention returns the calling convention fixed at construction.
func (p *Provide) Convention() Convention {
	return p.convention
}

// UseCache reports whether results are memoized.
func (p *Provide) UseCache() bool {
	return p.useCache
}

// SyncToThread reports whether goroutine offloading was requested.
func (p *Provide) SyncToThread() bool {
	return p.syncToThread
}

// ParsedSignature returns the resolved signature metadata, nil before
// Finalize.
func (p *Provide) ParsedSignature() *signature.Signature {
	return p.parsedFnSignature
}

// SignatureModel returns the resolved argument schema, nil before Finalize.
func (p *Provide) SignatureModel() *signature.Model {
	return p.signatureModel
}

// CachedValue returns the memoized result and whether one has been stored.
func (p *Provide) CachedValue() (any, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if shared.IsEmpty(p.value) {
		return nil, false
	}
	return p.value, true
}

// Finalize resolves signature metadata for the dependency exactly once. A
// plugin that declares a typed constructor for the dependency wins over
// default introspection. Safe to call repeatedly; already-resolved steps
// are skipped.
func (p *Provide) Finalize(
	registry *plugins.Registry,
	namespace signature.Namespace,
	dependencyKeys []string,
	dataTransform reflect.Type,
	decoders []signature.TypeDecoder,
) error {
	if p.parsedFnSignature == nil {
		dependency := signature.UnwrapPartial(p.dependency)
		var plugin plugins.DIPlugin
		if registry != nil {
			plugin = registry.FindTypedInit(dependency)
		}
		if plugin != nil {
			sig, hints, err := plugin.TypedInit(dependency)
			if err != nil {
				return err
			}
			p.parsedFnSignature = signature.FromTypedInit(sig, hints)
		} else {
			sig, err := signature.FromCallable(dependency, namespace)
			if err != nil {
				return err
			}
			p.parsedFnSignature = sig
		}
	}

	if p.signatureModel == nil {
		model, err := signature.NewModel(dependencyKeys, p.dependency, p.parsedFnSignature, dataTransform, decoders)
		if err != nil {
			return err
		}
		p.signatureModel = model
		p.decoders = decoders
		if adapter, ok := p.dependency.(*asyncAdapter); ok {
			adapter.decoders = decoders
		}
	}

	return nil
}

// Call invokes the provider's dependency with the given named arguments.
// With caching enabled, a stored value short-circuits the call; otherwise
// the produced value is stored before being returned. Errors from the
// dependency propagate unchanged.
func (p *Provide) Call(ctx context.Context, kwargs shared.Kwargs) (any, error) {
	if p.useCache {
		p.mu.Lock()
		value := p.value
		p.mu.Unlock()
		if !shared.IsEmpty(value) {
			return value, nil
		}
	}

	value, err := signature.Call(ctx, p.dependency, kwargs, p.decoders)
	if err != nil {
		return nil, err
	}

	if p.useCache {
		p.mu.Lock()
		p.value = value
		p.mu.Unlock()
	}

	return value, nil
}

// Equal reports whether two providers wrap the same dependency with the
// same cache flag and, when both have resolved values, the same value.
// Used to deduplicate a dependency declared at multiple routing scopes.
func (p *Provide) Equal(other *Provide) bool {
	if p == other {
		return true
	}
	if p == nil || other == nil {
		return false
	}
	p.mu.Lock()
	value := p.value
	p.mu.Unlock()
	other.mu.Lock()
	otherValue := other.value
	other.mu.Unlock()
	return sameCallable(p.dependency, other.dependency) &&
		p.useCache == other.useCache &&
		equalValues(value, otherValue)
}

// sameCallable compares dependency identity: pointer identity for funcs,
// deep equality otherwise.
func sameCallable(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	if av.Kind() == reflect.Func || bv.Kind() == reflect.Func {
		return av.Kind() == reflect.Func && bv.Kind() == reflect.Func && av.Pointer() == bv.Pointer()
	}
	return reflect.DeepEqual(a, b)
}

func equalValues(a, b any) bool {
	if shared.IsEmpty(a) || shared.IsEmpty(b) {
		return shared.IsEmpty(a) && shared.IsEmpty(b)
	}
	return reflect.DeepEqual(a, b)
}
