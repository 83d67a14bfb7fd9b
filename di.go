package gantry

import (
	"github.com/xraph/gantry/internal/di"
)

// Provide wraps one callable as a lazily-invoked, optionally cached
// dependency.
type Provide = di.Provide

// ProvideOption configures provider construction.
type ProvideOption = di.ProvideOption

// Convention is a dependency's calling convention, fixed at construction.
type Convention = di.Convention

// Calling conventions.
const (
	ConventionSync           = di.ConventionSync
	ConventionSyncGenerator  = di.ConventionSyncGenerator
	ConventionAsync          = di.ConventionAsync
	ConventionAsyncGenerator = di.ConventionAsyncGenerator
)

// NewProvide wraps a callable or object dependency as a provider.
func NewProvide(dependency any, opts ...ProvideOption) (*Provide, error) {
	return di.NewProvide(dependency, opts...)
}

// WithUseCache memoizes the dependency's first result for the provider's
// lifetime.
func WithUseCache() ProvideOption {
	return di.WithUseCache()
}

// WithSyncToThread explicitly states whether a synchronous dependency
// should be offloaded to its own goroutine.
func WithSyncToThread(enabled bool) ProvideOption {
	return di.WithSyncToThread(enabled)
}

// Classify determines the calling convention of a dependency.
func Classify(dependency any) (Convention, error) {
	return di.Classify(dependency)
}
