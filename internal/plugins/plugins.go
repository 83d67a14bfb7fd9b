package plugins

import (
	"sync"

	"github.com/xraph/gantry/internal/signature"
)

// DIPlugin supplies an alternate typed-constructor signature for a
// dependency. The registry queries HasTypedInit as a capability check
// before asking for the signature itself.
type DIPlugin interface {
	// HasTypedInit reports whether this plugin can introspect the typed
	// constructor of the given dependency.
	HasTypedInit(dependency any) bool

	// TypedInit returns the constructor signature and its type hints.
	// Only called after HasTypedInit returned true.
	TypedInit(dependency any) (*signature.Signature, signature.Namespace, error)
}

// Registry holds plugins in registration order.
type Registry struct {
	mu sync.RWMutex
	di []DIPlugin
}

// NewRegistry creates a registry seeded with the given plugins, preserving
// order.
func NewRegistry(plugins ...DIPlugin) *Registry {
	return &Registry{di: append([]DIPlugin(nil), plugins...)}
}

// Register appends a plugin to the registry.
func (r *Registry) Register(p DIPlugin) {
	if p == nil {
		return
	}
	r.mu.Lock()
	r.di = append(r.di, p)
	r.mu.Unlock()
}

// DI returns the registered plugins in registration order.
func (r *Registry) DI() []DIPlugin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]DIPlugin(nil), r.di...)
}

// FindTypedInit returns the first plugin, in registration order, whose
// capability check passes for the dependency. Returns nil when none match.
func (r *Registry) FindTypedInit(dependency any) DIPlugin {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.di {
		if p.HasTypedInit(dependency) {
			return p
		}
	}
	return nil
}
