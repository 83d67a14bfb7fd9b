package gantry

import (
	"github.com/xraph/gantry/internal/plugins"
)

// DIPlugin lets extensions supply parsed signatures for opaque
// dependencies.
type DIPlugin = plugins.DIPlugin

// PluginRegistry holds the registered plugins for a router.
type PluginRegistry = plugins.Registry

// NewPluginRegistry returns an empty plugin registry.
var NewPluginRegistry = plugins.NewRegistry
