package router

import (
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/xraph/gantry/internal/errors"
	"github.com/xraph/gantry/internal/logger"
)

// Config is the declarative form of a routing scope, loadable from YAML.
type Config struct {
	Path    string               `yaml:"path"`
	Name    string               `yaml:"name"`
	Opt     map[string]any       `yaml:"opt"`
	Logging logger.LoggingConfig `yaml:"logging"`
}

// ParseConfig parses and validates a YAML router configuration.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.ErrConfig("invalid router configuration", err)
	}
	if cfg.Path == "" {
		cfg.Path = "/"
	}
	if !strings.HasPrefix(cfg.Path, "/") {
		return nil, errors.ErrConfigf("router path %q must start with '/'", cfg.Path)
	}
	return &cfg, nil
}

// NewRouterFromConfig creates a routing scope from a parsed configuration.
// Additional options apply on top of it.
func NewRouterFromConfig(cfg *Config, opts ...RouterOption) *Router {
	base := []RouterOption{
		WithPath(cfg.Path),
		WithName(cfg.Name),
		WithLogger(logger.NewLogger(cfg.Logging)),
	}
	for k, v := range cfg.Opt {
		base = append(base, WithOpt(k, v))
	}
	return NewRouter(append(base, opts...)...)
}
