package signature

import (
	"context"
	"reflect"

	"github.com/xraph/gantry/internal/errors"
	"github.com/xraph/gantry/internal/shared"
)

// TypeDecoder converts raw argument values into a target parameter type.
// Decoders are consulted in order; the first whose Match passes decodes.
type TypeDecoder struct {
	Match  func(target reflect.Type) bool
	Decode func(target reflect.Type, value any) (any, error)
}

// Model is the request-argument-validation schema for one callable: it
// knows which parameters are satisfied by dependency providers, which must
// arrive as request data, and how to coerce them. The model is opaque to
// the provider that owns it; the surrounding kwargs layer drives it.
type Model struct {
	fn             any
	signature      *Signature
	dependencyKeys map[string]struct{}
	dataTransform  reflect.Type
	decoders       []TypeDecoder
}

// NewModel builds a Model from the dependency-key set, the callable, its
// resolved signature, an optional data-transform type and the active
// decoders.
func NewModel(dependencyKeys []string, fn any, sig *Signature, dataTransform reflect.Type, decoders []TypeDecoder) (*Model, error) {
	if sig == nil {
		return nil, errors.ErrConfig("signature model requires a parsed signature", nil)
	}
	keys := make(map[string]struct{}, len(dependencyKeys))
	for _, k := range dependencyKeys {
		keys[k] = struct{}{}
	}
	return &Model{
		fn:             fn,
		signature:      sig,
		dependencyKeys: keys,
		dataTransform:  dataTransform,
		decoders:       decoders,
	}, nil
}

// Signature returns the parsed signature the model was built from.
func (m *Model) Signature() *Signature {
	return m.signature
}

// DataTransform returns the optional data-transform type, nil when absent.
func (m *Model) DataTransform() reflect.Type {
	return m.dataTransform
}

// DependencyParameters returns the parameter names satisfied by dependency
// providers, in declaration order.
func (m *Model) DependencyParameters() []string {
	var names []string
	for _, p := range m.signature.Parameters {
		if _, ok := m.dependencyKeys[p.Name]; ok {
			names = append(names, p.Name)
		}
	}
	return names
}

// Validate checks that every declared parameter is covered either by a
// dependency provider or by the supplied kwargs.
func (m *Model) Validate(kwargs shared.Kwargs) error {
	for _, p := range m.signature.Parameters {
		if _, ok := m.dependencyKeys[p.Name]; ok {
			continue
		}
		if _, ok := kwargs[p.Name]; !ok {
			return errors.ErrValidation(p.Name, errors.New("missing required argument"))
		}
	}
	return nil
}

// Invoke validates kwargs against the model and invokes the callable.
func (m *Model) Invoke(ctx context.Context, kwargs shared.Kwargs) (any, error) {
	if err := m.Validate(kwargs); err != nil {
		return nil, err
	}
	return Call(ctx, m.fn, kwargs, m.decoders)
}
