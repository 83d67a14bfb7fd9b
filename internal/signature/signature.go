package signature

import (
	"context"
	"reflect"
	"strconv"
	"unicode"

	"github.com/xraph/gantry/internal/errors"
	"github.com/xraph/gantry/internal/shared"
)

// Namespace maps names to types for parameter-type refinement, the Go
// rendition of a forward-reference resolution namespace.
type Namespace map[string]reflect.Type

// noneType is the "no value" return type.
type noneType struct{}

// NoneType is the return type of a callable that produces no value (a func
// whose only result, if any, is an error).
var NoneType = reflect.TypeOf(noneType{})

// Parameter is one named parameter of a parsed callable.
type Parameter struct {
	Name string
	Type reflect.Type
}

// Signature is the parsed parameter/return metadata of a callable.
// Parsing is deterministic and performs no I/O.
type Signature struct {
	Parameters []Parameter
	ReturnType reflect.Type

	// Async records whether the callable accepts a context.Context as its
	// first argument. The context is not part of Parameters.
	Async bool
}

// HasParameter reports whether the signature declares a parameter with the
// given name.
func (s *Signature) HasParameter(name string) bool {
	for _, p := range s.Parameters {
		if p.Name == name {
			return true
		}
	}
	return false
}

// ParameterNames returns the declared parameter names in order.
func (s *Signature) ParameterNames() []string {
	names := make([]string, len(s.Parameters))
	for i, p := range s.Parameters {
		names[i] = p.Name
	}
	return names
}

var (
	ctxType     = reflect.TypeFor[context.Context]()
	errType     = reflect.TypeFor[error]()
	kwargsType  = reflect.TypeFor[shared.Kwargs]()
	scopeType   = reflect.TypeFor[shared.Scope]()
	messageType = reflect.TypeFor[shared.Message]()
	receiveType = reflect.TypeFor[shared.ReceiveFunc]()
	sendType    = reflect.TypeFor[shared.SendFunc]()
	connType    = reflect.TypeFor[*shared.Connection]()
	anyType     = reflect.TypeFor[any]()
)

// canonicalName maps the well-known transport and binding types to their
// parameter names. Go functions carry no parameter names at runtime, so the
// type itself is the name carrier for these.
func canonicalName(t reflect.Type) string {
	switch t {
	case scopeType:
		return "scope"
	case receiveType:
		return "receive"
	case sendType:
		return "send"
	case messageType:
		return "message"
	case connType:
		return "connection"
	case kwargsType:
		return "kwargs"
	}
	return ""
}

// EntryPoint resolves the invocation entry point of a callable: the value
// itself when it is a func, or its Call method when it is an object
// dependency. The second result reports the object case.
func EntryPoint(callable any) (reflect.Value, bool, error) {
	if callable == nil {
		return reflect.Value{}, false, errors.ErrConfig("provider dependency must be a callable value", nil)
	}
	v := reflect.ValueOf(callable)
	if v.Kind() == reflect.Func {
		if v.IsNil() {
			return reflect.Value{}, false, errors.ErrConfig("provider dependency must be a callable value", nil)
		}
		return v, false, nil
	}
	if m := v.MethodByName("Call"); m.IsValid() {
		return m, true, nil
	}
	return reflect.Value{}, false, errors.ErrConfig("provider dependency must be a callable value", nil)
}

// IsCallable reports whether v can be wrapped as a dependency or handler.
func IsCallable(v any) bool {
	_, _, err := EntryPoint(v)
	return err == nil
}

// IsAsyncCallable reports whether the callable's entry point accepts a
// context.Context as its first argument.
func IsAsyncCallable(callable any) bool {
	entry, _, err := EntryPoint(callable)
	if err != nil {
		return false
	}
	t := entry.Type()
	return t.NumIn() > 0 && t.In(0) == ctxType
}

// isSeqShaped reports whether t has the iter.Seq shape,
// func(yield func(V) bool).
func isSeqShaped(t reflect.Type) bool {
	if t.Kind() != reflect.Func || t.NumIn() != 1 || t.NumOut() != 0 {
		return false
	}
	yield := t.In(0)
	return yield.Kind() == reflect.Func &&
		yield.NumIn() == 1 &&
		yield.NumOut() == 1 &&
		yield.Out(0).Kind() == reflect.Bool
}

// IsGeneratorCallable reports whether the callable's entry point produces an
// iter.Seq-shaped value, i.e. a streaming dependency with per-request
// lifecycle semantics.
func IsGeneratorCallable(callable any) bool {
	entry, _, err := EntryPoint(callable)
	if err != nil {
		return false
	}
	t := entry.Type()
	for i := 0; i < t.NumOut(); i++ {
		if isSeqShaped(t.Out(i)) {
			return true
		}
	}
	return false
}

// FromCallable parses a callable into a Signature using default reflection
// introspection. The namespace refines parameters declared as `any` whose
// derived name has a namespace entry.
func FromCallable(callable any, ns Namespace) (*Signature, error) {
	entry, _, err := EntryPoint(callable)
	if err != nil {
		return nil, err
	}
	t := entry.Type()
	if t.IsVariadic() {
		return nil, errors.ErrConfig("variadic callables cannot be introspected", nil)
	}

	sig := &Signature{ReturnType: NoneType}

	start := 0
	if t.NumIn() > 0 && t.In(0) == ctxType {
		sig.Async = true
		start = 1
	}

	for i := start; i < t.NumIn(); i++ {
		in := t.In(i)
		if name := canonicalName(in); name != "" {
			sig.Parameters = append(sig.Parameters, Parameter{Name: name, Type: in})
			continue
		}
		if fields, ok := structParameters(in); ok {
			sig.Parameters = append(sig.Parameters, fields...)
			continue
		}
		name := derivedName(in, i)
		typ := in
		if in == anyType {
			if hinted, ok := ns[name]; ok {
				typ = hinted
			}
		}
		sig.Parameters = append(sig.Parameters, Parameter{Name: name, Type: typ})
	}

	for i := 0; i < t.NumOut(); i++ {
		if t.Out(i) == errType {
			continue
		}
		sig.ReturnType = t.Out(i)
		break
	}

	return sig, nil
}

// FromTypedInit builds a Signature from a plugin-supplied signature and
// type-hint namespace, refining parameter types where the hints are more
// specific.
func FromTypedInit(sig *Signature, hints Namespace) *Signature {
	out := &Signature{
		Parameters: make([]Parameter, len(sig.Parameters)),
		ReturnType: sig.ReturnType,
		Async:      sig.Async,
	}
	copy(out.Parameters, sig.Parameters)
	for i, p := range out.Parameters {
		if hinted, ok := hints[p.Name]; ok {
			out.Parameters[i].Type = hinted
		}
	}
	return out
}

// structParameters expands a struct (or pointer-to-struct) parameter into
// one named parameter per exported field. Field names come from the `dep`
// tag when present, otherwise the lower-cased field name.
func structParameters(t reflect.Type) ([]Parameter, bool) {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, false
	}
	var params []Parameter
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Tag.Get("dep")
		if name == "" {
			name = lowerFirst(field.Name)
		}
		params = append(params, Parameter{Name: name, Type: field.Type})
	}
	return params, true
}

// derivedName names a parameter after its type, lower-cased, falling back
// to a positional name for anonymous types.
func derivedName(t reflect.Type, position int) string {
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Name() == "" {
		return "arg" + strconv.Itoa(position)
	}
	return lowerFirst(t.Name())
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
