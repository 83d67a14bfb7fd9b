package signature

import (
	"context"
	"fmt"
	"reflect"

	"github.com/xraph/gantry/internal/shared"
)

// Call invokes a callable with named arguments, binding kwargs to the entry
// point's parameters by the same naming rules FromCallable uses. A leading
// context.Context parameter receives ctx. The result is the first non-error
// return value (nil when the callable produces none); an error result is
// propagated verbatim.
func Call(ctx context.Context, callable any, kwargs shared.Kwargs, decoders []TypeDecoder) (any, error) {
	entry, _, err := EntryPoint(callable)
	if err != nil {
		return nil, err
	}
	t := entry.Type()
	if t.IsVariadic() {
		return nil, fmt.Errorf("variadic callables are not supported")
	}

	args := make([]reflect.Value, 0, t.NumIn())
	start := 0
	if t.NumIn() > 0 && t.In(0) == ctxType {
		if ctx == nil {
			ctx = context.Background()
		}
		args = append(args, reflect.ValueOf(ctx))
		start = 1
	}

	for i := start; i < t.NumIn(); i++ {
		arg, err := bindParam(t.In(i), i, kwargs, decoders)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	results := entry.Call(args)

	var value any
	valueSet := false
	var callErr error
	for _, r := range results {
		if r.Type() == errType {
			if !r.IsNil() {
				callErr = r.Interface().(error)
			}
			continue
		}
		if !valueSet {
			value = r.Interface()
			valueSet = true
		}
	}
	if callErr != nil {
		return nil, callErr
	}
	return value, nil
}

// bindParam produces the argument for one parameter from kwargs.
func bindParam(t reflect.Type, position int, kwargs shared.Kwargs, decoders []TypeDecoder) (reflect.Value, error) {
	if t == kwargsType {
		return reflect.ValueOf(kwargs), nil
	}

	if name := canonicalName(t); name != "" {
		raw, ok := kwargs[name]
		if !ok {
			return reflect.Value{}, fmt.Errorf("missing required argument '%s'", name)
		}
		return coerce(t, raw, decoders)
	}

	if isStructParam(t) {
		return bindStruct(t, kwargs, decoders)
	}

	name := derivedName(t, position)
	raw, ok := kwargs[name]
	if !ok {
		return reflect.Value{}, fmt.Errorf("missing required argument '%s'", name)
	}
	return coerce(t, raw, decoders)
}

func isStructParam(t reflect.Type) bool {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}

// bindStruct fills a struct parameter's exported fields from kwargs by
// field name (or `dep` tag). Fields with no matching kwarg keep their zero
// value.
func bindStruct(t reflect.Type, kwargs shared.Kwargs, decoders []TypeDecoder) (reflect.Value, error) {
	isPtr := t.Kind() == reflect.Ptr
	st := t
	if isPtr {
		st = t.Elem()
	}
	out := reflect.New(st).Elem()
	for i := 0; i < st.NumField(); i++ {
		field := st.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Tag.Get("dep")
		if name == "" {
			name = lowerFirst(field.Name)
		}
		raw, ok := kwargs[name]
		if !ok {
			continue
		}
		v, err := coerce(field.Type, raw, decoders)
		if err != nil {
			return reflect.Value{}, fmt.Errorf("argument '%s': %w", name, err)
		}
		out.Field(i).Set(v)
	}
	if isPtr {
		return out.Addr(), nil
	}
	return out, nil
}

// coerce converts a raw kwarg value to the target type: direct assignment,
// then the first matching decoder, then Go convertibility.
func coerce(t reflect.Type, raw any, decoders []TypeDecoder) (reflect.Value, error) {
	if raw == nil {
		switch t.Kind() {
		case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("cannot bind nil to %v", t)
	}

	rv := reflect.ValueOf(raw)
	if rv.Type().AssignableTo(t) {
		return rv, nil
	}

	for _, d := range decoders {
		if d.Match == nil || d.Decode == nil || !d.Match(t) {
			continue
		}
		decoded, err := d.Decode(t, raw)
		if err != nil {
			return reflect.Value{}, err
		}
		dv := reflect.ValueOf(decoded)
		if !dv.Type().AssignableTo(t) {
			return reflect.Value{}, fmt.Errorf("decoder produced %v, want %v", dv.Type(), t)
		}
		return dv, nil
	}

	if rv.Type().ConvertibleTo(t) {
		return rv.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("cannot bind %v to %v", rv.Type(), t)
}
