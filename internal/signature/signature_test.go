package signature

import (
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/gantry/internal/errors"
	"github.com/xraph/gantry/internal/shared"
)

type callObject struct{}

func (callObject) Call(kwargs shared.Kwargs) (any, error) {
	return kwargs["value"], nil
}

type sessionDeps struct {
	DB      *database `dep:"db"`
	Timeout int
}

type database struct {
	DSN string
}

func TestEntryPoint(t *testing.T) {
	t.Run("func is its own entry point", func(t *testing.T) {
		entry, isObject, err := EntryPoint(func() int { return 1 })
		require.NoError(t, err)
		assert.False(t, isObject)
		assert.Equal(t, reflect.Func, entry.Kind())
	})

	t.Run("object with Call method", func(t *testing.T) {
		entry, isObject, err := EntryPoint(callObject{})
		require.NoError(t, err)
		assert.True(t, isObject)
		assert.Equal(t, reflect.Func, entry.Kind())
	})

	t.Run("nil is rejected", func(t *testing.T) {
		_, _, err := EntryPoint(nil)
		require.Error(t, err)
		assert.True(t, errors.IsConfigError(err))
	})

	t.Run("nil func value is rejected", func(t *testing.T) {
		var fn func() int
		_, _, err := EntryPoint(fn)
		require.Error(t, err)
		assert.True(t, errors.IsConfigError(err))
	})

	t.Run("plain value is rejected", func(t *testing.T) {
		_, _, err := EntryPoint(42)
		require.Error(t, err)
		assert.True(t, errors.IsConfigError(err))
	})
}

func TestIsAsyncCallable(t *testing.T) {
	tests := []struct {
		name     string
		callable any
		want     bool
	}{
		{"context first param", func(ctx context.Context) error { return nil }, true},
		{"no context", func() error { return nil }, false},
		{"context not first", func(s string, ctx context.Context) error { return nil }, false},
		{"no params", func() {}, false},
		{"object without context", callObject{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAsyncCallable(tt.callable))
		})
	}
}

func TestIsGeneratorCallable(t *testing.T) {
	tests := []struct {
		name     string
		callable any
		want     bool
	}{
		{"returns seq", func() func(yield func(int) bool) { return nil }, true},
		{"returns stream alias", func() shared.Stream { return nil }, true},
		{"returns seq with error", func() (shared.Stream, error) { return nil, nil }, true},
		{"plain return", func() int { return 0 }, false},
		{"func return with wrong shape", func() func(int) bool { return nil }, false},
		{"no return", func() {}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsGeneratorCallable(tt.callable))
		})
	}
}

func TestFromCallable(t *testing.T) {
	t.Run("canonical transport names", func(t *testing.T) {
		fn := func(ctx context.Context, scope shared.Scope, receive shared.ReceiveFunc, send shared.SendFunc) error {
			return nil
		}
		sig, err := FromCallable(fn, nil)
		require.NoError(t, err)
		assert.True(t, sig.Async)
		assert.Equal(t, []string{"scope", "receive", "send"}, sig.ParameterNames())
		assert.Equal(t, NoneType, sig.ReturnType)
	})

	t.Run("context excluded from parameters", func(t *testing.T) {
		sig, err := FromCallable(func(ctx context.Context) error { return nil }, nil)
		require.NoError(t, err)
		assert.True(t, sig.Async)
		assert.Empty(t, sig.Parameters)
	})

	t.Run("struct parameter expands to fields", func(t *testing.T) {
		sig, err := FromCallable(func(deps sessionDeps) int { return 0 }, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"db", "timeout"}, sig.ParameterNames())
		assert.Equal(t, reflect.TypeOf(0), sig.ReturnType)
	})

	t.Run("named type derives parameter name", func(t *testing.T) {
		type sessionID string
		sig, err := FromCallable(func(id sessionID) string { return string(id) }, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"sessionID"}, sig.ParameterNames())
	})

	t.Run("namespace refines any parameter", func(t *testing.T) {
		ns := Namespace{"arg0": reflect.TypeOf("")}
		sig, err := FromCallable(func(v any) any { return v }, ns)
		require.NoError(t, err)
		require.Len(t, sig.Parameters, 1)
		assert.Equal(t, "arg0", sig.Parameters[0].Name)
		assert.Equal(t, reflect.TypeOf(""), sig.Parameters[0].Type)
	})

	t.Run("error-only result maps to none", func(t *testing.T) {
		sig, err := FromCallable(func() error { return nil }, nil)
		require.NoError(t, err)
		assert.Equal(t, NoneType, sig.ReturnType)
	})

	t.Run("first non-error result wins", func(t *testing.T) {
		sig, err := FromCallable(func() (string, error) { return "", nil }, nil)
		require.NoError(t, err)
		assert.Equal(t, reflect.TypeOf(""), sig.ReturnType)
	})

	t.Run("variadic rejected", func(t *testing.T) {
		_, err := FromCallable(func(vals ...int) {}, nil)
		require.Error(t, err)
		assert.True(t, errors.IsConfigError(err))
	})

	t.Run("object dependency parsed via Call method", func(t *testing.T) {
		sig, err := FromCallable(callObject{}, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"kwargs"}, sig.ParameterNames())
	})
}

func TestFromTypedInit(t *testing.T) {
	base := &Signature{
		Parameters: []Parameter{{Name: "db", Type: anyType}, {Name: "count", Type: reflect.TypeOf(0)}},
		ReturnType: reflect.TypeOf(""),
	}
	refined := FromTypedInit(base, Namespace{"db": reflect.TypeOf(&database{})})

	assert.Equal(t, reflect.TypeOf(&database{}), refined.Parameters[0].Type)
	assert.Equal(t, reflect.TypeOf(0), refined.Parameters[1].Type)
	// the input signature is left untouched
	assert.Equal(t, anyType, base.Parameters[0].Type)
}

func TestSignatureHasParameter(t *testing.T) {
	sig := &Signature{Parameters: []Parameter{{Name: "scope"}, {Name: "send"}}}
	assert.True(t, sig.HasParameter("scope"))
	assert.False(t, sig.HasParameter("receive"))
}
