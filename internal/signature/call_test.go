package signature

import (
	"context"
	"reflect"
	"testing"
	"time"

	stderrors "errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/gantry/internal/errors"
	"github.com/xraph/gantry/internal/shared"
)

func TestCall(t *testing.T) {
	t.Run("binds kwargs map whole", func(t *testing.T) {
		fn := func(kwargs shared.Kwargs) int { return len(kwargs) }
		got, err := Call(context.Background(), fn, shared.Kwargs{"a": 1, "b": 2}, nil)
		require.NoError(t, err)
		assert.Equal(t, 2, got)
	})

	t.Run("binds canonical transport parameters", func(t *testing.T) {
		var gotScope shared.Scope
		fn := func(ctx context.Context, scope shared.Scope, send shared.SendFunc) error {
			gotScope = scope
			return send(ctx, shared.Message{"type": "done"})
		}

		var sent shared.Message
		kwargs := shared.Kwargs{
			"scope": shared.Scope{"path": "/health"},
			"send": shared.SendFunc(func(ctx context.Context, msg shared.Message) error {
				sent = msg
				return nil
			}),
		}
		_, err := Call(context.Background(), fn, kwargs, nil)
		require.NoError(t, err)
		assert.Equal(t, "/health", gotScope["path"])
		assert.Equal(t, "done", sent["type"])
	})

	t.Run("missing argument fails", func(t *testing.T) {
		fn := func(scope shared.Scope) {}
		_, err := Call(context.Background(), fn, shared.Kwargs{}, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing required argument 'scope'")
	})

	t.Run("first result wins even when nil", func(t *testing.T) {
		fn := func() (*database, string) { return nil, "fallback" }
		got, err := Call(context.Background(), fn, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, (*database)(nil), got)
	})

	t.Run("error result propagates verbatim", func(t *testing.T) {
		boom := stderrors.New("boom")
		fn := func() (string, error) { return "", boom }
		_, err := Call(context.Background(), fn, nil, nil)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("nil context defaults to background", func(t *testing.T) {
		fn := func(ctx context.Context) error {
			require.NotNil(t, ctx)
			return nil
		}
		_, err := Call(nil, fn, nil, nil)
		require.NoError(t, err)
	})

	t.Run("struct parameter filled from kwargs", func(t *testing.T) {
		fn := func(deps sessionDeps) int { return deps.Timeout }
		kwargs := shared.Kwargs{"db": &database{DSN: "test"}, "timeout": 30}
		got, err := Call(context.Background(), fn, kwargs, nil)
		require.NoError(t, err)
		assert.Equal(t, 30, got)
	})

	t.Run("struct fields without kwargs stay zero", func(t *testing.T) {
		fn := func(deps sessionDeps) *database { return deps.DB }
		got, err := Call(context.Background(), fn, shared.Kwargs{"timeout": 5}, nil)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("decoder coerces mismatched types", func(t *testing.T) {
		decoders := []TypeDecoder{{
			Match: func(target reflect.Type) bool { return target == reflect.TypeOf(time.Duration(0)) },
			Decode: func(target reflect.Type, value any) (any, error) {
				return time.ParseDuration(value.(string))
			},
		}}
		fn := func(duration time.Duration) time.Duration { return duration }
		got, err := Call(context.Background(), fn, shared.Kwargs{"duration": "5s"}, decoders)
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, got)
	})

	t.Run("convertible types convert without decoder", func(t *testing.T) {
		type port int64
		fn := func(p port) port { return p }
		got, err := Call(context.Background(), fn, shared.Kwargs{"port": 7}, nil)
		require.NoError(t, err)
		assert.Equal(t, port(7), got)
	})

	t.Run("incompatible type fails", func(t *testing.T) {
		type port int64
		fn := func(p port) port { return p }
		_, err := Call(context.Background(), fn, shared.Kwargs{"port": []string{"x"}}, nil)
		require.Error(t, err)
	})

	t.Run("object dependency invoked via Call method", func(t *testing.T) {
		got, err := Call(context.Background(), callObject{}, shared.Kwargs{"value": "x"}, nil)
		require.NoError(t, err)
		assert.Equal(t, "x", got)
	})
}

func TestPartial(t *testing.T) {
	fn := func(scope shared.Scope, message shared.Message) string {
		return scope["route"].(string) + ":" + message["type"].(string)
	}

	t.Run("bound arguments merge with call-time arguments", func(t *testing.T) {
		p := NewPartial(fn, shared.Kwargs{"scope": shared.Scope{"route": "a"}})
		got, err := p.Call(context.Background(), shared.Kwargs{"message": shared.Message{"type": "ping"}})
		require.NoError(t, err)
		assert.Equal(t, "a:ping", got)
	})

	t.Run("call-time arguments win over bound", func(t *testing.T) {
		p := NewPartial(fn, shared.Kwargs{
			"scope":   shared.Scope{"route": "a"},
			"message": shared.Message{"type": "ping"},
		})
		got, err := p.Call(context.Background(), shared.Kwargs{"message": shared.Message{"type": "pong"}})
		require.NoError(t, err)
		assert.Equal(t, "a:pong", got)
	})

	t.Run("unwrap reaches the innermost callable", func(t *testing.T) {
		inner := func() int { return 1 }
		wrapped := NewPartial(NewPartial(inner, nil), nil)
		unwrapped := UnwrapPartial(wrapped)
		assert.Equal(t,
			reflect.ValueOf(inner).Pointer(),
			reflect.ValueOf(unwrapped).Pointer())
	})
}

func TestModel(t *testing.T) {
	fn := func(scope shared.Scope, db *database) *database { return db }
	sig, err := FromCallable(fn, nil)
	require.NoError(t, err)

	t.Run("requires a parsed signature", func(t *testing.T) {
		_, err := NewModel(nil, fn, nil, nil, nil)
		require.Error(t, err)
		assert.True(t, errors.IsConfigError(err))
	})

	t.Run("dependency parameters come from the key set", func(t *testing.T) {
		model, err := NewModel([]string{"dSN", "unused"}, fn, sig, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"dSN"}, model.DependencyParameters())
	})

	t.Run("validate flags missing non-dependency arguments", func(t *testing.T) {
		model, err := NewModel([]string{"dSN"}, fn, sig, nil, nil)
		require.NoError(t, err)

		assert.NoError(t, model.Validate(shared.Kwargs{"scope": shared.Scope{}}))

		err = model.Validate(shared.Kwargs{})
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("invoke validates then calls", func(t *testing.T) {
		simple := func(scope shared.Scope) int { return len(scope) }
		simpleSig, err := FromCallable(simple, nil)
		require.NoError(t, err)
		model, err := NewModel(nil, simple, simpleSig, nil, nil)
		require.NoError(t, err)

		got, err := model.Invoke(context.Background(), shared.Kwargs{"scope": shared.Scope{"k": 1}})
		require.NoError(t, err)
		assert.Equal(t, 1, got)

		_, err = model.Invoke(context.Background(), shared.Kwargs{})
		require.Error(t, err)
		assert.True(t, errors.IsValidationError(err))
	})
}
