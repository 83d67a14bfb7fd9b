package shared

import "context"

// Guard is an authorization predicate evaluated before a handler is
// dispatched. A nil return admits the connection; a non-nil error aborts
// dispatch and surfaces unchanged to the transport layer.
type Guard interface {
	Check(ctx context.Context, conn *Connection) error
}

// GuardFunc adapts a plain function to the Guard interface.
type GuardFunc func(ctx context.Context, conn *Connection) error

func (f GuardFunc) Check(ctx context.Context, conn *Connection) error {
	return f(ctx, conn)
}
