package shared

import "context"

// Kwargs is the set of named arguments passed to a dependency or handler
// invocation. Parameter binding matches keys against the callable's parsed
// parameter names.
type Kwargs map[string]any

// Scope carries the connection-lifecycle state handed to a handler. It is
// the first of the three canonical transport primitives.
type Scope map[string]any

// Message is a single event exchanged over a connection.
type Message map[string]any

// ReceiveFunc pulls the next inbound message for a connection.
type ReceiveFunc func(ctx context.Context) (Message, error)

// SendFunc pushes an outbound message on a connection.
type SendFunc func(ctx context.Context, msg Message) error

// Connection bundles the three transport primitives for a single connection,
// plus the authentication slots guards may consult.
type Connection struct {
	Scope   Scope
	Receive ReceiveFunc
	Send    SendFunc

	// Auth and User are populated by authentication middleware before
	// guards run. Nil when no authentication layer is installed.
	Auth any
	User any
}
