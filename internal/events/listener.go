package events

import "github.com/google/uuid"

// Handler receives events for the categories its listener is subscribed to.
type Handler func(Event)

// Listener is a subscription handle. Funcs are not comparable in Go, so the
// dispatcher keys subscriptions on the *Listener pointer: two listeners built
// from the same Handler are still distinct subscriptions.
//
// A Listener is not owned by the dispatcher. After Unsubscribe it can be
// subscribed again, to the same or another category.
type Listener struct {
	id string
	fn Handler
}

// NewListener wraps fn in a new subscription handle.
func NewListener(fn Handler) *Listener {
	return &Listener{id: uuid.NewString(), fn: fn}
}

// ID is an opaque identifier used in diagnostics.
func (l *Listener) ID() string {
	if l == nil {
		return ""
	}
	return l.id
}

func (l *Listener) valid() bool { return l != nil && l.fn != nil }
