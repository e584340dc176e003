package server

import (
	"context"

	"github.com/vango-dev/tooltip/pkg/protocol"
)

// EventContext is the client event being applied on a session's loop.
type EventContext struct {
	// Context carries values between middleware, such as trace spans.
	Context context.Context

	SessionID string
	Event     protocol.Event
}

// EventHandler applies one client event.
type EventHandler func(ctx *EventContext) error

// Middleware wraps the handler every session applies client events with.
// Middleware run on the session's event loop and must not block.
type Middleware func(next EventHandler) EventHandler

// chain wraps h so that mw[0] runs first.
func chain(h EventHandler, mw []Middleware) EventHandler {
	for i := len(mw) - 1; i >= 0; i-- {
		h = mw[i](h)
	}
	return h
}
