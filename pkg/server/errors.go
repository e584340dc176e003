package server

import "errors"

var (
	// ErrSessionClosed is returned when writing to or dispatching on a
	// closed session.
	ErrSessionClosed = errors.New("server: session closed")

	// ErrEventQueueFull is returned when a session's event queue is full.
	ErrEventQueueFull = errors.New("server: event queue full")
)

// ErrUnknownTarget is returned by the event handler when an enter or
// press names an element the session's document does not contain.
var ErrUnknownTarget = errors.New("server: unknown event target")
