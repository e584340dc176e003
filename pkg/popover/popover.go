package popover

import (
	"errors"
	"strings"

	"github.com/vango-dev/tooltip/pkg/vdom"
)

// Position is the preferred side of the anchor the popover is placed on.
type Position string

const (
	PositionDefault Position = ""
	PositionTop     Position = "top"
	PositionRight   Position = "right"
	PositionBottom  Position = "bottom"
	PositionLeft    Position = "left"
)

// ParsePosition converts an attribute value into a Position.
// Unknown values fall back to PositionDefault.
func ParsePosition(s string) Position {
	switch Position(strings.ToLower(strings.TrimSpace(s))) {
	case PositionTop:
		return PositionTop
	case PositionRight:
		return PositionRight
	case PositionBottom:
		return PositionBottom
	case PositionLeft:
		return PositionLeft
	default:
		return PositionDefault
	}
}

// String returns the position name, "default" for PositionDefault.
func (p Position) String() string {
	if p == PositionDefault {
		return "default"
	}
	return string(p)
}

// Options configures how a popover is opened.
type Options struct {
	// Position is the preferred side. PositionDefault lets the client
	// pick its default placement.
	Position Position

	// Class is appended to the popover wrapper's class list.
	Class string
}

// Handle identifies an open popover. The zero Handle is never issued.
type Handle uint64

// Service opens and closes popovers anchored to elements.
type Service interface {
	// Open renders content in a popover anchored to anchor.
	Open(anchor, content *vdom.VNode, opts Options) (Handle, error)

	// Close closes the popover. Closing an unknown or already closed
	// handle is a no-op.
	Close(h Handle)
}

// Sink receives popover lifecycle events, typically to forward them to a
// connected client.
type Sink interface {
	Emit(name string, data any)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(name string, data any)

// Emit implements Sink.
func (f SinkFunc) Emit(name string, data any) { f(name, data) }

// Event names emitted to the Sink.
const (
	EventOpen  = "popover:open"
	EventClose = "popover:close"
)

// OpenEvent is the payload of EventOpen.
type OpenEvent struct {
	ID        Handle
	AnchorHID string
	Position  Position
	HTML      string
}

// CloseEvent is the payload of EventClose.
type CloseEvent struct {
	ID Handle
}

// Errors returned by Open.
var (
	ErrNoAnchor  = errors.New("popover: anchor is required")
	ErrNoContent = errors.New("popover: content is required")
)
