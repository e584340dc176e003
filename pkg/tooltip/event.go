package tooltip

import (
	"github.com/vango-dev/tooltip/pkg/popover"
	"github.com/vango-dev/tooltip/pkg/vdom"
)

// EventType identifies an interaction the controller reacts to.
type EventType uint8

const (
	EventEnter EventType = iota + 1
	EventLeave
	EventPointerDown
	EventPointerUp
	EventPointerCancel
	EventRemoved
)

// String returns the event name.
func (t EventType) String() string {
	switch t {
	case EventEnter:
		return "enter"
	case EventLeave:
		return "leave"
	case EventPointerDown:
		return "pointerdown"
	case EventPointerUp:
		return "pointerup"
	case EventPointerCancel:
		return "pointercancel"
	case EventRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Event is an interaction on a target node.
type Event struct {
	Type   EventType
	Target *vdom.VNode
}

// State is a snapshot of the active session.
type State struct {
	Anchor  *vdom.VNode
	Mode    Mode
	Pending bool
	Shown   bool
	Handle  popover.Handle
}
