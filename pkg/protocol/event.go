package protocol

import "errors"

// EventType identifies a client pointer event.
type EventType uint8

const (
	EventMouseEnter    EventType = 0x01
	EventMouseLeave    EventType = 0x02
	EventPointerDown   EventType = 0x03
	EventPointerUp     EventType = 0x04
	EventPointerCancel EventType = 0x05
)

// ErrUnknownEventType is returned for an event type byte outside the
// known range.
var ErrUnknownEventType = errors.New("protocol: unknown event type")

// String returns the string representation of the event type.
func (et EventType) String() string {
	switch et {
	case EventMouseEnter:
		return "MouseEnter"
	case EventMouseLeave:
		return "MouseLeave"
	case EventPointerDown:
		return "PointerDown"
	case EventPointerUp:
		return "PointerUp"
	case EventPointerCancel:
		return "PointerCancel"
	default:
		return "Unknown"
	}
}

// Event is a pointer event on the element with hydration ID HID.
//
// Wire format: [Type: 1 byte][HID: len-prefixed string]
type Event struct {
	Type EventType
	HID  string
}

// EncodeEvent encodes an Event payload.
func EncodeEvent(ev *Event) []byte {
	e := NewEncoder()
	e.WriteByte(byte(ev.Type))
	e.WriteString(ev.HID)
	return e.Bytes()
}

// DecodeEvent decodes an Event payload.
func DecodeEvent(data []byte) (*Event, error) {
	d := NewDecoder(data)
	t, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	et := EventType(t)
	if et < EventMouseEnter || et > EventPointerCancel {
		return nil, ErrUnknownEventType
	}
	hid, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	if err := d.done(); err != nil {
		return nil, err
	}
	return &Event{Type: et, HID: hid}, nil
}
