package protocol

import (
	"errors"
	"io"
)

const (
	// FrameHeaderSize is the size of the frame header in bytes.
	FrameHeaderSize = 4

	// MaxPayloadSize is the maximum payload size (2^16 - 1 bytes).
	MaxPayloadSize = 65535
)

// FrameType identifies the type of frame.
type FrameType uint8

const (
	FrameHello   FrameType = 0x00 // Session greeting
	FrameEvent   FrameType = 0x01 // Client → Server events
	FrameCommand FrameType = 0x02 // Server → Client popover commands
	FrameError   FrameType = 0x05 // Error message
)

// String returns the string representation of the frame type.
func (ft FrameType) String() string {
	switch ft {
	case FrameHello:
		return "Hello"
	case FrameEvent:
		return "Event"
	case FrameCommand:
		return "Command"
	case FrameError:
		return "Error"
	default:
		return "Unknown"
	}
}

// FrameFlags is the reserved header byte. Senders write zero; receivers
// pass it through untouched.
type FrameFlags uint8

var (
	ErrFrameTooLarge    = errors.New("protocol: frame payload too large")
	ErrInvalidFrameType = errors.New("protocol: invalid frame type")
)

// Frame is a header plus payload.
type Frame struct {
	Type    FrameType
	Flags   FrameFlags
	Payload []byte
}

// NewFrame creates a frame with no flags.
func NewFrame(ft FrameType, payload []byte) *Frame {
	return &Frame{Type: ft, Payload: payload}
}

// Encode encodes the frame to bytes including the header.
func (f *Frame) Encode() ([]byte, error) {
	length := len(f.Payload)
	if length > MaxPayloadSize {
		return nil, ErrFrameTooLarge
	}
	buf := make([]byte, FrameHeaderSize+length)
	buf[0] = byte(f.Type)
	buf[1] = byte(f.Flags)
	buf[2] = byte(length >> 8)
	buf[3] = byte(length)
	copy(buf[FrameHeaderSize:], f.Payload)
	return buf, nil
}

// DecodeFrame decodes a single frame. Trailing bytes are an error since a
// websocket message carries exactly one frame.
func DecodeFrame(data []byte) (*Frame, error) {
	if len(data) < FrameHeaderSize {
		return nil, io.ErrUnexpectedEOF
	}
	length := int(data[2])<<8 | int(data[3])
	switch {
	case len(data) < FrameHeaderSize+length:
		return nil, io.ErrUnexpectedEOF
	case len(data) > FrameHeaderSize+length:
		return nil, ErrTrailingBytes
	}

	payload := make([]byte, length)
	copy(payload, data[FrameHeaderSize:])
	return &Frame{
		Type:    FrameType(data[0]),
		Flags:   FrameFlags(data[1]),
		Payload: payload,
	}, nil
}
