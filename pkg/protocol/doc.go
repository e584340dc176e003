// Package protocol implements the binary wire protocol between a browser
// and the tooltip server.
//
// Pointer events flow from client to server; popover commands flow from
// server to client. Every message travels in a frame with a 4-byte header:
//
//	┌─────────────┬──────────────┬───────────────────────────────┐
//	│ Frame Type  │ Flags        │ Payload Length                │
//	│ (1 byte)    │ (1 byte)     │ (2 bytes, big-endian)         │
//	└─────────────┴──────────────┴───────────────────────────────┘
//
// # Frame Types
//
//   - FrameHello (0x00): Server → Client session greeting
//   - FrameEvent (0x01): Client → Server pointer event
//   - FrameCommand (0x02): Server → Client popover open/close
//   - FrameError (0x05): Error message
//
// # Encoding
//
// Integers use protobuf-style varints, strings and byte slices are
// prefixed with their varint length, fixed-width integers are big-endian.
//
// A mouseenter on the element with hydration ID "h3":
//
//	[Type: 0x01][HID: len-prefixed "h3"]
//	Total: 4 bytes
package protocol
