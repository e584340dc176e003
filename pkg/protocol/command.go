package protocol

import "errors"

// CommandOp identifies a popover command.
type CommandOp uint8

const (
	OpOpen  CommandOp = 0x01
	OpClose CommandOp = 0x02
)

// ErrUnknownCommand is returned for an unknown command op.
var ErrUnknownCommand = errors.New("protocol: unknown command op")

// String returns the string representation of the op.
func (op CommandOp) String() string {
	switch op {
	case OpOpen:
		return "Open"
	case OpClose:
		return "Close"
	default:
		return "Unknown"
	}
}

// Command tells the client to show or remove a popover.
//
// Open:  [Op][PopoverID: uvarint][AnchorHID][Position][HTML]
// Close: [Op][PopoverID: uvarint]
type Command struct {
	Op        CommandOp
	PopoverID uint64
	AnchorHID string
	Position  string
	HTML      string
}

// EncodeCommand encodes a Command payload.
func EncodeCommand(c *Command) []byte {
	e := NewEncoder()
	e.WriteByte(byte(c.Op))
	e.WriteUvarint(c.PopoverID)
	if c.Op == OpOpen {
		e.WriteString(c.AnchorHID)
		e.WriteString(c.Position)
		e.WriteString(c.HTML)
	}
	return e.Bytes()
}

// DecodeCommand decodes a Command payload.
func DecodeCommand(data []byte) (*Command, error) {
	d := NewDecoder(data)
	op, err := d.ReadByte()
	if err != nil {
		return nil, err
	}
	c := &Command{Op: CommandOp(op)}
	if c.Op != OpOpen && c.Op != OpClose {
		return nil, ErrUnknownCommand
	}
	if c.PopoverID, err = d.ReadUvarint(); err != nil {
		return nil, err
	}
	if c.Op == OpOpen {
		if c.AnchorHID, err = d.ReadString(); err != nil {
			return nil, err
		}
		if c.Position, err = d.ReadString(); err != nil {
			return nil, err
		}
		if c.HTML, err = d.ReadString(); err != nil {
			return nil, err
		}
	}
	if err := d.done(); err != nil {
		return nil, err
	}
	return c, nil
}
