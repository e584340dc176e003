package protocol

// ErrorCode identifies the type of error.
type ErrorCode uint16

const (
	ErrUnknown       ErrorCode = 0x0000 // Unknown error
	ErrInvalidFrame  ErrorCode = 0x0001 // Malformed frame
	ErrInvalidEvent  ErrorCode = 0x0002 // Malformed event
	ErrUnknownTarget ErrorCode = 0x0003 // No element for HID
	ErrServerError   ErrorCode = 0x0100 // Internal server error
)

// String returns the string representation of the error code.
func (ec ErrorCode) String() string {
	switch ec {
	case ErrInvalidFrame:
		return "InvalidFrame"
	case ErrInvalidEvent:
		return "InvalidEvent"
	case ErrUnknownTarget:
		return "UnknownTarget"
	case ErrServerError:
		return "ServerError"
	default:
		return "Unknown"
	}
}

// ErrorMessage is sent when an error occurs.
type ErrorMessage struct {
	Code    ErrorCode
	Message string
	Fatal   bool // If true, the connection is closed after sending
}

// NewError creates a non-fatal ErrorMessage.
func NewError(code ErrorCode, message string) *ErrorMessage {
	return &ErrorMessage{Code: code, Message: message}
}

// EncodeErrorMessage encodes an ErrorMessage payload.
func EncodeErrorMessage(em *ErrorMessage) []byte {
	e := NewEncoder()
	e.WriteUint16(uint16(em.Code))
	e.WriteString(em.Message)
	e.WriteBool(em.Fatal)
	return e.Bytes()
}

// DecodeErrorMessage decodes an ErrorMessage payload.
func DecodeErrorMessage(data []byte) (*ErrorMessage, error) {
	d := NewDecoder(data)
	code, err := d.ReadUint16()
	if err != nil {
		return nil, err
	}
	message, err := d.ReadString()
	if err != nil {
		return nil, err
	}
	fatal, err := d.ReadBool()
	if err != nil {
		return nil, err
	}
	return &ErrorMessage{Code: ErrorCode(code), Message: message, Fatal: fatal}, nil
}

// Error implements the error interface.
func (em *ErrorMessage) Error() string {
	if em.Fatal {
		return "fatal: " + em.Code.String() + ": " + em.Message
	}
	return em.Code.String() + ": " + em.Message
}
