package protocol

// ProtocolVersion represents a protocol version as major.minor.
type ProtocolVersion struct {
	Major uint8
	Minor uint8
}

// CurrentVersion is the current protocol version.
var CurrentVersion = ProtocolVersion{Major: 1, Minor: 0}

// Hello is the first frame the server sends on a new connection.
type Hello struct {
	Version   ProtocolVersion
	SessionID string
	// HTML is the server-rendered document, hydration IDs included.
	HTML string
}

// EncodeHello encodes a Hello payload.
func EncodeHello(h *Hello) []byte {
	e := NewEncoder()
	e.WriteByte(h.Version.Major)
	e.WriteByte(h.Version.Minor)
	e.WriteString(h.SessionID)
	e.WriteString(h.HTML)
	return e.Bytes()
}

// DecodeHello decodes a Hello payload.
func DecodeHello(data []byte) (*Hello, error) {
	d := NewDecoder(data)
	var h Hello
	var err error
	if h.Version.Major, err = d.ReadByte(); err != nil {
		return nil, err
	}
	if h.Version.Minor, err = d.ReadByte(); err != nil {
		return nil, err
	}
	if h.SessionID, err = d.ReadString(); err != nil {
		return nil, err
	}
	if h.HTML, err = d.ReadString(); err != nil {
		return nil, err
	}
	if err := d.done(); err != nil {
		return nil, err
	}
	return &h, nil
}
