package vdom

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement  VKind = iota // <div>, <button>, etc.
	KindText                  // Plain text node
	KindFragment              // Grouping without wrapper
	KindRaw                   // Raw HTML (dangerous)
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// VNode is the virtual DOM node.
type VNode struct {
	Kind     VKind    // Node type
	Tag      string   // Element tag name (e.g., "div")
	Props    Props    // Attributes
	Children []*VNode // Child nodes
	Key      string   // Reconciliation key
	Text     string   // For KindText and KindRaw
	HID      string   // Hydration ID (assigned by Document.AssignHIDs)
}

// Props holds element attributes.
type Props map[string]any

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// IsElement reports whether v is a non-nil element node.
func (v *VNode) IsElement() bool {
	return v != nil && v.Kind == KindElement
}

// Has reports whether the attribute key is present on the node,
// regardless of its value.
func (v *VNode) Has(key string) bool {
	if v == nil || v.Props == nil {
		return false
	}
	_, ok := v.Props[key]
	return ok
}

// AttrString returns the attribute value as a string and whether it was set.
// Booleans render as "true"/"false"; nil values are treated as absent.
func (v *VNode) AttrString(key string) (string, bool) {
	if v == nil || v.Props == nil {
		return "", false
	}
	val, ok := v.Props[key]
	if !ok || val == nil {
		return "", false
	}
	return stringify(val), true
}

// TextContent returns the concatenated text of the node and its descendants.
func (v *VNode) TextContent() string {
	if v == nil {
		return ""
	}
	switch v.Kind {
	case KindText:
		return v.Text
	case KindRaw:
		return ""
	}
	var out string
	for _, c := range v.Children {
		out += c.TextContent()
	}
	return out
}
