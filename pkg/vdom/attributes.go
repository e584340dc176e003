package vdom

import "strings"

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// Identity attributes

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// Data creates a data-* attribute.
// Example: Data("id", "123") → data-id="123"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Key sets the reconciliation key.
func Key(key string) Attr { return attr("key", key) }

// Accessibility attributes

// Role sets the role attribute.
func Role(role string) Attr { return attr("role", role) }

// Form attributes

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Name sets the name attribute.
func Name(name string) Attr { return attr("name", name) }

// Disabled sets the disabled attribute.
func Disabled() Attr { return attr("disabled", true) }
