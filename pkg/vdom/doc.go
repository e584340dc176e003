// Package vdom provides the virtual DOM used by the tooltip controller.
//
// VNode is the building block for elements, text, fragments and raw HTML.
// Elements are created using variadic factory functions:
//
//	Div(Class("toolbar"),
//	    Button(ID("save"), Tooltip("Save changes"), Text("Save")),
//	    Button(TooltipTemplate("shortcut"), TooltipInfo(map[string]any{"key": "S"})),
//	)
//
// # Documents
//
// A Document mounts a tree and indexes parent links so that upward
// lookups (Closest), attachment checks (Contains) and structural
// mutations (Append, Remove) are explicit operations rather than pointer
// chasing. Observers registered with Observe are told about every
// subtree that is attached or detached.
//
// # Hydration
//
// AssignHIDs gives every element a hydration ID. Thin clients address
// elements by HID when reporting pointer events.
package vdom
