// Package popover opens and closes floating surfaces anchored to elements.
//
// Service is the narrow interface the tooltip controller depends on.
// Manager is the default implementation: it renders the content inside a
// wrapper element, tracks which popovers are open, and emits
// EventOpen/EventClose to a Sink (for example a WebSocket session that
// forwards them to the browser).
//
//	m := popover.NewManager(sink)
//	h, err := m.Open(anchor, vdom.Text("hello"), popover.Options{Position: popover.PositionTop})
//	...
//	m.Close(h)
//
// Placement geometry is left to the client; Position is only a hint.
package popover
