// Package render provides server-side rendering of VNode trees to HTML.
//
// It is used to turn tooltip content (literal text or a rendered
// template) into the markup carried by popover commands:
//
//	renderer := render.NewRenderer(render.RendererConfig{})
//	html, err := renderer.RenderToString(node)
//
// Text and attribute values are escaped; raw nodes are written verbatim.
// Attributes are emitted in sorted order so output is deterministic.
package render
