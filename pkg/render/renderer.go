package render

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/vango-dev/tooltip/pkg/vdom"
)

// RendererConfig configures the HTML renderer.
type RendererConfig struct {
	// Pretty enables pretty-printed HTML output with indentation.
	// Should only be used in development as it increases output size.
	Pretty bool

	// Indent is the string used for each indentation level in pretty mode.
	// Defaults to two spaces if not specified.
	Indent string

	// IncludeHIDs writes data-hid attributes for elements that carry a
	// hydration ID, so a thin client can map DOM nodes back to VNodes.
	IncludeHIDs bool
}

// Renderer renders VNode trees to HTML.
// A Renderer holds no per-render state and may be shared.
type Renderer struct {
	config RendererConfig
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RendererConfig) *Renderer {
	if config.Indent == "" {
		config.Indent = "  "
	}
	return &Renderer{config: config}
}

// RenderToString renders a VNode tree to an HTML string.
func (r *Renderer) RenderToString(node *vdom.VNode) (string, error) {
	var buf bytes.Buffer
	if err := r.RenderToWriter(&buf, node); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToWriter streams a VNode tree to the given writer.
func (r *Renderer) RenderToWriter(w io.Writer, node *vdom.VNode) error {
	return r.renderNode(w, node, 0)
}

// RenderInner renders only the children of node, the equivalent of an
// element's innerHTML.
func (r *Renderer) RenderInner(node *vdom.VNode) (string, error) {
	if node == nil {
		return "", nil
	}
	var buf bytes.Buffer
	for _, child := range node.Children {
		if err := r.renderNode(&buf, child, 0); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// renderNode dispatches rendering based on node kind.
func (r *Renderer) renderNode(w io.Writer, node *vdom.VNode, depth int) error {
	if node == nil {
		return nil
	}

	switch node.Kind {
	case vdom.KindElement:
		return r.renderElement(w, node, depth)
	case vdom.KindText:
		_, err := io.WriteString(w, escapeHTML(node.Text))
		return err
	case vdom.KindFragment:
		for _, child := range node.Children {
			if err := r.renderNode(w, child, depth); err != nil {
				return err
			}
		}
		return nil
	case vdom.KindRaw:
		_, err := io.WriteString(w, node.Text)
		return err
	default:
		return fmt.Errorf("render: unknown node kind: %d", node.Kind)
	}
}

// renderElement renders an HTML element with its attributes and children.
func (r *Renderer) renderElement(w io.Writer, node *vdom.VNode, depth int) error {
	tag := node.Tag
	if tag == "" {
		return fmt.Errorf("render: element without tag")
	}

	if r.config.Pretty && depth > 0 {
		r.writeIndent(w, depth)
	}

	if _, err := fmt.Fprintf(w, "<%s", tag); err != nil {
		return err
	}
	if err := r.renderAttributes(w, node); err != nil {
		return err
	}
	if r.config.IncludeHIDs && node.HID != "" {
		if _, err := fmt.Fprintf(w, ` data-hid="%s"`, escapeAttr(node.HID)); err != nil {
			return err
		}
	}
	if _, err := io.WriteString(w, ">"); err != nil {
		return err
	}

	if vdom.IsVoidElement(tag) {
		if r.config.Pretty {
			io.WriteString(w, "\n")
		}
		return nil
	}

	block := hasElementChild(node) && !inlineElements[tag]
	if r.config.Pretty && block {
		io.WriteString(w, "\n")
	}
	for _, child := range node.Children {
		if err := r.renderNode(w, child, depth+1); err != nil {
			return err
		}
	}
	if r.config.Pretty && block {
		r.writeIndent(w, depth)
	}

	if _, err := fmt.Fprintf(w, "</%s>", tag); err != nil {
		return err
	}
	if r.config.Pretty {
		io.WriteString(w, "\n")
	}
	return nil
}

// renderAttributes renders all attributes for an element in sorted order.
func (r *Renderer) renderAttributes(w io.Writer, node *vdom.VNode) error {
	if len(node.Props) == 0 {
		return nil
	}

	keys := make([]string, 0, len(node.Props))
	for key := range node.Props {
		if strings.HasPrefix(key, "_") || key == "key" {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		value := node.Props[key]
		if value == nil {
			continue
		}

		if b, ok := value.(bool); ok && booleanAttrs[key] {
			if b {
				if _, err := fmt.Fprintf(w, " %s", key); err != nil {
					return err
				}
			}
			continue
		}

		s, _ := node.AttrString(key)
		// data-* attributes are meaningful even when empty (data-tooltip="").
		if s == "" && !strings.HasPrefix(key, "data-") {
			continue
		}
		if _, err := fmt.Fprintf(w, ` %s="%s"`, key, escapeAttr(s)); err != nil {
			return err
		}
	}
	return nil
}

func hasElementChild(node *vdom.VNode) bool {
	for _, c := range node.Children {
		if c.IsElement() {
			return true
		}
	}
	return false
}

// writeIndent writes indentation for pretty printing.
func (r *Renderer) writeIndent(w io.Writer, depth int) {
	for i := 0; i < depth; i++ {
		io.WriteString(w, r.config.Indent)
	}
}

var booleanAttrs = map[string]bool{
	"autofocus": true,
	"checked":   true,
	"disabled":  true,
	"hidden":    true,
	"multiple":  true,
	"open":      true,
	"readonly":  true,
	"required":  true,
	"selected":  true,
}

// inlineElements don't get newlines in pretty-printed output.
var inlineElements = map[string]bool{
	"a":      true,
	"b":      true,
	"code":   true,
	"em":     true,
	"i":      true,
	"small":  true,
	"span":   true,
	"strong": true,
}

var (
	htmlEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)
	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
		"\n", "&#10;",
		"\r", "&#13;",
		"\t", "&#9;",
	)
)

// escapeHTML escapes text for safe inclusion in HTML content.
func escapeHTML(s string) string { return htmlEscaper.Replace(s) }

// escapeAttr escapes text for attribute values, including whitespace
// characters that could break attribute parsing.
func escapeAttr(s string) string { return attrEscaper.Replace(s) }
