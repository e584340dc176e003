package vdom

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// createElement creates a new VNode with the given tag and arguments.
// Arguments can be: nil, Attr, []Attr, *VNode, []*VNode, string.
func createElement(tag string, args []any) *VNode {
	node := &VNode{
		Kind:     KindElement,
		Tag:      tag,
		Props:    make(Props),
		Children: make([]*VNode, 0),
	}

	children := make([]any, 0, len(args))
	for _, arg := range args {
		switch v := arg.(type) {
		case Attr:
			setAttr(node, v)
		case []Attr:
			for _, a := range v {
				setAttr(node, a)
			}
		default:
			children = append(children, arg)
		}
	}
	appendChildren(node, children)

	return node
}

func setAttr(node *VNode, a Attr) {
	if a.IsEmpty() {
		return
	}
	if a.Key == "key" {
		if s, ok := a.Value.(string); ok {
			node.Key = s
		}
		return
	}
	node.Props[a.Key] = a.Value
}

// El creates an element with an arbitrary tag.
func El(tag string, args ...any) *VNode { return createElement(tag, args) }

// Document structure elements

func Section(args ...any) *VNode { return createElement("section", args) }
func Header(args ...any) *VNode  { return createElement("header", args) }
func Footer(args ...any) *VNode  { return createElement("footer", args) }
func H1(args ...any) *VNode      { return createElement("h1", args) }

// Content elements

func Div(args ...any) *VNode  { return createElement("div", args) }
func P(args ...any) *VNode    { return createElement("p", args) }
func Span(args ...any) *VNode { return createElement("span", args) }
func Ul(args ...any) *VNode   { return createElement("ul", args) }
func Li(args ...any) *VNode   { return createElement("li", args) }

// Inline elements

func B(args ...any) *VNode     { return createElement("b", args) }
func I(args ...any) *VNode     { return createElement("i", args) }
func Small(args ...any) *VNode { return createElement("small", args) }

// Form elements

func Button(args ...any) *VNode { return createElement("button", args) }
func Input(args ...any) *VNode  { return createElement("input", args) }
