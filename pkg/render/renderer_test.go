package render

import (
	"strings"
	"testing"

	"github.com/vango-dev/tooltip/pkg/vdom"
)

func TestRenderText(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, err := renderer.RenderToString(vdom.Text("Hello, World!"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if html != "Hello, World!" {
		t.Errorf("got %q, want %q", html, "Hello, World!")
	}
}

func TestRenderTextEscaping(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	html, err := renderer.RenderToString(vdom.Text("<script>alert('xss')</script>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Errorf("HTML should be escaped, got %q", html)
	}
	if !strings.Contains(html, "&lt;script&gt;") {
		t.Errorf("should contain escaped script tag, got %q", html)
	}
}

func TestRenderElement(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	tests := []struct {
		name string
		node *vdom.VNode
		want string
	}{
		{
			name: "nested list",
			node: vdom.Ul(vdom.Li(vdom.Text("X: 3")), vdom.Li(vdom.Text("Y: abc"))),
			want: "<ul><li>X: 3</li><li>Y: abc</li></ul>",
		},
		{
			name: "sorted attributes",
			node: vdom.Button(vdom.Type("button"), vdom.Class("btn"), vdom.Text("Go")),
			want: `<button class="btn" type="button">Go</button>`,
		},
		{
			name: "empty data attribute kept",
			node: vdom.Span(vdom.Tooltip("")),
			want: `<span data-tooltip=""></span>`,
		},
		{
			name: "boolean attribute",
			node: vdom.Button(vdom.Disabled()),
			want: `<button disabled></button>`,
		},
		{
			name: "void element",
			node: vdom.Input(vdom.Type("text"), vdom.Name("q")),
			want: `<input name="q" type="text">`,
		},
		{
			name: "attribute escaping",
			node: vdom.Div(vdom.TooltipInfo(map[string]any{"y": "a\"b"})),
			want: `<div data-tooltip-info="{&quot;y&quot;:&quot;a\&quot;b&quot;}"></div>`,
		},
		{
			name: "raw",
			node: vdom.Div(vdom.Raw("<i>tooltip</i>")),
			want: "<div><i>tooltip</i></div>",
		},
		{
			name: "fragment",
			node: vdom.Fragment(vdom.I(vdom.Text("a")), "b"),
			want: "<i>a</i>b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := renderer.RenderToString(tt.node)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderInner(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})

	node := vdom.Div(vdom.Class("v-tooltip"), vdom.I(vdom.Text("tooltip")))
	got, err := renderer.RenderInner(node)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "<i>tooltip</i>" {
		t.Errorf("got %q, want %q", got, "<i>tooltip</i>")
	}
}

func TestRenderHIDs(t *testing.T) {
	root := vdom.Div(vdom.Button(vdom.Text("x")))
	doc := vdom.NewDocument(root)
	doc.AssignHIDs()

	with, _ := NewRenderer(RendererConfig{IncludeHIDs: true}).RenderToString(root)
	if !strings.Contains(with, `data-hid="h2"`) {
		t.Errorf("expected data-hid on button, got %q", with)
	}
	without, _ := NewRenderer(RendererConfig{}).RenderToString(root)
	if strings.Contains(without, "data-hid") {
		t.Errorf("data-hid should be omitted by default, got %q", without)
	}
}

func TestRenderPretty(t *testing.T) {
	renderer := NewRenderer(RendererConfig{Pretty: true})

	got, err := renderer.RenderToString(vdom.Ul(vdom.Li(vdom.Text("a"))))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "\n  <li>a</li>\n") {
		t.Errorf("expected indented child, got %q", got)
	}
}

func TestRenderElementWithoutTag(t *testing.T) {
	renderer := NewRenderer(RendererConfig{})
	if _, err := renderer.RenderToString(&vdom.VNode{Kind: vdom.KindElement}); err == nil {
		t.Error("expected error for element without tag")
	}
}
