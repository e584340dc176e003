package tooltip

import (
	"errors"
	"strings"
	"testing"

	"github.com/vango-dev/tooltip/pkg/templates"
	"github.com/vango-dev/tooltip/pkg/vdom"
)

func TestResolveLiteral(t *testing.T) {
	r := Resolver{Translate: strings.ToUpper}

	n, err := r.Resolve(Declaration{Content: "hello"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if n.Kind != vdom.KindText || n.Text != "HELLO" {
		t.Errorf("Resolve() = %+v", n)
	}

	n, err = r.Resolve(Declaration{Content: "  "})
	if err != nil || n != nil {
		t.Errorf("blank Resolve() = %v, %v; want nil, nil", n, err)
	}
}

func TestResolveTemplateWins(t *testing.T) {
	reg := templates.NewRegistry()
	reg.MustRegister("t", func(ctx templates.Context) *vdom.VNode {
		return vdom.B(vdom.Text(ctx.String("who") + "/" + ctx.String("lang")))
	})
	r := Resolver{
		Templates: reg,
		Translate: func(string) string { return "translated" },
		Env:       map[string]any{"lang": "en"},
	}

	n, err := r.Resolve(Declaration{
		Content:    "ignored",
		TemplateID: "t",
		Info:       map[string]any{"who": "me"},
	})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got := n.TextContent(); got != "me/en" {
		t.Errorf("TextContent() = %q, want %q", got, "me/en")
	}
}

func TestResolveUnknownTemplate(t *testing.T) {
	for _, r := range []Resolver{{}, {Templates: templates.NewRegistry()}} {
		_, err := r.Resolve(Declaration{TemplateID: "nope"})
		if !errors.Is(err, templates.ErrUnknownTemplate) {
			t.Errorf("Resolve() error = %v, want ErrUnknownTemplate", err)
		}
	}
}
