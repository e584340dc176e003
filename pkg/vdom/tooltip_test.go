package vdom

import "testing"

func TestTooltipAttributes(t *testing.T) {
	node := Button(
		Tooltip("hello"),
		TooltipTemplate("tpl"),
		TooltipInfo(map[string]any{"x": 3, "y": "abc"}),
		TooltipPosition("left"),
		TooltipDelay(2000),
		TooltipTouchTapToShow(),
	)

	tests := []struct {
		key  string
		want string
	}{
		{AttrTooltip, "hello"},
		{AttrTooltipTemplate, "tpl"},
		{AttrTooltipInfo, `{"x":3,"y":"abc"}`},
		{AttrTooltipPosition, "left"},
		{AttrTooltipDelay, "2000"},
		{AttrTooltipTouchTapToShow, "true"},
	}
	for _, tt := range tests {
		got, ok := node.AttrString(tt.key)
		if !ok || got != tt.want {
			t.Errorf("%s = %q (set=%v), want %q", tt.key, got, ok, tt.want)
		}
	}
}

func TestTooltipEmptyTextStillDeclares(t *testing.T) {
	node := Button(Tooltip(""))
	if !node.Has(AttrTooltip) {
		t.Error("empty tooltip should still be present")
	}
}

func TestTooltipInfoPassesStringsThrough(t *testing.T) {
	a := TooltipInfo(`{"raw":true}`)
	if a.Value != `{"raw":true}` {
		t.Errorf("got %v", a.Value)
	}
	bad := TooltipInfo(func() {})
	if bad.Value != "" {
		t.Errorf("unencodable info = %v, want empty", bad.Value)
	}
}

func TestTextContent(t *testing.T) {
	n := Div(Span(Text("a")), Text("b"), Raw("<i>x</i>"))
	if got := n.TextContent(); got != "ab" {
		t.Errorf("TextContent() = %q, want %q", got, "ab")
	}
}
