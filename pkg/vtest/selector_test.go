package vtest

import (
	"testing"

	"github.com/vango-dev/tooltip/pkg/vdom"
)

func TestMatch(t *testing.T) {
	btn := vdom.Button(
		vdom.ID("save"),
		vdom.Class("btn mybtn"),
		vdom.Tooltip("hello"),
		vdom.TooltipPosition("top"),
	)

	tests := []struct {
		selector string
		want     bool
	}{
		{"button", true},
		{"span", false},
		{"#save", true},
		{"#other", false},
		{".mybtn", true},
		{"button.btn.mybtn", true},
		{"button.missing", false},
		{"button[data-tooltip]", true},
		{"[data-tooltip-template]", false},
		{"[data-tooltip-position=top]", true},
		{"[data-tooltip-position='left']", false},
		{"button#save.mybtn[data-tooltip]", true},
	}
	for _, tt := range tests {
		if got := Match(tt.selector)(btn); got != tt.want {
			t.Errorf("Match(%q) = %v, want %v", tt.selector, got, tt.want)
		}
	}

	if Match("button")(vdom.Text("button")) {
		t.Error("text nodes never match")
	}
}
