package replay

import (
	"testing"

	"github.com/vango-dev/tooltip/internal/errors"
)

const saveScript = `{
  "name": "save button",
  "tree": {
    "tag": "div",
    "children": [
      {"tag": "button", "attrs": {"id": "save", "data-tooltip": "Save", "data-tooltip-position": "top"}, "text": "S"},
      {"tag": "span", "attrs": {"id": "info", "data-tooltip-template": "card", "data-tooltip-info": "{\"name\":\"X\"}"}, "text": "i"}
    ]
  },
  "templates": {"card": "Hello {name} from {site}"},
  "env": {"site": "docs"},
  "steps": [
    {"op": "hover", "target": "#save"},
    {"op": "wait", "ms": 399},
    {"op": "expect", "count": 0},
    {"op": "wait", "ms": 1},
    {"op": "expect", "text": "Save"},
    {"op": "hover", "target": "#info"},
    {"op": "run"},
    {"op": "expect", "text": "Hello X from docs"},
    {"op": "leave"},
    {"op": "expect", "count": 0}
  ]
}`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(saveScript))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if s.Name != "save button" {
		t.Errorf("Name = %q", s.Name)
	}
	if len(s.Steps) != 10 {
		t.Errorf("len(Steps) = %d, want 10", len(s.Steps))
	}
	if s.Steps[2].Count == nil || *s.Steps[2].Count != 0 {
		t.Errorf("Steps[2].Count = %v, want 0", s.Steps[2].Count)
	}
	if s.Templates["card"] == "" {
		t.Error("card template missing")
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", `{`},
		{"unknown field", `{"tree": {"tag": "div"}, "steps": [], "extra": 1}`},
		{"no tree tag", `{"tree": {"text": "x"}, "steps": []}`},
		{"unknown op", `{"tree": {"tag": "div"}, "steps": [{"op": "jump"}]}`},
		{"hover without target", `{"tree": {"tag": "div"}, "steps": [{"op": "hover"}]}`},
		{"negative wait", `{"tree": {"tag": "div"}, "steps": [{"op": "wait", "ms": -1}]}`},
		{"empty expect", `{"tree": {"tag": "div"}, "steps": [{"op": "expect"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("Parse() should fail")
			}
			if !errors.HasCode(err, "T031") {
				t.Errorf("error = %v, want T031", err)
			}
		})
	}
}

func TestValidateNamesStep(t *testing.T) {
	_, err := Parse([]byte(`{"tree": {"tag": "div"}, "steps": [{"op": "leave"}, {"op": "down"}]}`))
	e := errors.FromError(err, "")
	if e == nil || e.Source != "step 2 (down)" {
		t.Fatalf("error = %v, want source step 2 (down)", err)
	}
}

func TestNodeBuild(t *testing.T) {
	n := Node{
		Tag:   "div",
		Attrs: map[string]string{"id": "root", "data-tooltip": "hi"},
		Text:  "a",
		Children: []Node{
			{Tag: "b", Text: "b"},
			{Text: "c"},
		},
	}
	v := n.Build()

	if v.Tag != "div" {
		t.Errorf("Tag = %q, want div", v.Tag)
	}
	if id, _ := v.AttrString("id"); id != "root" {
		t.Errorf("id = %q, want root", id)
	}
	if tip, _ := v.AttrString("data-tooltip"); tip != "hi" {
		t.Errorf("data-tooltip = %q, want hi", tip)
	}
	if got := v.TextContent(); got != "abc" {
		t.Errorf("TextContent() = %q, want abc", got)
	}
	if len(v.Children) != 3 {
		t.Errorf("len(Children) = %d, want 3", len(v.Children))
	}
}
