package popover

import (
	"errors"
	"testing"

	"github.com/vango-dev/tooltip/pkg/vdom"
)

type emitted struct {
	name string
	data any
}

type recordingSink struct {
	events []emitted
}

func (s *recordingSink) Emit(name string, data any) {
	s.events = append(s.events, emitted{name, data})
}

func TestManagerOpenRendersWrapper(t *testing.T) {
	sink := &recordingSink{}
	m := NewManager(sink)
	anchor := vdom.Button(vdom.Text("Action"))
	anchor.HID = "h3"

	h, err := m.Open(anchor, vdom.Text("hello"), Options{Position: PositionTop})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if h == 0 {
		t.Fatal("Open() returned the zero handle")
	}

	p, ok := m.Get(h)
	if !ok {
		t.Fatal("popover should be tracked")
	}
	want := `<div class="v-tooltip" data-position="top" role="tooltip">hello</div>`
	if p.HTML != want {
		t.Errorf("HTML = %q, want %q", p.HTML, want)
	}
	if p.InnerHTML != "hello" || p.Text() != "hello" {
		t.Errorf("InnerHTML = %q, Text = %q", p.InnerHTML, p.Text())
	}

	if len(sink.events) != 1 || sink.events[0].name != EventOpen {
		t.Fatalf("events = %+v, want one open event", sink.events)
	}
	ev := sink.events[0].data.(OpenEvent)
	if ev.ID != h || ev.AnchorHID != "h3" || ev.Position != PositionTop {
		t.Errorf("open event = %+v", ev)
	}
}

func TestManagerDefaultPositionOmitsAttribute(t *testing.T) {
	m := NewManager(nil)
	h, err := m.Open(vdom.Button(), vdom.Text("x"), Options{Class: "wide"})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	p, _ := m.Get(h)
	want := `<div class="v-tooltip wide" role="tooltip">x</div>`
	if p.HTML != want {
		t.Errorf("HTML = %q, want %q", p.HTML, want)
	}
}

func TestManagerCloseIsIdempotent(t *testing.T) {
	sink := &recordingSink{}
	m := NewManager(sink)

	h, _ := m.Open(vdom.Button(), vdom.Text("x"), Options{})
	m.Close(h)
	m.Close(h)
	m.Close(Handle(999))

	if m.Count() != 0 {
		t.Errorf("Count() = %d, want 0", m.Count())
	}
	closes := 0
	for _, e := range sink.events {
		if e.name == EventClose {
			closes++
		}
	}
	if closes != 1 {
		t.Errorf("close events = %d, want exactly 1", closes)
	}
}

func TestManagerListOrder(t *testing.T) {
	m := NewManager(nil)
	a, _ := m.Open(vdom.Button(), vdom.Text("a"), Options{})
	b, _ := m.Open(vdom.Button(), vdom.Text("b"), Options{})

	list := m.List()
	if len(list) != 2 || list[0].ID != a || list[1].ID != b {
		t.Errorf("List() order wrong: %+v", list)
	}
}

func TestManagerOpenErrors(t *testing.T) {
	m := NewManager(nil)
	if _, err := m.Open(nil, vdom.Text("x"), Options{}); !errors.Is(err, ErrNoAnchor) {
		t.Errorf("error = %v, want ErrNoAnchor", err)
	}
	if _, err := m.Open(vdom.Button(), nil, Options{}); !errors.Is(err, ErrNoContent) {
		t.Errorf("error = %v, want ErrNoContent", err)
	}
	if m.Count() != 0 {
		t.Error("failed opens should not be tracked")
	}
}

func TestParsePosition(t *testing.T) {
	tests := []struct {
		in   string
		want Position
	}{
		{"top", PositionTop},
		{"RIGHT", PositionRight},
		{" bottom ", PositionBottom},
		{"left", PositionLeft},
		{"", PositionDefault},
		{"diagonal", PositionDefault},
	}
	for _, tt := range tests {
		if got := ParsePosition(tt.in); got != tt.want {
			t.Errorf("ParsePosition(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if PositionDefault.String() != "default" || PositionTop.String() != "top" {
		t.Error("String() mismatch")
	}
}
