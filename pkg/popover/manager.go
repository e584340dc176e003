package popover

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vango-dev/tooltip/pkg/render"
	"github.com/vango-dev/tooltip/pkg/vdom"
)

// WrapperClass is the class of the element wrapping popover content.
const WrapperClass = "v-tooltip"

// Popover is an open popover tracked by a Manager.
type Popover struct {
	ID       Handle
	Anchor   *vdom.VNode
	Position Position

	// Node is the wrapper element; its children are the content.
	Node *vdom.VNode

	// HTML is the rendered wrapper.
	HTML string

	// InnerHTML is the rendered content without the wrapper.
	InnerHTML string
}

// Text returns the text content of the popover.
func (p *Popover) Text() string {
	return p.Node.TextContent()
}

// Manager is the in-memory popover Service. It renders content to HTML,
// keeps track of open popovers and reports every change to its Sink.
type Manager struct {
	mu       sync.Mutex
	next     Handle
	open     map[Handle]*Popover
	sink     Sink
	renderer *render.Renderer
}

// NewManager creates a Manager reporting to sink. sink may be nil.
func NewManager(sink Sink) *Manager {
	return &Manager{
		open:     make(map[Handle]*Popover),
		sink:     sink,
		renderer: render.NewRenderer(render.RendererConfig{}),
	}
}

// Open implements Service.
func (m *Manager) Open(anchor, content *vdom.VNode, opts Options) (Handle, error) {
	if anchor == nil {
		return 0, ErrNoAnchor
	}
	if content == nil {
		return 0, ErrNoContent
	}

	class := WrapperClass
	if opts.Class != "" {
		class += " " + opts.Class
	}
	wrapper := vdom.Div(
		vdom.Class(class),
		vdom.Role("tooltip"),
		content,
	)
	if opts.Position != PositionDefault {
		wrapper.Props["data-position"] = string(opts.Position)
	}

	html, err := m.renderer.RenderToString(wrapper)
	if err != nil {
		return 0, fmt.Errorf("popover: render: %w", err)
	}
	inner, err := m.renderer.RenderInner(wrapper)
	if err != nil {
		return 0, fmt.Errorf("popover: render: %w", err)
	}

	m.mu.Lock()
	m.next++
	p := &Popover{
		ID:        m.next,
		Anchor:    anchor,
		Position:  opts.Position,
		Node:      wrapper,
		HTML:      html,
		InnerHTML: inner,
	}
	m.open[p.ID] = p
	m.mu.Unlock()

	if m.sink != nil {
		m.sink.Emit(EventOpen, OpenEvent{
			ID:        p.ID,
			AnchorHID: anchor.HID,
			Position:  p.Position,
			HTML:      html,
		})
	}
	return p.ID, nil
}

// Close implements Service.
func (m *Manager) Close(h Handle) {
	m.mu.Lock()
	_, ok := m.open[h]
	delete(m.open, h)
	m.mu.Unlock()

	if ok && m.sink != nil {
		m.sink.Emit(EventClose, CloseEvent{ID: h})
	}
}

// Get returns the open popover for h.
func (m *Manager) Get(h Handle) (*Popover, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.open[h]
	return p, ok
}

// List returns the open popovers in the order they were opened.
func (m *Manager) List() []*Popover {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*Popover, 0, len(m.open))
	for _, p := range m.open {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Count returns the number of open popovers.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.open)
}
