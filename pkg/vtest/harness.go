package vtest

import (
	"testing"
	"time"

	"github.com/vango-dev/tooltip/pkg/popover"
	"github.com/vango-dev/tooltip/pkg/templates"
	"github.com/vango-dev/tooltip/pkg/tooltip"
	"github.com/vango-dev/tooltip/pkg/vdom"
)

// Harness mounts a tree with an attached tooltip controller driven by a
// FakeClock. Pointer helpers take selectors and simulate what a browser
// would dispatch.
type Harness struct {
	t testing.TB

	Doc        *vdom.Document
	Clock      *FakeClock
	Popovers   *popover.Manager
	Templates  *templates.Registry
	Controller *tooltip.Controller

	// Events records every popover event in order.
	Events []string

	hovered *vdom.VNode
}

// Option configures a Harness.
type Option func(*harnessConfig)

type harnessConfig struct {
	templates *templates.Registry
	env       map[string]any
	translate func(string) string
	ctrlOpts  []tooltip.Option
}

// WithTemplates uses reg to resolve data-tooltip-template.
func WithTemplates(reg *templates.Registry) Option {
	return func(c *harnessConfig) { c.templates = reg }
}

// WithEnv sets the template environment.
func WithEnv(env map[string]any) Option {
	return func(c *harnessConfig) { c.env = env }
}

// WithTranslate sets the translation applied to literal tooltips.
func WithTranslate(fn func(string) string) Option {
	return func(c *harnessConfig) { c.translate = fn }
}

// WithControllerOptions passes extra options to tooltip.New.
func WithControllerOptions(opts ...tooltip.Option) Option {
	return func(c *harnessConfig) { c.ctrlOpts = append(c.ctrlOpts, opts...) }
}

// New mounts root and attaches a controller. The controller is detached
// when the test ends.
func New(t testing.TB, root *vdom.VNode, opts ...Option) *Harness {
	t.Helper()

	cfg := harnessConfig{templates: templates.NewRegistry()}
	for _, opt := range opts {
		opt(&cfg)
	}

	h := &Harness{
		t:         t,
		Doc:       vdom.NewDocument(root),
		Clock:     NewFakeClock(),
		Templates: cfg.templates,
	}
	h.Doc.AssignHIDs()
	h.Popovers = popover.NewManager(popover.SinkFunc(func(name string, _ any) {
		h.Events = append(h.Events, name)
	}))

	ctrlOpts := append([]tooltip.Option{
		tooltip.WithClock(h.Clock),
		tooltip.WithResolver(tooltip.Resolver{
			Templates: cfg.templates,
			Translate: cfg.translate,
			Env:       cfg.env,
		}),
	}, cfg.ctrlOpts...)
	h.Controller = tooltip.New(h.Doc, h.Popovers, ctrlOpts...)
	h.Controller.Attach()
	t.Cleanup(h.Controller.Detach)

	return h
}

// Query returns the first attached element matching selector, failing the
// test if there is none.
func (h *Harness) Query(selector string) *vdom.VNode {
	h.t.Helper()
	n := h.Doc.QueryOne(Match(selector))
	if n == nil {
		h.t.Fatalf("vtest: no element matches %q", selector)
	}
	return n
}

// Hover moves the pointer onto the element matching selector. Elements
// left behind receive leave events (innermost first), newly entered
// elements receive enter events (outermost first).
func (h *Harness) Hover(selector string) {
	h.t.Helper()
	target := h.Query(selector)

	leaves, enters := Crossing(h.Doc, h.hovered, target)
	for _, n := range leaves {
		h.Controller.OnLeave(n)
	}
	for _, n := range enters {
		h.Controller.OnEnter(n)
	}
	h.hovered = target
}

// Leave moves the pointer out of the document.
func (h *Harness) Leave() {
	leaves, _ := Crossing(h.Doc, h.hovered, nil)
	for _, n := range leaves {
		h.Controller.OnLeave(n)
	}
	h.hovered = nil
}

// PointerDown presses on the element matching selector.
func (h *Harness) PointerDown(selector string) {
	h.t.Helper()
	h.Controller.OnPointerDown(h.Query(selector))
}

// PointerUp releases over the element matching selector.
func (h *Harness) PointerUp(selector string) {
	h.t.Helper()
	h.Controller.OnPointerUp(h.Query(selector))
}

// Remove detaches the element matching selector from the document.
func (h *Harness) Remove(selector string) {
	h.t.Helper()
	h.Doc.Remove(h.Query(selector))
}

// Advance moves the fake clock forward by d.
func (h *Harness) Advance(d time.Duration) {
	h.Clock.Advance(d)
}

// RunAllTimers fires every pending timer.
func (h *Harness) RunAllTimers() {
	h.Clock.RunAll()
}

// PopoverCount returns the number of open popovers.
func (h *Harness) PopoverCount() int {
	return h.Popovers.Count()
}

// Popover returns the single open popover, failing the test unless
// exactly one is open.
func (h *Harness) Popover() *popover.Popover {
	h.t.Helper()
	list := h.Popovers.List()
	if len(list) != 1 {
		h.t.Fatalf("vtest: %d popovers open, want exactly 1", len(list))
	}
	return list[0]
}

// ExpectPopovers asserts the number of open popovers.
func (h *Harness) ExpectPopovers(want int) {
	h.t.Helper()
	if got := h.Popovers.Count(); got != want {
		h.t.Errorf("open popovers = %d, want %d", got, want)
	}
}

// ExpectPopoverText asserts that exactly one popover is open with text.
func (h *Harness) ExpectPopoverText(want string) {
	h.t.Helper()
	if got := h.Popover().Text(); got != want {
		h.t.Errorf("popover text = %q, want %q", got, want)
	}
}

