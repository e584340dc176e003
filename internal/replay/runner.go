package replay

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/vango-dev/tooltip/internal/errors"
	"github.com/vango-dev/tooltip/pkg/popover"
	"github.com/vango-dev/tooltip/pkg/templates"
	"github.com/vango-dev/tooltip/pkg/tooltip"
	"github.com/vango-dev/tooltip/pkg/vdom"
	"github.com/vango-dev/tooltip/pkg/vtest"
)

// Transition is a popover opening or closing.
type Transition struct {
	At        time.Duration
	Op        string // "open" or "close"
	PopoverID uint64
	Anchor    string
	Position  string
	Text      string
}

func (t Transition) String() string {
	ms := t.At.Milliseconds()
	if t.Op == "open" {
		pos := t.Position
		if pos == "" {
			pos = "default"
		}
		return fmt.Sprintf("%6dms  open   #%d %-12s %-8s %q", ms, t.PopoverID, t.Anchor, pos, t.Text)
	}
	return fmt.Sprintf("%6dms  close  #%d %s", ms, t.PopoverID, t.Anchor)
}

// Result is the outcome of a replay.
type Result struct {
	Transitions []Transition

	// Failures lists expectations that did not hold, one per step.
	Failures []string
}

// OK reports whether every expectation held.
func (r *Result) OK() bool {
	return len(r.Failures) == 0
}

// Report writes the transitions and failures to w.
func (r *Result) Report(w io.Writer) {
	for _, t := range r.Transitions {
		fmt.Fprintln(w, t.String())
	}
	for _, f := range r.Failures {
		fmt.Fprintln(w, "FAIL", f)
	}
}

// Runner replays scripts.
type Runner struct {
	// DefaultDelay and CloseDelay configure the controller. Zero values
	// use the tooltip package defaults; a negative CloseDelay closes
	// hold-to-show popovers on release.
	DefaultDelay time.Duration
	CloseDelay   time.Duration

	Logger *slog.Logger
}

// run holds the state of one replay.
type run struct {
	doc      *vdom.Document
	clock    *vtest.FakeClock
	popovers *popover.Manager
	ctrl     *tooltip.Controller
	hovered  *vdom.VNode
	anchors  map[popover.Handle]string
	result   *Result
}

// Run replays s from a fresh document. The returned error is non-nil when
// a step could not be performed or an expectation failed; the Result is
// always returned with the transitions recorded so far.
func (r Runner) Run(s *Script) (*Result, error) {
	logger := r.Logger
	if logger == nil {
		logger = slog.Default()
	}

	reg, err := buildTemplates(s.Templates)
	if err != nil {
		return nil, err
	}

	st := &run{
		doc:     vdom.NewDocument(s.Tree.Build()),
		clock:   vtest.NewFakeClock(),
		anchors: make(map[popover.Handle]string),
		result:  &Result{},
	}
	st.doc.AssignHIDs()
	st.popovers = popover.NewManager(popover.SinkFunc(st.record))

	opts := []tooltip.Option{
		tooltip.WithClock(st.clock),
		tooltip.WithLogger(logger),
		tooltip.WithResolver(tooltip.Resolver{Templates: reg, Env: s.Env}),
	}
	if r.DefaultDelay > 0 {
		opts = append(opts, tooltip.WithDefaultDelay(r.DefaultDelay))
	}
	switch {
	case r.CloseDelay > 0:
		opts = append(opts, tooltip.WithCloseDelay(r.CloseDelay))
	case r.CloseDelay < 0:
		opts = append(opts, tooltip.WithCloseDelay(0))
	}
	st.ctrl = tooltip.New(st.doc, st.popovers, opts...)
	st.ctrl.Attach()
	defer st.ctrl.Detach()

	for i, step := range s.Steps {
		if err := st.step(step); err != nil {
			return st.result, errors.New("T032").
				WithSource(fmt.Sprintf("step %d (%s)", i+1, step.Op)).
				Wrap(err)
		}
		if step.Op == OpExpect {
			if msg := st.check(step); msg != "" {
				st.result.Failures = append(st.result.Failures, fmt.Sprintf("step %d: %s", i+1, msg))
			}
		}
	}

	if !st.result.OK() {
		return st.result, errors.New("T032").
			WithDetail(fmt.Sprintf("%d expectation(s) failed", len(st.result.Failures)))
	}
	return st.result, nil
}

func (st *run) step(step Step) error {
	switch step.Op {
	case OpHover:
		target, err := st.query(step.Target)
		if err != nil {
			return err
		}
		leaves, enters := vtest.Crossing(st.doc, st.hovered, target)
		for _, n := range leaves {
			st.ctrl.OnLeave(n)
		}
		for _, n := range enters {
			st.ctrl.OnEnter(n)
		}
		st.hovered = target
	case OpLeave:
		leaves, _ := vtest.Crossing(st.doc, st.hovered, nil)
		for _, n := range leaves {
			st.ctrl.OnLeave(n)
		}
		st.hovered = nil
	case OpDown, OpUp, OpCancel:
		target, err := st.query(step.Target)
		if err != nil {
			return err
		}
		switch step.Op {
		case OpDown:
			st.ctrl.OnPointerDown(target)
		case OpUp:
			st.ctrl.OnPointerUp(target)
		default:
			st.ctrl.OnPointerCancel(target)
		}
	case OpRemove:
		target, err := st.query(step.Target)
		if err != nil {
			return err
		}
		if st.hovered != nil && st.doc.IsAncestor(target, st.hovered) {
			st.hovered = nil
		}
		st.doc.Remove(target)
	case OpWait:
		st.clock.Advance(time.Duration(step.Ms) * time.Millisecond)
	case OpRun:
		st.clock.RunAll()
	}
	return nil
}

func (st *run) check(step Step) string {
	if step.Count != nil {
		if got := st.popovers.Count(); got != *step.Count {
			return fmt.Sprintf("%d popover(s) open, want %d", got, *step.Count)
		}
	}
	if step.Text != "" {
		list := st.popovers.List()
		if len(list) != 1 {
			return fmt.Sprintf("%d popover(s) open, want exactly 1 with text %q", len(list), step.Text)
		}
		if got := list[0].Text(); got != step.Text {
			return fmt.Sprintf("popover text %q, want %q", got, step.Text)
		}
	}
	return ""
}

func (st *run) query(selector string) (*vdom.VNode, error) {
	n := st.doc.QueryOne(vtest.Match(selector))
	if n == nil {
		return nil, fmt.Errorf("no element matches %q", selector)
	}
	return n, nil
}

// record is the popover sink.
func (st *run) record(_ string, data any) {
	t := Transition{At: st.clock.Elapsed()}
	switch ev := data.(type) {
	case popover.OpenEvent:
		t.Op = "open"
		t.PopoverID = uint64(ev.ID)
		t.Position = string(ev.Position)
		t.Anchor = ev.AnchorHID
		if p, ok := st.popovers.Get(ev.ID); ok {
			t.Text = p.Text()
			if id, ok := p.Anchor.AttrString("id"); ok && id != "" {
				t.Anchor = "#" + id
			}
		}
		st.anchors[ev.ID] = t.Anchor
	case popover.CloseEvent:
		t.Op = "close"
		t.PopoverID = uint64(ev.ID)
		t.Anchor = st.anchors[ev.ID]
		delete(st.anchors, ev.ID)
	default:
		return
	}
	st.result.Transitions = append(st.result.Transitions, t)
}

var placeholder = regexp.MustCompile(`\{(\w+)\}`)

// buildTemplates registers a text template per entry.
func buildTemplates(texts map[string]string) (*templates.Registry, error) {
	reg := templates.NewRegistry()
	for id, text := range texts {
		text := text
		err := reg.Register(id, func(ctx templates.Context) *vdom.VNode {
			return vdom.Text(placeholder.ReplaceAllStringFunc(text, func(m string) string {
				return ctx.String(strings.Trim(m, "{}"))
			}))
		})
		if err != nil {
			return nil, errors.New("T031").WithSource("template " + id).Wrap(err)
		}
	}
	return reg, nil
}
