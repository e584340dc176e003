package tooltip

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/tooltip/pkg/popover"
	"github.com/vango-dev/tooltip/pkg/vdom"
)

const tracerName = "github.com/vango-dev/tooltip"

// Close and suppression reasons, used in logs and metrics.
const (
	reasonLeave    = "leave"
	reasonRemoved  = "removed"
	reasonReplaced = "replaced"
	reasonRelease  = "release"
	reasonToggle   = "toggle"
	reasonOutside  = "outside"
	reasonCancel   = "cancel"
	reasonDetach   = "detach"
	reasonBlank    = "blank"
	reasonTemplate = "template_error"
	reasonOpen     = "open_error"
)

// Controller shows and hides tooltips for one mounted Document.
//
// All methods must be called from the goroutine that owns the document,
// and the Clock must deliver timer callbacks on that same goroutine.
type Controller struct {
	doc      *vdom.Document
	popovers popover.Service

	clock        Clock
	logger       *slog.Logger
	resolver     Resolver
	defaultDelay time.Duration
	closeDelay   time.Duration
	metrics      *Metrics
	tracer       trace.Tracer

	slot        slot
	attached    bool
	unsubscribe func()
}

// New creates a controller for doc that opens popovers through popovers.
// Call Attach before dispatching events.
func New(doc *vdom.Document, popovers popover.Service, opts ...Option) *Controller {
	c := &Controller{
		doc:          doc,
		popovers:     popovers,
		clock:        SystemClock,
		defaultDelay: DefaultDelay,
		closeDelay:   DefaultCloseDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	c.logger = c.logger.With("component", "tooltip")
	if c.tracer == nil {
		c.tracer = otel.Tracer(tracerName)
	}
	return c
}

// Attach starts listening: events are handled and document removals are
// observed. Attaching twice is a no-op.
func (c *Controller) Attach() {
	if c.attached {
		return
	}
	c.attached = true
	c.unsubscribe = c.doc.Observe(func(m vdom.Mutation) {
		if len(m.Removed) > 0 {
			c.sweepDetached()
		}
	})
}

// Detach stops listening and closes anything pending or open.
func (c *Controller) Detach() {
	if !c.attached {
		return
	}
	c.attached = false
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	c.endAll(reasonDetach)
}

// Attached reports whether the controller is listening.
func (c *Controller) Attached() bool {
	return c.attached
}

// OnEnter handles the pointer entering n. The tooltip shown is the one
// declared by n or its closest declaring ancestor.
func (c *Controller) OnEnter(n *vdom.VNode) {
	if !c.attached {
		return
	}
	anchor := c.doc.Closest(n, Declares)
	if anchor == nil || !c.doc.Contains(anchor) {
		return
	}
	if a := c.slot.active; a != nil && a.anchor == anchor {
		return
	}
	if out := c.slot.outgoing; out != nil && out.anchor == anchor {
		// Back onto the anchor whose popover is still visible: keep it.
		if a := c.slot.active; a != nil {
			c.end(a, reasonReplaced)
		}
		c.slot.active, c.slot.outgoing = out, nil
		return
	}
	c.start(anchor, ModeHover)
}

// OnLeave handles the pointer leaving n. Only a session anchored on n is
// affected.
func (c *Controller) OnLeave(n *vdom.VNode) {
	if !c.attached || n == nil {
		return
	}
	if out := c.slot.outgoing; out != nil && out.anchor == n {
		c.end(out, reasonLeave)
	}
	if a := c.slot.active; a != nil && a.anchor == n {
		c.end(a, reasonLeave)
	}
}

// OnPointerDown handles a touch press on n.
func (c *Controller) OnPointerDown(n *vdom.VNode) {
	if !c.attached {
		return
	}
	anchor := c.doc.Closest(n, Declares)
	if anchor != nil && !c.doc.Contains(anchor) {
		return
	}
	a := c.slot.active

	if anchor == nil {
		if a != nil && a.mode.touch() {
			c.end(a, reasonOutside)
		}
		return
	}

	if a != nil && a.anchor == anchor {
		switch a.mode {
		case ModeTap:
			// Second tap closes; the rest of this gesture is ignored
			// because no session remains.
			if a.shown() {
				c.end(a, reasonToggle)
			}
		case ModeHold:
			if a.closing {
				a.cancelTimer()
			}
		}
		return
	}

	decl, _ := ParseDeclaration(anchor)
	mode := ModeHold
	if decl.TouchTapToShow {
		mode = ModeTap
	}
	c.start(anchor, mode)
}

// OnPointerUp handles the end of a touch press. Only hold-to-show sessions
// react: a pending show is cancelled, a visible popover closes after the
// close delay.
func (c *Controller) OnPointerUp(n *vdom.VNode) {
	if !c.attached {
		return
	}
	a := c.slot.active
	if a == nil || a.mode != ModeHold {
		return
	}
	if !a.shown() || c.closeDelay <= 0 {
		c.end(a, reasonRelease)
		return
	}
	if a.closing {
		return
	}
	token := a.token
	a.closeSeq++
	seq := a.closeSeq
	a.closing = true
	a.timer = c.clock.AfterFunc(c.closeDelay, func() {
		// A re-press and a later release within the same session start a
		// new close timer; only the newest one may close.
		if cur := c.slot.current(token); cur != nil && cur.closing && cur.closeSeq == seq {
			c.end(cur, reasonRelease)
		}
	})
}

// OnPointerCancel handles an interrupted touch gesture.
func (c *Controller) OnPointerCancel(n *vdom.VNode) {
	if !c.attached {
		return
	}
	if a := c.slot.active; a != nil && a.mode.touch() {
		c.end(a, reasonCancel)
	}
}

// OnTargetRemoved handles n being detached from the document. Any session
// whose anchor is no longer attached is cancelled and its popover closed.
func (c *Controller) OnTargetRemoved(n *vdom.VNode) {
	if !c.attached {
		return
	}
	c.sweepDetached()
}

// Dispatch routes an event to the matching handler.
func (c *Controller) Dispatch(ev Event) {
	switch ev.Type {
	case EventEnter:
		c.OnEnter(ev.Target)
	case EventLeave:
		c.OnLeave(ev.Target)
	case EventPointerDown:
		c.OnPointerDown(ev.Target)
	case EventPointerUp:
		c.OnPointerUp(ev.Target)
	case EventPointerCancel:
		c.OnPointerCancel(ev.Target)
	case EventRemoved:
		c.OnTargetRemoved(ev.Target)
	}
}

// Active describes the current session, if any.
func (c *Controller) Active() (State, bool) {
	a := c.slot.active
	if a == nil {
		return State{}, false
	}
	return State{
		Anchor:  a.anchor,
		Mode:    a.mode,
		Pending: !a.shown() && a.timer != nil,
		Shown:   a.shown(),
		Handle:  a.handle,
	}, true
}

// start begins a new session on anchor, retiring the current one.
func (c *Controller) start(anchor *vdom.VNode, mode Mode) {
	decl, _ := ParseDeclaration(anchor)
	c.retire(mode)

	if decl.IsBlank() {
		c.metrics.recordSuppressed(reasonBlank)
		if out := c.slot.outgoing; out != nil {
			c.end(out, reasonReplaced)
		}
		return
	}

	sess := c.slot.begin(anchor, decl, mode)
	token := sess.token
	delay := decl.EffectiveDelay(c.defaultDelay)
	sess.timer = c.clock.AfterFunc(delay, func() { c.fire(token) })

	c.logger.Debug("tooltip scheduled",
		"anchor", anchor.HID,
		"mode", mode.String(),
		"delay", delay,
	)
}

// retire moves the active session out of the way of a new one. A visible
// hover popover stays up as the outgoing popover until its replacement is
// shown; everything else ends now.
func (c *Controller) retire(next Mode) {
	a := c.slot.active
	if a == nil {
		return
	}
	a.cancelTimer()
	if a.shown() && a.mode == ModeHover && next == ModeHover {
		if out := c.slot.outgoing; out != nil {
			c.end(out, reasonReplaced)
		}
		c.slot.active, c.slot.outgoing = nil, a
		return
	}
	c.end(a, reasonReplaced)
}

// fire runs when a session's delay elapses.
func (c *Controller) fire(token uint64) {
	sess := c.slot.current(token)
	if sess == nil || sess.shown() {
		return
	}
	sess.timer = nil

	if !c.doc.Contains(sess.anchor) {
		c.metrics.recordSuppressed(reasonRemoved)
		c.end(sess, reasonRemoved)
		return
	}

	_, span := c.tracer.Start(context.Background(), "tooltip.show",
		trace.WithAttributes(
			attribute.String("tooltip.anchor", sess.anchor.HID),
			attribute.String("tooltip.mode", sess.mode.String()),
			attribute.String("tooltip.position", sess.decl.Position.String()),
			attribute.String("tooltip.template", sess.decl.TemplateID),
		),
	)
	defer span.End()

	content, err := c.resolver.Resolve(sess.decl)
	if err != nil {
		c.logger.Warn("tooltip content failed",
			"anchor", sess.anchor.HID,
			"template", sess.decl.TemplateID,
			"error", err,
		)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.metrics.recordSuppressed(reasonTemplate)
		c.endWithOutgoing(sess)
		return
	}
	if content == nil {
		c.metrics.recordSuppressed(reasonBlank)
		c.endWithOutgoing(sess)
		return
	}

	if out := c.slot.outgoing; out != nil {
		c.end(out, reasonReplaced)
	}
	h, err := c.popovers.Open(sess.anchor, content, popover.Options{Position: sess.decl.Position})
	if err != nil {
		c.logger.Warn("tooltip open failed", "anchor", sess.anchor.HID, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.metrics.recordSuppressed(reasonOpen)
		c.end(sess, reasonOpen)
		return
	}
	sess.handle = h
	span.SetAttributes(attribute.Int64("tooltip.popover", int64(h)))
	c.metrics.recordShown()
	c.logger.Debug("tooltip shown", "anchor", sess.anchor.HID, "popover", uint64(h))
}

// end cancels sess's timer, closes its popover exactly once and forgets it.
func (c *Controller) end(sess *session, reason string) {
	sess.cancelTimer()
	if sess.handle != 0 {
		h := sess.handle
		sess.handle = 0
		c.popovers.Close(h)
		c.metrics.recordClosed(reason)
		c.logger.Debug("tooltip closed", "anchor", sess.anchor.HID, "reason", reason)
	}
	c.slot.release(sess)
}

func (c *Controller) endWithOutgoing(sess *session) {
	c.end(sess, reasonReplaced)
	if out := c.slot.outgoing; out != nil {
		c.end(out, reasonReplaced)
	}
}

func (c *Controller) endAll(reason string) {
	if a := c.slot.active; a != nil {
		c.end(a, reason)
	}
	if out := c.slot.outgoing; out != nil {
		c.end(out, reason)
	}
}

// sweepDetached ends sessions whose anchor left the document.
func (c *Controller) sweepDetached() {
	if out := c.slot.outgoing; out != nil && !c.doc.Contains(out.anchor) {
		c.end(out, reasonRemoved)
	}
	if a := c.slot.active; a != nil && !c.doc.Contains(a.anchor) {
		c.end(a, reasonRemoved)
	}
}
