package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/tooltip/pkg/popover"
	"github.com/vango-dev/tooltip/pkg/protocol"
	"github.com/vango-dev/tooltip/pkg/render"
	"github.com/vango-dev/tooltip/pkg/tooltip"
	"github.com/vango-dev/tooltip/pkg/vdom"
)

// Session is one client connection with its own document and controller.
type Session struct {
	ID        string
	CreatedAt time.Time

	conn    *websocket.Conn
	writeMu sync.Mutex
	closed  atomic.Bool

	config     Config
	doc        *vdom.Document
	popovers   *popover.Manager
	controller *tooltip.Controller
	handler    EventHandler

	queue    chan func()
	done     chan struct{}
	loopDone chan struct{}

	logger *slog.Logger

	eventCount   atomic.Uint64
	commandCount atomic.Uint64
}

// generateSessionID generates a cryptographically random session ID.
func generateSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("crypto/rand failed: %v", err))
	}
	return hex.EncodeToString(b)
}

func newSession(conn *websocket.Conn, root *vdom.VNode, config Config, opts []tooltip.Option, logger *slog.Logger) *Session {
	id := generateSessionID()
	s := &Session{
		ID:        id,
		CreatedAt: time.Now(),
		conn:      conn,
		config:    config,
		doc:       vdom.NewDocument(root),
		queue:     make(chan func(), config.MaxEventQueue),
		done:      make(chan struct{}),
		loopDone:  make(chan struct{}),
		logger:    logger.With("session_id", id),
	}
	s.doc.AssignHIDs()
	s.popovers = popover.NewManager(popover.SinkFunc(s.emit))

	base := []tooltip.Option{
		tooltip.WithClock(loopClock{s}),
		tooltip.WithLogger(s.logger),
		tooltip.WithResolver(tooltip.Resolver{
			Templates: config.Templates,
			Translate: config.Translate,
			Env:       config.Env,
		}),
	}
	s.controller = tooltip.New(s.doc, s.popovers, append(base, opts...)...)
	s.handler = chain(s.applyEvent, config.Middleware)
	return s
}

// Run greets the client and serves it until the connection ends.
func (s *Session) Run() {
	if err := s.sendHello(); err != nil {
		s.logger.Error("hello failed", "error", err)
		s.Close()
		return
	}

	go s.eventLoop()
	s.readLoop()
	s.Close()
	<-s.loopDone
}

func (s *Session) sendHello() error {
	html, err := render.NewRenderer(render.RendererConfig{IncludeHIDs: true}).RenderToString(s.doc.Root())
	if err != nil {
		return err
	}
	return s.writeFrame(protocol.FrameHello, protocol.EncodeHello(&protocol.Hello{
		Version:   protocol.CurrentVersion,
		SessionID: s.ID,
		HTML:      html,
	}))
}

// readLoop decodes client frames and queues their events until the
// connection fails or the session closes.
func (s *Session) readLoop() {
	s.conn.SetReadLimit(s.config.MaxMessageSize)
	for {
		s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))

		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) && !s.closed.Load() {
				s.logger.Error("read error", "error", err)
			}
			return
		}

		frame, err := protocol.DecodeFrame(msg)
		if err != nil {
			s.logger.Warn("frame decode error", "error", err)
			s.sendError(protocol.ErrInvalidFrame, "invalid frame")
			continue
		}

		switch frame.Type {
		case protocol.FrameEvent:
			s.handleEventFrame(frame.Payload)
		default:
			s.logger.Warn("unexpected frame type", "type", frame.Type.String())
		}
	}
}

func (s *Session) handleEventFrame(payload []byte) {
	pe, err := protocol.DecodeEvent(payload)
	if err != nil {
		s.logger.Warn("event decode error", "error", err)
		s.sendError(protocol.ErrInvalidEvent, "invalid event")
		return
	}
	s.eventCount.Add(1)
	if err := s.QueueEvent(func() { s.handleEvent(pe) }); err != nil {
		s.logger.Warn("event dropped", "hid", pe.HID, "error", err)
	}
}

// handleEvent runs on the event loop.
func (s *Session) handleEvent(pe *protocol.Event) {
	ctx := &EventContext{
		Context:   context.Background(),
		SessionID: s.ID,
		Event:     *pe,
	}
	if err := s.handler(ctx); err != nil {
		s.logger.Debug("event not applied", "hid", pe.HID, "type", pe.Type.String(), "error", err)
	}
}

// applyEvent is the innermost EventHandler.
func (s *Session) applyEvent(ctx *EventContext) error {
	pe := ctx.Event
	target := s.doc.FindByHID(pe.HID)
	if target == nil {
		// Leave and release events for removed elements are expected.
		if pe.Type == protocol.EventMouseEnter || pe.Type == protocol.EventPointerDown {
			s.sendError(protocol.ErrUnknownTarget, "no element "+pe.HID)
			return ErrUnknownTarget
		}
		return nil
	}
	s.controller.Dispatch(tooltip.Event{Type: controllerEvent(pe.Type), Target: target})
	return nil
}

func controllerEvent(t protocol.EventType) tooltip.EventType {
	switch t {
	case protocol.EventMouseEnter:
		return tooltip.EventEnter
	case protocol.EventMouseLeave:
		return tooltip.EventLeave
	case protocol.EventPointerDown:
		return tooltip.EventPointerDown
	case protocol.EventPointerUp:
		return tooltip.EventPointerUp
	default:
		return tooltip.EventPointerCancel
	}
}

// eventLoop owns the document and controller: every queued function runs
// here, one at a time.
func (s *Session) eventLoop() {
	defer close(s.loopDone)

	s.controller.Attach()
	defer s.controller.Detach()

	for {
		select {
		case fn := <-s.queue:
			s.execute(fn)
		case <-s.done:
			return
		}
	}
}

func (s *Session) execute(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("event loop panic",
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()
	fn()
}

// QueueEvent queues fn on the event loop without blocking.
func (s *Session) QueueEvent(fn func()) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	select {
	case s.queue <- fn:
		return nil
	default:
		return ErrEventQueueFull
	}
}

// Dispatch queues fn on the event loop, waiting for room if the queue is
// full. It is safe to call from any goroutine.
func (s *Session) Dispatch(fn func()) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	select {
	case s.queue <- fn:
		return nil
	case <-s.done:
		return ErrSessionClosed
	}
}

// Update runs fn against the session's document on the event loop.
// Nodes removed by fn close any tooltip anchored in them.
func (s *Session) Update(fn func(doc *vdom.Document)) error {
	return s.Dispatch(func() { fn(s.doc) })
}

// emit is the popover sink; it runs on the event loop.
func (s *Session) emit(name string, data any) {
	var cmd protocol.Command
	switch ev := data.(type) {
	case popover.OpenEvent:
		cmd = protocol.Command{
			Op:        protocol.OpOpen,
			PopoverID: uint64(ev.ID),
			AnchorHID: ev.AnchorHID,
			Position:  string(ev.Position),
			HTML:      ev.HTML,
		}
	case popover.CloseEvent:
		cmd = protocol.Command{Op: protocol.OpClose, PopoverID: uint64(ev.ID)}
	default:
		s.logger.Warn("unknown popover event", "name", name)
		return
	}
	if s.closed.Load() {
		return
	}
	if err := s.writeFrame(protocol.FrameCommand, protocol.EncodeCommand(&cmd)); err != nil {
		s.logger.Warn("command write failed", "op", cmd.Op.String(), "error", err)
		return
	}
	s.commandCount.Add(1)
}

func (s *Session) sendError(code protocol.ErrorCode, message string) {
	payload := protocol.EncodeErrorMessage(protocol.NewError(code, message))
	if err := s.writeFrame(protocol.FrameError, payload); err != nil {
		s.logger.Debug("error write failed", "error", err)
	}
}

func (s *Session) writeFrame(ft protocol.FrameType, payload []byte) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	data, err := protocol.NewFrame(ft, payload).Encode()
	if err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	return s.conn.WriteMessage(websocket.BinaryMessage, data)
}

// Close ends the session. It is safe to call more than once.
func (s *Session) Close() {
	if s.closed.Swap(true) {
		return
	}
	close(s.done)

	s.writeMu.Lock()
	s.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)
	s.writeMu.Unlock()
	s.conn.Close()

	s.logger.Debug("session finished",
		"events", s.eventCount.Load(),
		"commands", s.commandCount.Load(),
		"duration", time.Since(s.CreatedAt))
}

// Done returns a channel that's closed when the session is done.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// loopClock runs timer callbacks on the session's event loop.
type loopClock struct {
	s *Session
}

func (c loopClock) AfterFunc(d time.Duration, f func()) tooltip.Timer {
	return time.AfterFunc(d, func() {
		_ = c.s.Dispatch(f)
	})
}
