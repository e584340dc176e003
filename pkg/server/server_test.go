package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/tooltip/pkg/protocol"
	"github.com/vango-dev/tooltip/pkg/vdom"
)

// The test tree mounts as: div h1 > button h2, p h3.
func testMount(*http.Request) *vdom.VNode {
	return vdom.Div(
		vdom.Button(vdom.ID("save"), vdom.Tooltip("hello"), vdom.TooltipPosition("top"), vdom.Text("Save")),
		vdom.P(vdom.Text("plain")),
	)
}

func newTestServer(t *testing.T, cfg Config) (*Server, *httptest.Server) {
	t.Helper()
	if cfg.DefaultDelay == 0 {
		cfg.DefaultDelay = 10 * time.Millisecond
	}
	s := New(cfg, testMount)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) *protocol.Frame {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("ReadMessage() error = %v", err)
	}
	frame, err := protocol.DecodeFrame(msg)
	if err != nil {
		t.Fatalf("DecodeFrame() error = %v", err)
	}
	return frame
}

func readHello(t *testing.T, conn *websocket.Conn) *protocol.Hello {
	t.Helper()
	frame := readFrame(t, conn)
	if frame.Type != protocol.FrameHello {
		t.Fatalf("first frame = %v, want Hello", frame.Type)
	}
	hello, err := protocol.DecodeHello(frame.Payload)
	if err != nil {
		t.Fatalf("DecodeHello() error = %v", err)
	}
	return hello
}

func readCommand(t *testing.T, conn *websocket.Conn) *protocol.Command {
	t.Helper()
	frame := readFrame(t, conn)
	if frame.Type != protocol.FrameCommand {
		t.Fatalf("frame = %v, want Command", frame.Type)
	}
	cmd, err := protocol.DecodeCommand(frame.Payload)
	if err != nil {
		t.Fatalf("DecodeCommand() error = %v", err)
	}
	return cmd
}

func sendEvent(t *testing.T, conn *websocket.Conn, et protocol.EventType, hid string) {
	t.Helper()
	data, err := protocol.NewFrame(protocol.FrameEvent, protocol.EncodeEvent(&protocol.Event{Type: et, HID: hid})).Encode()
	if err != nil {
		t.Fatal(err)
	}
	if err := conn.WriteMessage(websocket.BinaryMessage, data); err != nil {
		t.Fatalf("WriteMessage() error = %v", err)
	}
}

func TestHealthz(t *testing.T) {
	_, ts := newTestServer(t, Config{})

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Errorf("GET /healthz = %d %q", resp.StatusCode, body)
	}

	resp, err = http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET /metrics without metrics = %d, want 404", resp.StatusCode)
	}
}

func TestHelloCarriesDocument(t *testing.T) {
	_, ts := newTestServer(t, Config{})
	conn := dial(t, ts)

	hello := readHello(t, conn)
	if hello.SessionID == "" || hello.Version != protocol.CurrentVersion {
		t.Errorf("hello = %+v", hello)
	}
	for _, want := range []string{`data-hid="h2"`, `data-tooltip="hello"`, `id="save"`} {
		if !strings.Contains(hello.HTML, want) {
			t.Errorf("hello HTML %q missing %q", hello.HTML, want)
		}
	}
}

func TestHoverOpensAndLeaveCloses(t *testing.T) {
	_, ts := newTestServer(t, Config{})
	conn := dial(t, ts)
	readHello(t, conn)

	sendEvent(t, conn, protocol.EventMouseEnter, "h1")
	sendEvent(t, conn, protocol.EventMouseEnter, "h2")

	open := readCommand(t, conn)
	if open.Op != protocol.OpOpen || open.AnchorHID != "h2" || open.Position != "top" {
		t.Fatalf("open command = %+v", open)
	}
	if !strings.Contains(open.HTML, ">hello</div>") {
		t.Errorf("open HTML = %q", open.HTML)
	}

	sendEvent(t, conn, protocol.EventMouseLeave, "h2")
	closeCmd := readCommand(t, conn)
	if closeCmd.Op != protocol.OpClose || closeCmd.PopoverID != open.PopoverID {
		t.Errorf("close command = %+v, want close of %d", closeCmd, open.PopoverID)
	}
}

func TestTouchHold(t *testing.T) {
	_, ts := newTestServer(t, Config{CloseDelay: 5 * time.Millisecond})
	conn := dial(t, ts)
	readHello(t, conn)

	sendEvent(t, conn, protocol.EventPointerDown, "h2")
	open := readCommand(t, conn)
	if open.Op != protocol.OpOpen {
		t.Fatalf("command = %+v, want open", open)
	}
	sendEvent(t, conn, protocol.EventPointerUp, "h2")
	if cmd := readCommand(t, conn); cmd.Op != protocol.OpClose {
		t.Errorf("command = %+v, want close", cmd)
	}
}

func TestUnknownTargetReportsError(t *testing.T) {
	_, ts := newTestServer(t, Config{})
	conn := dial(t, ts)
	readHello(t, conn)

	sendEvent(t, conn, protocol.EventMouseEnter, "h99")
	frame := readFrame(t, conn)
	if frame.Type != protocol.FrameError {
		t.Fatalf("frame = %v, want Error", frame.Type)
	}
	em, err := protocol.DecodeErrorMessage(frame.Payload)
	if err != nil {
		t.Fatal(err)
	}
	if em.Code != protocol.ErrUnknownTarget || em.Fatal {
		t.Errorf("error = %+v", em)
	}
}

func TestInvalidFrameReportsError(t *testing.T) {
	_, ts := newTestServer(t, Config{})
	conn := dial(t, ts)
	readHello(t, conn)

	if err := conn.WriteMessage(websocket.BinaryMessage, []byte{0x01}); err != nil {
		t.Fatal(err)
	}
	frame := readFrame(t, conn)
	em, err := protocol.DecodeErrorMessage(frame.Payload)
	if err != nil || em.Code != protocol.ErrInvalidFrame {
		t.Errorf("error = %+v, %v", em, err)
	}

	// The session survives and still serves events.
	sendEvent(t, conn, protocol.EventMouseEnter, "h2")
	if cmd := readCommand(t, conn); cmd.Op != protocol.OpOpen {
		t.Errorf("command = %+v, want open", cmd)
	}
}

func TestUpdateRemovingAnchorClosesPopover(t *testing.T) {
	s, ts := newTestServer(t, Config{})
	conn := dial(t, ts)
	hello := readHello(t, conn)

	sendEvent(t, conn, protocol.EventMouseEnter, "h2")
	open := readCommand(t, conn)

	sess, ok := s.Session(hello.SessionID)
	if !ok {
		t.Fatalf("session %s not registered", hello.SessionID)
	}
	err := sess.Update(func(doc *vdom.Document) {
		doc.Remove(doc.FindByID("save"))
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	cmd := readCommand(t, conn)
	if cmd.Op != protocol.OpClose || cmd.PopoverID != open.PopoverID {
		t.Errorf("command = %+v, want close of %d", cmd, open.PopoverID)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	_, ts := newTestServer(t, Config{Metrics: true})
	conn := dial(t, ts)
	readHello(t, conn)

	sendEvent(t, conn, protocol.EventMouseEnter, "h2")
	readCommand(t, conn)

	deadline := time.Now().Add(2 * time.Second)
	for {
		resp, err := http.Get(ts.URL + "/metrics")
		if err != nil {
			t.Fatal(err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		if strings.Contains(string(body), "vango_tooltip_shown_total 1") {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("metrics never reported the shown tooltip:\n%s", body)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestShutdownClosesSessions(t *testing.T) {
	s, ts := newTestServer(t, Config{})
	conn := dial(t, ts)
	readHello(t, conn)

	if err := s.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Error("connection still open after Shutdown")
	}

	deadline := time.Now().Add(2 * time.Second)
	for s.SessionCount() != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("SessionCount() = %d after shutdown", s.SessionCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestConfigDefaults(t *testing.T) {
	c := Config{Addr: ":9000"}.withDefaults()
	if c.Addr != ":9000" || c.Path != "/ws" || c.MaxEventQueue != 256 {
		t.Errorf("withDefaults() = %+v", c)
	}
	if c.Templates == nil || c.Registry == nil || c.Logger == nil || c.CheckOrigin == nil {
		t.Error("withDefaults() left collaborators nil")
	}
}

func TestMiddlewareWrapsEvents(t *testing.T) {
	seen := make(chan string, 8)
	record := func(name string) Middleware {
		return func(next EventHandler) EventHandler {
			return func(ctx *EventContext) error {
				seen <- name + ":" + ctx.Event.HID
				err := next(ctx)
				if err != nil {
					seen <- name + ":" + err.Error()
				}
				return err
			}
		}
	}
	_, ts := newTestServer(t, Config{Middleware: []Middleware{record("outer"), record("inner")}})
	conn := dial(t, ts)
	readHello(t, conn)

	sendEvent(t, conn, protocol.EventMouseEnter, "h99")
	if f := readFrame(t, conn); f.Type != protocol.FrameError {
		t.Fatalf("frame = %v, want Error", f.Type)
	}

	want := []string{
		"outer:h99",
		"inner:h99",
		"inner:" + ErrUnknownTarget.Error(),
		"outer:" + ErrUnknownTarget.Error(),
	}
	for i, w := range want {
		select {
		case got := <-seen:
			if got != w {
				t.Errorf("call %d = %q, want %q", i, got, w)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for %q", w)
		}
	}
}
