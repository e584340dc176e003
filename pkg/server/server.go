package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vango-dev/tooltip/pkg/tooltip"
	"github.com/vango-dev/tooltip/pkg/vdom"
)

// MountFunc returns the root node of a new connection's document. It is
// called once per connection; returned trees must not be shared.
type MountFunc func(r *http.Request) *vdom.VNode

// Server accepts WebSocket connections and runs one Session per client.
type Server struct {
	config   Config
	mount    MountFunc
	upgrader websocket.Upgrader
	metrics  *tooltip.Metrics
	logger   *slog.Logger

	mu       sync.Mutex
	sessions map[string]*Session

	httpServer *http.Server
}

// New creates a Server. mount must not be nil.
func New(config Config, mount MountFunc) *Server {
	config = config.withDefaults()
	s := &Server{
		config: config,
		mount:  mount,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     config.CheckOrigin,
		},
		logger:   config.Logger.With("component", "server"),
		sessions: make(map[string]*Session),
	}
	if config.Metrics {
		s.metrics = tooltip.NewMetrics(tooltip.WithRegistry(config.Registry))
	}
	return s
}

// Handler returns the server's routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Get(s.config.Path, s.HandleWebSocket)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	if s.config.Metrics {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.config.Registry, promhttp.HandlerOpts{}))
	}
	return r
}

// HandleWebSocket upgrades the request and runs a session until the
// client disconnects.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	root := s.mount(r)
	if root == nil {
		s.logger.Error("mount returned no tree", "path", r.URL.Path)
		conn.Close()
		return
	}

	sess := newSession(conn, root, s.config, s.controllerOptions(), s.logger)
	s.register(sess)
	defer s.unregister(sess)

	sess.Run()
}

func (s *Server) controllerOptions() []tooltip.Option {
	opts := []tooltip.Option{tooltip.WithMetrics(s.metrics)}
	if s.config.DefaultDelay > 0 {
		opts = append(opts, tooltip.WithDefaultDelay(s.config.DefaultDelay))
	}
	switch {
	case s.config.CloseDelay > 0:
		opts = append(opts, tooltip.WithCloseDelay(s.config.CloseDelay))
	case s.config.CloseDelay < 0:
		opts = append(opts, tooltip.WithCloseDelay(0))
	}
	return append(opts, s.config.ControllerOptions...)
}

func (s *Server) register(sess *Session) {
	s.mu.Lock()
	s.sessions[sess.ID] = sess
	n := len(s.sessions)
	s.mu.Unlock()
	s.logger.Info("session created", "session_id", sess.ID, "active", n)
}

func (s *Server) unregister(sess *Session) {
	s.mu.Lock()
	delete(s.sessions, sess.ID)
	n := len(s.sessions)
	s.mu.Unlock()
	s.logger.Info("session closed", "session_id", sess.ID, "active", n)
}

// Session returns the live session with the given ID.
func (s *Server) Session(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// SessionCount returns the number of live sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// ListenAndServe serves until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:              s.config.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", s.config.Addr, "ws", s.config.Path)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	return s.Shutdown(shutdownCtx)
}

// Shutdown closes every session and stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	live := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		live = append(live, sess)
	}
	s.mu.Unlock()

	for _, sess := range live {
		sess.Close()
	}
	s.logger.Info("server shutdown", "sessions", len(live))

	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
