package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/tooltip/pkg/templates"
	"github.com/vango-dev/tooltip/pkg/tooltip"
)

// Config holds configuration for the HTTP/WebSocket server.
type Config struct {
	// Addr is the address to listen on.
	// Default: ":8080".
	Addr string

	// Path is the WebSocket endpoint.
	// Default: "/ws".
	Path string

	// CheckOrigin validates the request origin.
	// Default: allows all origins.
	CheckOrigin func(r *http.Request) bool

	// ReadTimeout is the maximum time to wait for a client message.
	// Default: 60 seconds.
	ReadTimeout time.Duration

	// WriteTimeout bounds each frame write.
	// Default: 10 seconds.
	WriteTimeout time.Duration

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	// Default: 10 seconds.
	ShutdownTimeout time.Duration

	// MaxMessageSize is the maximum size of an incoming message.
	// Default: 4KB.
	MaxMessageSize int64

	// MaxEventQueue is the buffer of each session's event loop.
	// Default: 256.
	MaxEventQueue int

	// DefaultDelay and CloseDelay are passed to every controller.
	// Zero values use the tooltip package defaults; use a negative
	// CloseDelay to close hold-to-show popovers immediately.
	DefaultDelay time.Duration
	CloseDelay   time.Duration

	// Templates, Env and Translate build each session's resolver.
	Templates *templates.Registry
	Env       map[string]any
	Translate func(string) string

	// Metrics enables GET /metrics and tooltip collectors.
	Metrics bool

	// Registry receives the tooltip collectors and backs /metrics.
	// Default: a fresh registry.
	Registry *prometheus.Registry

	// Logger is the base logger.
	// Default: slog.Default().
	Logger *slog.Logger

	// ControllerOptions are appended to the options the server builds.
	ControllerOptions []tooltip.Option

	// Middleware wrap every session's event handler, outermost first.
	Middleware []Middleware
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Addr:            ":8080",
		Path:            "/ws",
		CheckOrigin:     func(*http.Request) bool { return true },
		ReadTimeout:     60 * time.Second,
		WriteTimeout:    10 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		MaxMessageSize:  4 * 1024,
		MaxEventQueue:   256,
	}
}

// withDefaults fills in any unset field.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Addr == "" {
		c.Addr = d.Addr
	}
	if c.Path == "" {
		c.Path = d.Path
	}
	if c.CheckOrigin == nil {
		c.CheckOrigin = d.CheckOrigin
	}
	if c.ReadTimeout == 0 {
		c.ReadTimeout = d.ReadTimeout
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = d.WriteTimeout
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = d.ShutdownTimeout
	}
	if c.MaxMessageSize == 0 {
		c.MaxMessageSize = d.MaxMessageSize
	}
	if c.MaxEventQueue == 0 {
		c.MaxEventQueue = d.MaxEventQueue
	}
	if c.Templates == nil {
		c.Templates = templates.NewRegistry()
	}
	if c.Registry == nil {
		c.Registry = prometheus.NewRegistry()
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}
