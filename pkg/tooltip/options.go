package tooltip

import (
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// Option configures a Controller.
type Option func(*Controller)

// WithClock sets the clock used for delays. Defaults to SystemClock.
func WithClock(clock Clock) Option {
	return func(c *Controller) {
		c.clock = clock
	}
}

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// WithResolver sets the content resolver (templates, translation, env).
func WithResolver(r Resolver) Option {
	return func(c *Controller) {
		c.resolver = r
	}
}

// WithDefaultDelay sets the opening delay for anchors that declare none.
func WithDefaultDelay(d time.Duration) Option {
	return func(c *Controller) {
		if d >= 0 {
			c.defaultDelay = d
		}
	}
}

// WithCloseDelay sets how long a hold-to-show popover stays after release.
// Zero closes it on release.
func WithCloseDelay(d time.Duration) Option {
	return func(c *Controller) {
		if d >= 0 {
			c.closeDelay = d
		}
	}
}

// WithMetrics records controller activity in m.
func WithMetrics(m *Metrics) Option {
	return func(c *Controller) {
		c.metrics = m
	}
}

// WithTracer sets the tracer used for show spans. Defaults to the global
// OpenTelemetry tracer provider.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *Controller) {
		c.tracer = tracer
	}
}
