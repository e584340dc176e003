package middleware

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/vango-dev/tooltip/pkg/server"
)

// MetricsConfig configures the Prometheus middleware.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "vango").
	Namespace string

	// Subsystem is the metrics subsystem (default: "tooltip").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for event duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus middleware.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "vango",
		Subsystem: "tooltip",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Event statuses.
const (
	statusOK            = "ok"
	statusUnknownTarget = "unknown_target"
	statusError         = "error"
)

// Prometheus creates middleware that records client events:
//   - vango_tooltip_events_total{type,status}: events applied
//   - vango_tooltip_event_duration_seconds{type}: time spent applying them
//
// Each call registers new collectors, so call it once per registry.
func Prometheus(opts ...MetricsOption) server.Middleware {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	events := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace:   config.Namespace,
		Subsystem:   config.Subsystem,
		Name:        "events_total",
		Help:        "Total number of client events by type and status",
		ConstLabels: config.ConstLabels,
	}, []string{"type", "status"})

	duration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace:   config.Namespace,
		Subsystem:   config.Subsystem,
		Name:        "event_duration_seconds",
		Help:        "Time spent applying a client event in seconds",
		ConstLabels: config.ConstLabels,
		Buckets:     config.Buckets,
	}, []string{"type"})

	return func(next server.EventHandler) server.EventHandler {
		return func(ctx *server.EventContext) error {
			start := time.Now()
			err := next(ctx)

			typ := ctx.Event.Type.String()
			duration.WithLabelValues(typ).Observe(time.Since(start).Seconds())
			events.WithLabelValues(typ, status(err)).Inc()
			return err
		}
	}
}

func status(err error) string {
	switch {
	case err == nil:
		return statusOK
	case errors.Is(err, server.ErrUnknownTarget):
		return statusUnknownTarget
	default:
		return statusError
	}
}
