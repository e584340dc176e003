package tooltip

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsConfig configures the Prometheus collectors.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "vango").
	Namespace string

	// Subsystem is the metrics subsystem (default: "tooltip").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// MetricsOption configures the Prometheus collectors.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// Metrics holds the tooltip collectors. A nil *Metrics records nothing, and
// one Metrics value may be shared by every controller of a process.
type Metrics struct {
	shown      prometheus.Counter
	closed     *prometheus.CounterVec
	suppressed *prometheus.CounterVec
	open       prometheus.Gauge
}

// NewMetrics registers the tooltip collectors:
//   - vango_tooltip_shown_total: popovers opened
//   - vango_tooltip_closed_total{reason}: popovers closed, by reason
//   - vango_tooltip_suppressed_total{reason}: show attempts that opened nothing
//   - vango_tooltip_open: popovers currently open
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := MetricsConfig{
		Namespace: "vango",
		Subsystem: "tooltip",
		Registry:  prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Metrics{
		shown: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "shown_total",
			Help:        "Total number of tooltips shown",
			ConstLabels: config.ConstLabels,
		}),
		closed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "closed_total",
			Help:        "Total number of tooltips closed by reason",
			ConstLabels: config.ConstLabels,
		}, []string{"reason"}),
		suppressed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "suppressed_total",
			Help:        "Total number of show attempts that opened no tooltip",
			ConstLabels: config.ConstLabels,
		}, []string{"reason"}),
		open: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "open",
			Help:        "Number of tooltips currently open",
			ConstLabels: config.ConstLabels,
		}),
	}
}

func (m *Metrics) recordShown() {
	if m == nil {
		return
	}
	m.shown.Inc()
	m.open.Inc()
}

func (m *Metrics) recordClosed(reason string) {
	if m == nil {
		return
	}
	m.closed.WithLabelValues(reason).Inc()
	m.open.Dec()
}

func (m *Metrics) recordSuppressed(reason string) {
	if m == nil {
		return
	}
	m.suppressed.WithLabelValues(reason).Inc()
}
