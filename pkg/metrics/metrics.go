// Package metrics provides Prometheus collectors for vlite stores,
// renders, and the live host.
//
// A Collector implements store.Observer and render.Observer, so it can be
// passed directly to store.WithObserver and render.WithObserver:
//
//	reg := prometheus.NewRegistry()
//	m := metrics.New(metrics.WithRegistry(reg))
//	st := store.New(State{}, store.WithObserver(m))
//	root := render.NewRoot(container, render.WithObserver(m))
//	http.Handle("/metrics", m.Handler(reg))
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Config configures the collectors.
type Config struct {
	// Namespace is the metrics namespace (default: "vlite").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for durations.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry to use.
	// Default: prometheus.DefaultRegisterer
	Registry prometheus.Registerer
}

// Option configures the collectors.
type Option func(*Config)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) Option {
	return func(c *Config) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) Option {
	return func(c *Config) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) Option {
	return func(c *Config) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the duration histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(c *Config) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry prometheus.Registerer) Option {
	return func(c *Config) {
		c.Registry = registry
	}
}

func defaultConfig() Config {
	return Config{
		Namespace: "vlite",
		Buckets:   prometheus.DefBuckets,
		Registry:  prometheus.DefaultRegisterer,
	}
}

// Collector holds the vlite metrics.
type Collector struct {
	executions      *prometheus.CounterVec
	executeDuration *prometheus.HistogramVec
	notifications   *prometheus.CounterVec
	renders         *prometheus.CounterVec
	renderDuration  prometheus.Histogram
	renderNodes     prometheus.Histogram
	connections     prometheus.Gauge
	events          *prometheus.CounterVec
	persistWrites   *prometheus.CounterVec
}

// New creates and registers the collectors.
func New(opts ...Option) *Collector {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	factory := promauto.With(config.Registry)

	return &Collector{
		executions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "store_executions_total",
			Help:        "Total number of store transitions",
			ConstLabels: config.ConstLabels,
		}, []string{"store", "status"}),

		executeDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "store_execute_duration_seconds",
			Help:        "Store transition duration in seconds, including notification",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, []string{"store"}),

		notifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "store_notifications_total",
			Help:        "Total number of subscriber calls",
			ConstLabels: config.ConstLabels,
		}, []string{"store"}),

		renders: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "renders_total",
			Help:        "Total number of renders",
			ConstLabels: config.ConstLabels,
		}, []string{"status"}),

		renderDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_duration_seconds",
			Help:        "Render duration in seconds",
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}),

		renderNodes: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "render_nodes",
			Help:        "Display nodes created per render",
			ConstLabels: config.ConstLabels,
			Buckets:     prometheus.ExponentialBuckets(8, 4, 6), // 8 to 8192
		}),

		connections: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_connections",
			Help:        "Number of open WebSocket connections",
			ConstLabels: config.ConstLabels,
		}),

		events: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "events_total",
			Help:        "Total number of client events by type and outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"event", "status"}),

		persistWrites: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "persist_writes_total",
			Help:        "Total number of state writes by backend and outcome",
			ConstLabels: config.ConstLabels,
		}, []string{"backend", "status"}),
	}
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// ObserveExecute records a store transition.
func (c *Collector) ObserveExecute(store string, d time.Duration, subscribers int, err error) {
	c.executions.WithLabelValues(store, status(err)).Inc()
	c.executeDuration.WithLabelValues(store).Observe(d.Seconds())
	if subscribers > 0 {
		c.notifications.WithLabelValues(store).Add(float64(subscribers))
	}
}

// ObserveRender records a render.
func (c *Collector) ObserveRender(d time.Duration, nodes int, err error) {
	c.renders.WithLabelValues(status(err)).Inc()
	if err != nil {
		return
	}
	c.renderDuration.Observe(d.Seconds())
	c.renderNodes.Observe(float64(nodes))
}

// ConnectionOpened increments the open connection gauge.
func (c *Collector) ConnectionOpened() {
	c.connections.Inc()
}

// ConnectionClosed decrements the open connection gauge.
func (c *Collector) ConnectionClosed() {
	c.connections.Dec()
}

// ObserveEvent records a client event. Status is one of "handled",
// "unhandled", "stale" or "error".
func (c *Collector) ObserveEvent(event, status string) {
	c.events.WithLabelValues(event, status).Inc()
}

// ObservePersist records a state write.
func (c *Collector) ObservePersist(backend string, err error) {
	c.persistWrites.WithLabelValues(backend, status(err)).Inc()
}

// Handler returns an HTTP handler serving the metrics in g.
func (c *Collector) Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
