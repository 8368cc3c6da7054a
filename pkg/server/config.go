package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vlite/pkg/metrics"
)

// Config configures the Server.
type Config struct {
	// Title is the page title.
	Title string

	// ReadTimeout bounds the wait for the next client message or pong.
	ReadTimeout time.Duration

	// WriteTimeout bounds each WebSocket write.
	WriteTimeout time.Duration

	// PingInterval is how often the server pings each client.
	// Must be shorter than ReadTimeout.
	PingInterval time.Duration

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	ShutdownTimeout time.Duration

	// SendBuffer is the number of frames queued per client before the
	// client is considered too slow and disconnected.
	SendBuffer int

	// QueueSize is the dispatcher queue length.
	QueueSize int

	// MaxMessageSize limits inbound messages in bytes.
	MaxMessageSize int64

	// MetricsPath is where Gatherer is served (default: "/metrics").
	MetricsPath string

	// Metrics receives render, connection and event metrics. Optional.
	Metrics *metrics.Collector

	// Gatherer enables the metrics endpoint when set.
	Gatherer prometheus.Gatherer

	// Tracer traces renders and events. Defaults to the global provider.
	Tracer trace.Tracer

	// CheckOrigin validates WebSocket origins. Defaults to same-host.
	CheckOrigin func(r *http.Request) bool

	// Logger is the server logger. Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Title:           "vlite",
		ReadTimeout:     60 * time.Second,
		WriteTimeout:    10 * time.Second,
		PingInterval:    30 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		SendBuffer:      16,
		QueueSize:       256,
		MaxMessageSize:  64 * 1024,
		MetricsPath:     "/metrics",
	}
}

// withDefaults fills unset fields from DefaultConfig.
func (c *Config) withDefaults() *Config {
	d := DefaultConfig()
	if c == nil {
		return d
	}
	out := *c
	if out.Title == "" {
		out.Title = d.Title
	}
	if out.ReadTimeout == 0 {
		out.ReadTimeout = d.ReadTimeout
	}
	if out.WriteTimeout == 0 {
		out.WriteTimeout = d.WriteTimeout
	}
	if out.PingInterval == 0 {
		out.PingInterval = d.PingInterval
	}
	if out.ShutdownTimeout == 0 {
		out.ShutdownTimeout = d.ShutdownTimeout
	}
	if out.SendBuffer == 0 {
		out.SendBuffer = d.SendBuffer
	}
	if out.QueueSize == 0 {
		out.QueueSize = d.QueueSize
	}
	if out.MaxMessageSize == 0 {
		out.MaxMessageSize = d.MaxMessageSize
	}
	if out.MetricsPath == "" {
		out.MetricsPath = d.MetricsPath
	}
	if out.Logger == nil {
		out.Logger = slog.Default()
	}
	return &out
}
