package render

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vlite/pkg/dom"
	"github.com/vango-dev/vlite/pkg/vdom"
)

// DefaultTracerName is the tracer Root uses unless WithTracer is given.
const DefaultTracerName = "vlite"

// Observer receives the outcome of every render.
type Observer interface {
	ObserveRender(d time.Duration, nodes int, err error)
}

// Root renders into a fixed container.
type Root struct {
	container *dom.Node
	logger    *slog.Logger
	tracer    trace.Tracer
	observer  Observer

	mu         sync.Mutex
	generation uint64
	hooks      []func(generation uint64)
}

// RootOption configures a Root.
type RootOption func(*Root)

// WithLogger sets the logger for render failures.
func WithLogger(logger *slog.Logger) RootOption {
	return func(r *Root) {
		r.logger = logger
	}
}

// WithObserver sets the render observer (typically metrics).
func WithObserver(o Observer) RootOption {
	return func(r *Root) {
		r.observer = o
	}
}

// WithTracer sets the tracer used for render spans.
func WithTracer(t trace.Tracer) RootOption {
	return func(r *Root) {
		r.tracer = t
	}
}

// NewRoot creates a Root for container.
func NewRoot(container *dom.Node, opts ...RootOption) *Root {
	r := &Root{
		container: container,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.tracer == nil {
		r.tracer = otel.Tracer(DefaultTracerName)
	}
	return r
}

// Container returns the container this root renders into.
func (r *Root) Container() *dom.Node {
	return r.container
}

// Generation returns the number of successful renders so far.
func (r *Root) Generation() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.generation
}

// OnRender registers fn to run after each successful render.
func (r *Root) OnRender(fn func(generation uint64)) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	r.hooks = append(r.hooks, fn)
	r.mu.Unlock()
}

// Render replaces the container's content with node.
func (r *Root) Render(ctx context.Context, node *vdom.VNode) error {
	_, span := r.tracer.Start(ctx, "vlite.render",
		trace.WithSpanKind(trace.SpanKindInternal),
	)
	defer span.End()

	start := time.Now()
	nodes, err := renderInto(node, r.container)
	elapsed := time.Since(start)

	if r.observer != nil {
		r.observer.ObserveRender(elapsed, nodes, err)
	}
	span.SetAttributes(
		attribute.Int("vlite.render.nodes", nodes),
		attribute.Int64("vlite.render.duration_us", elapsed.Microseconds()),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.logger.Error("render failed", "error", err)
		return err
	}
	span.SetStatus(codes.Ok, "")

	r.mu.Lock()
	r.generation++
	gen := r.generation
	hooks := r.hooks[:len(r.hooks):len(r.hooks)]
	r.mu.Unlock()

	span.SetAttributes(attribute.Int64("vlite.render.generation", int64(gen)))
	r.logger.Debug("rendered", "generation", gen, "nodes", nodes, "duration", elapsed)

	for _, hook := range hooks {
		hook(gen)
	}
	return nil
}
