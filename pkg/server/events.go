package server

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vlite/pkg/dom"
)

// handleEvent runs on the dispatcher goroutine.
func (s *Server) handleEvent(c *client, msg EventMessage) {
	_, span := s.config.Tracer.Start(s.ctx, "vlite."+msg.Event,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("vlite.app", s.app.Name()),
			attribute.String("vlite.event_type", msg.Event),
			attribute.IntSlice("vlite.event_path", msg.Path),
			attribute.Int64("vlite.client", int64(c.id)),
		),
	)
	defer span.End()

	current := s.root.Generation()
	if msg.Generation != 0 && msg.Generation != current {
		// The client acted on an old tree; its path may point elsewhere now.
		span.SetAttributes(attribute.Bool("vlite.event_stale", true))
		s.logger.Debug("stale event", "client", c.id, "event", msg.Event,
			"generation", msg.Generation, "current", current)
		if frame, _, _ := s.snapshot(); frame != nil {
			c.enqueue(frame)
		}
		s.observeEvent(msg.Event, "stale")
		return
	}

	target, ok := s.root.Container().ElementAt(msg.Path)
	if !ok {
		span.SetStatus(codes.Error, "target not found")
		s.logger.Warn("event target not found", "client", c.id, "path", msg.Path)
		s.observeEvent(msg.Event, "error")
		return
	}

	n := target.Dispatch(&dom.Event{Type: msg.Event, Value: msg.Value})
	span.SetAttributes(attribute.Int("vlite.listeners", n))
	if n == 0 {
		s.observeEvent(msg.Event, "unhandled")
		return
	}
	span.SetStatus(codes.Ok, "")
	s.observeEvent(msg.Event, "handled")
}

func (s *Server) observeEvent(event, status string) {
	if s.config.Metrics != nil {
		s.config.Metrics.ObserveEvent(event, status)
	}
}
