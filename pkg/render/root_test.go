package render

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vango-dev/vlite/pkg/dom"
	"github.com/vango-dev/vlite/pkg/vdom"
)

type recordingObserver struct {
	nodes []int
	errs  []error
}

func (o *recordingObserver) ObserveRender(_ time.Duration, nodes int, err error) {
	o.nodes = append(o.nodes, nodes)
	o.errs = append(o.errs, err)
}

func TestRootRender(t *testing.T) {
	doc := dom.NewDocument()
	obs := &recordingObserver{}
	root := NewRoot(doc.Body(),
		WithObserver(obs),
		WithTracer(noop.NewTracerProvider().Tracer("test")),
	)

	var gens []uint64
	root.OnRender(func(g uint64) { gens = append(gens, g) })
	root.OnRender(nil)

	ctx := context.Background()
	if err := root.Render(ctx, vdom.H("p", nil, "a", vdom.H("b", nil, "c"))); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if err := root.Render(ctx, vdom.Text("done")); err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if root.Generation() != 2 {
		t.Errorf("Generation() = %d, want 2", root.Generation())
	}
	if len(gens) != 2 || gens[0] != 1 || gens[1] != 2 {
		t.Errorf("hook generations = %v, want [1 2]", gens)
	}
	if len(obs.nodes) != 2 || obs.nodes[0] != 4 || obs.nodes[1] != 1 {
		t.Errorf("observed nodes = %v, want [4 1]", obs.nodes)
	}
	if root.Container() != doc.Body() {
		t.Error("Container() mismatch")
	}
}

func TestRootRenderFailure(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	doc := dom.NewDocument()
	obs := &recordingObserver{}
	root := NewRoot(doc.Body(), WithLogger(logger), WithObserver(obs))

	called := false
	root.OnRender(func(uint64) { called = true })

	err := root.Render(context.Background(), nil)
	if !errors.Is(err, ErrNilNode) {
		t.Fatalf("Render() error = %v, want ErrNilNode", err)
	}
	if called {
		t.Error("hooks should not run after a failed render")
	}
	if root.Generation() != 0 {
		t.Errorf("Generation() = %d, want 0", root.Generation())
	}
	if len(obs.errs) != 1 || !errors.Is(obs.errs[0], ErrNilNode) {
		t.Errorf("observed errors = %v", obs.errs)
	}
	if !strings.Contains(buf.String(), "render failed") {
		t.Errorf("log output = %q, want render failed", buf.String())
	}
}
