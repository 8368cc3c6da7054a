package render

import (
	"context"
	"fmt"
	"testing"

	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vango-dev/vlite/pkg/dom"
	"github.com/vango-dev/vlite/pkg/vdom"
)

func BenchmarkMaterializeSimple(b *testing.B) {
	doc := dom.NewDocument()
	node := vdom.H("div", vdom.Props{"class": "card"},
		vdom.H("h1", nil, "Title"),
		vdom.H("p", nil, "Content"),
	)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Materialize(doc, node); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMaterializeLargeTree(b *testing.B) {
	doc := dom.NewDocument()

	// Build a tree with 1000 elements
	items := make([]*vdom.VNode, 0, 1000)
	for i := 0; i < 1000; i++ {
		items = append(items, vdom.H("li", nil, fmt.Sprintf("Item %d", i)))
	}
	node := vdom.H("ul", nil, items)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Materialize(doc, node); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMaterializeWithHandlers(b *testing.B) {
	doc := dom.NewDocument()
	handler := func() {}

	buttons := make([]*vdom.VNode, 0, 100)
	for i := 0; i < 100; i++ {
		buttons = append(buttons, vdom.H("button", vdom.Props{"onclick": handler}, fmt.Sprintf("Button %d", i)))
	}
	node := vdom.H("div", nil, buttons)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Materialize(doc, node); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkMaterializeComponents(b *testing.B) {
	doc := dom.NewDocument()
	type itemProps struct {
		Label string `prop:"label"`
	}
	item := vdom.Component(func(p itemProps) *vdom.VNode {
		return vdom.H("li", nil, p.Label)
	})

	items := make([]*vdom.VNode, 0, 100)
	for i := 0; i < 100; i++ {
		items = append(items, vdom.H(item, vdom.Props{"label": fmt.Sprintf("Item %d", i)}))
	}
	node := vdom.H("ul", nil, items)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Materialize(doc, node); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkRootRender(b *testing.B) {
	doc := dom.NewDocument()
	root := NewRoot(doc.Body(), WithTracer(noop.NewTracerProvider().Tracer("bench")))
	ctx := context.Background()
	node := vdom.H("main", nil,
		vdom.H("h1", nil, "Header"),
		vdom.H("p", nil, vdom.H("span", nil, "Button clicked 0 times")),
	)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := root.Render(ctx, node); err != nil {
			b.Fatal(err)
		}
	}
}
