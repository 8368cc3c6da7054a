package vtest

import (
	"strings"
	"testing"

	"github.com/vango-dev/vlite/pkg/dom"
	"github.com/vango-dev/vlite/pkg/render"
	"github.com/vango-dev/vlite/pkg/vdom"
)

// Harness is a mounted tree in its own document.
type Harness struct {
	t         testing.TB
	Doc       *dom.Document
	Container *dom.Node
}

// Mount renders node into the body of a new document. The test fails
// immediately if rendering fails.
func Mount(t testing.TB, node *vdom.VNode) *Harness {
	t.Helper()
	doc := dom.NewDocument()
	h := &Harness{t: t, Doc: doc, Container: doc.Body()}
	h.Render(node)
	return h
}

// Render replaces the mounted tree. Use it from store subscribers.
func (h *Harness) Render(node *vdom.VNode) {
	h.t.Helper()
	if err := render.Render(node, h.Container); err != nil {
		h.t.Fatalf("render: %v", err)
	}
}

// Root returns the mounted tree's root node.
func (h *Harness) Root() *dom.Node {
	return h.Container.FirstChild()
}

// HTML returns the mounted tree's HTML.
func (h *Harness) HTML() string {
	return h.Container.InnerHTML(dom.HTMLOptions{})
}

// Find returns the first element with the given tag whose text content
// contains text, or nil. An empty text matches any element of that tag.
func (h *Harness) Find(tag, text string) *dom.Node {
	return h.Container.Find(func(n *dom.Node) bool {
		return n.Type() == dom.ElementNode && n.Tag() == tag &&
			strings.Contains(n.TextContent(), text)
	})
}

// FindByID returns the element whose id attribute is id, or nil.
func (h *Harness) FindByID(id string) *dom.Node {
	return h.Container.Find(func(n *dom.Node) bool {
		v, ok := n.GetAttribute("id")
		return ok && v == id
	})
}

// MustFind is Find that fails the test when nothing matches.
func (h *Harness) MustFind(tag, text string) *dom.Node {
	h.t.Helper()
	n := h.Find(tag, text)
	if n == nil {
		h.t.Fatalf("no <%s> containing %q in:\n%s", tag, text, truncate(h.HTML()))
	}
	return n
}

// Click fires a click event on n and returns the number of listeners run.
func (h *Harness) Click(n *dom.Node) int {
	return h.Fire(n, "click", "")
}

// Fire dispatches an event with the given value on n.
func (h *Harness) Fire(n *dom.Node, event, value string) int {
	h.t.Helper()
	if n == nil {
		h.t.Fatalf("fire %s on nil node", event)
	}
	return n.Dispatch(&dom.Event{Type: event, Value: value})
}
