package vtest

import (
	"strings"
	"testing"

	"github.com/vango-dev/vlite/pkg/dom"
	"github.com/vango-dev/vlite/pkg/render"
	"github.com/vango-dev/vlite/pkg/vdom"
)

// maxShown bounds the HTML quoted in failure messages.
const maxShown = 500

// RenderToString materializes a VNode in a scratch document and returns
// its HTML, or "" if materialization fails.
//
// Example:
//
//	html := vtest.RenderToString(view(state))
//	if !strings.Contains(html, "expected text") {
//	    t.Error("missing expected text")
//	}
func RenderToString(node *vdom.VNode) string {
	n, err := render.Materialize(dom.NewDocument(), node)
	if err != nil {
		return ""
	}
	return n.OuterHTML()
}

// Materialize builds node in a scratch document, failing the test if the
// tree is invalid.
func Materialize(t testing.TB, node *vdom.VNode) *dom.Node {
	t.Helper()
	n, err := render.Materialize(dom.NewDocument(), node)
	if err != nil {
		t.Fatalf("materialize: %v", err)
	}
	return n
}

// ExpectContains asserts that the HTML of node contains expected.
func ExpectContains(t testing.TB, node *vdom.VNode, expected string) {
	t.Helper()
	ExpectHTMLContains(t, Materialize(t, node).OuterHTML(), expected)
}

// ExpectHTMLContains asserts that html contains expected.
func ExpectHTMLContains(t testing.TB, html, expected string) {
	t.Helper()
	if !strings.Contains(html, expected) {
		t.Errorf("expected HTML to contain %q, got:\n%s", expected, truncate(html))
	}
}

// ExpectNotContains asserts that the HTML of node does not contain
// unexpected.
func ExpectNotContains(t testing.TB, node *vdom.VNode, unexpected string) {
	t.Helper()
	html := Materialize(t, node).OuterHTML()
	if strings.Contains(html, unexpected) {
		t.Errorf("expected HTML not to contain %q, got:\n%s", unexpected, truncate(html))
	}
}

// ExpectElement asserts that the materialized tree has an element with
// tag.
func ExpectElement(t testing.TB, node *vdom.VNode, tag string) {
	t.Helper()
	root := Materialize(t, node)
	if byTag(root, tag) == nil {
		t.Errorf("no <%s> element in:\n%s", tag, truncate(root.OuterHTML()))
	}
}

// ExpectAttribute asserts that some element in the materialized tree has
// attr set to value.
//
// Example:
//
//	vtest.ExpectAttribute(t, node, "data-value-from", "new-item")
func ExpectAttribute(t testing.TB, node *vdom.VNode, attr, value string) {
	t.Helper()
	root := Materialize(t, node)
	found := root.Find(func(n *dom.Node) bool {
		v, ok := n.GetAttribute(attr)
		return ok && v == value
	})
	if found == nil {
		t.Errorf("no element with %s=%q in:\n%s", attr, value, truncate(root.OuterHTML()))
	}
}

func byTag(root *dom.Node, tag string) *dom.Node {
	tag = strings.ToLower(tag)
	return root.Find(func(n *dom.Node) bool {
		return n.Type() == dom.ElementNode && n.Tag() == tag
	})
}

func truncate(s string) string {
	if len(s) <= maxShown {
		return s
	}
	return s[:maxShown] + "..."
}
