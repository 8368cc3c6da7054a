// Package vtest provides testing helpers for vlite trees and apps.
//
// The vtest package reduces boilerplate when testing views by mounting
// trees into a fresh document, finding nodes, firing events, and asserting
// on rendered HTML.
//
// # Quick Start
//
//	func TestGreeting(t *testing.T) {
//	    vtest.ExpectContains(t, Greeting("Foo"), "<strong>Foo</strong>")
//	}
//
// # Harness
//
// Mount renders a tree into the body of a new document. Events fired
// through the harness reach the listeners the materializer registered:
//
//	h := vtest.Mount(t, view(st.GetState()))
//	st.Subscribe(func(s State) { h.Render(view(s)) })
//
//	h.Click(h.MustFind("button", "Add Item"))
//	vtest.ExpectHTMLContains(t, h.HTML(), "Items: 1")
//
// # Render Assertions
//
// Assert on rendered HTML output:
//
//	vtest.ExpectContains(t, node, "Welcome")
//	vtest.ExpectNotContains(t, node, "Login")
//	vtest.ExpectElement(t, node, "button")
//	vtest.ExpectAttribute(t, node, "id", "new-item")
package vtest
