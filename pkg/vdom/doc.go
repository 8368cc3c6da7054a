// Package vdom provides the virtual node model for vlite.
//
// A VNode is an immutable description of UI: either a text leaf or an
// element whose type is a tag name or a component function. Trees are
// built with New (or H, which panics on error) and turned into live
// display nodes by package render.
//
//	vdom.H("div", nil,
//	    "Hello ",
//	    vdom.H("strong", nil, "World"),
//	)
//
// # Properties
//
// Props on tag elements are checked when the node is built. Keys that start
// with "on" are event bindings and must hold a Handler or a func(); the rest
// of the key names the event ("onclick" binds "click"). All other keys are
// attributes and must hold a string, bool, number or fmt.Stringer. Props on
// component nodes are passed to the component untouched.
//
// # Components
//
// A ComponentFunc maps props to a VNode. Component adapts a typed function
// by decoding props into a struct:
//
//	type GreetingProps struct {
//	    Name string `prop:"name"`
//	}
//
//	var Greeting = vdom.Component(func(p GreetingProps) *vdom.VNode {
//	    return vdom.H("div", nil, "Hello ", vdom.H("strong", nil, p.Name))
//	})
//
//	vdom.H(Greeting, vdom.Props{"name": "Foo"})
package vdom
