package vdom

import (
	"github.com/mitchellh/mapstructure"
)

// PropTag is the struct tag Component and DecodeProps read field names from.
const PropTag = "prop"

// Component adapts a typed render function into a ComponentFunc. Props are
// decoded into P with DecodeProps; props that do not fit P are a
// programming error and panic with a *BuildError wrapping ErrInvalidProps.
func Component[P any](render func(P) *VNode) ComponentFunc {
	return func(props Props) *VNode {
		var p P
		if err := DecodeProps(props, &p); err != nil {
			panic(&BuildError{Op: "component", Err: ErrInvalidProps, Cause: err})
		}
		return render(p)
	}
}

// DecodeProps decodes props into the struct pointed to by out, matching
// keys against `prop` struct tags (or field names).
func DecodeProps(props Props, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:     PropTag,
		Result:      out,
		ErrorUnused: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(map[string]any(props))
}

// Resolve invokes component nodes, starting at node, until the result is a
// text leaf or a tag element. It returns nil if a component returns nil.
func Resolve(node *VNode) *VNode {
	for node.IsComponent() {
		node = node.Component(node.Props)
	}
	return node
}

// Expand returns a copy of the tree with every component substituted by
// its output, recursively. Children whose components return nil are
// dropped; a nil result at the root returns nil.
func Expand(node *VNode) *VNode {
	node = Resolve(node)
	if node == nil || node.Kind == KindText {
		return node
	}
	out := &VNode{
		Kind:     node.Kind,
		Tag:      node.Tag,
		Props:    node.Props,
		Children: make([]*VNode, 0, len(node.Children)),
	}
	for _, c := range node.Children {
		if e := Expand(c); e != nil {
			out.Children = append(out.Children, e)
		}
	}
	return out
}
