package vdom

import (
	"fmt"
	"reflect"
	"strconv"
)

// New builds an element node. typ is a tag name, a ComponentFunc or a
// func(Props) *VNode. Children may be *VNode, []*VNode, string, bool, any
// integer or float, or fmt.Stringer; scalars become text leaves and nil
// children are skipped.
func New(typ any, props Props, children ...any) (*VNode, error) {
	node := &VNode{Kind: KindElement}

	switch t := typ.(type) {
	case string:
		if t == "" {
			return nil, &BuildError{Op: "type", Err: ErrInvalidTag}
		}
		p, err := elementProps(props)
		if err != nil {
			return nil, err
		}
		node.Tag = t
		node.Props = p
	case ComponentFunc:
		if t == nil {
			return nil, &BuildError{Op: "type", Err: ErrInvalidType}
		}
		node.Component = t
		node.Props = copyProps(props)
	case func(Props) *VNode:
		if t == nil {
			return nil, &BuildError{Op: "type", Err: ErrInvalidType}
		}
		node.Component = t
		node.Props = copyProps(props)
	default:
		return nil, &BuildError{Op: "type", Key: fmt.Sprintf("%T", typ), Err: ErrInvalidType}
	}

	kids, err := normalizeChildren(children)
	if err != nil {
		return nil, err
	}
	node.Children = kids
	return node, nil
}

// H is New for trees known to be valid. It panics with the *BuildError.
func H(typ any, props Props, children ...any) *VNode {
	node, err := New(typ, props, children...)
	if err != nil {
		panic(err)
	}
	return node
}

// Text creates a text leaf.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

// Textf creates a formatted text leaf.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Range maps a slice to nodes, skipping nil results.
func Range[T any](items []T, fn func(item T, index int) *VNode) []*VNode {
	result := make([]*VNode, 0, len(items))
	for i, item := range items {
		if node := fn(item, i); node != nil {
			result = append(result, node)
		}
	}
	return result
}

// If returns the node if condition is true, nil otherwise.
func If(condition bool, node *VNode) *VNode {
	if condition {
		return node
	}
	return nil
}

func copyProps(props Props) Props {
	out := make(Props, len(props))
	for k, v := range props {
		out[k] = v
	}
	return out
}

// elementProps validates props for a tag element and normalizes handlers.
func elementProps(props Props) (Props, error) {
	out := make(Props, len(props))
	for key, value := range props {
		if value == nil {
			continue
		}
		if IsEventKey(key) {
			h, ok := AsHandler(value)
			if !ok || EventName(key) == "" {
				return nil, &BuildError{Op: "prop", Key: key, Err: ErrInvalidHandler}
			}
			out[key] = h
			continue
		}
		if !isScalar(value) {
			return nil, &BuildError{Op: "prop", Key: key, Err: ErrInvalidAttribute,
				Cause: fmt.Errorf("got %T", value)}
		}
		out[key] = value
	}
	return out, nil
}

func normalizeChildren(children []any) ([]*VNode, error) {
	out := make([]*VNode, 0, len(children))
	for i, child := range children {
		switch v := child.(type) {
		case nil:
			continue
		case *VNode:
			if v != nil {
				out = append(out, v)
			}
		case []*VNode:
			for _, c := range v {
				if c != nil {
					out = append(out, c)
				}
			}
		case string:
			out = append(out, Text(v))
		default:
			if !isScalar(v) {
				return nil, &BuildError{Op: "child", Key: strconv.Itoa(i), Err: ErrInvalidChild,
					Cause: fmt.Errorf("got %T", child)}
			}
			out = append(out, Text(Stringify(v)))
		}
	}
	return out, nil
}

// isScalar reports whether value renders as text: strings, bools, numbers
// (including named types of those kinds) and fmt.Stringer.
func isScalar(value any) bool {
	if _, ok := value.(fmt.Stringer); ok {
		return true
	}
	switch reflect.ValueOf(value).Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// Stringify renders a scalar prop or child value as text.
func Stringify(value any) string {
	if s, ok := value.(fmt.Stringer); ok {
		return s.String()
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'g', -1, 64)
	default:
		return fmt.Sprint(value)
	}
}
