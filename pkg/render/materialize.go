package render

import (
	"errors"
	"fmt"

	"github.com/vango-dev/vlite/pkg/dom"
	"github.com/vango-dev/vlite/pkg/vdom"
)

var (
	// ErrNilNode is returned when there is no node to materialize, either
	// because the caller passed nil or a component returned nil.
	ErrNilNode = errors.New("render: nil node")

	// ErrNilContainer is returned when rendering into a nil container.
	ErrNilContainer = errors.New("render: nil container")

	// ErrNilDocument is returned when materializing without a document.
	ErrNilDocument = errors.New("render: nil document")
)

// Materialize creates the display subtree for node in doc. Components are
// invoked with their props until a tag or text node results. Props are
// applied in key order: "on*" keys register listeners, the rest set
// attributes. The returned node is detached.
func Materialize(doc *dom.Document, node *vdom.VNode) (*dom.Node, error) {
	m := materializer{doc: doc}
	return m.node(node)
}

type materializer struct {
	doc   *dom.Document
	count int
}

func (m *materializer) node(v *vdom.VNode) (*dom.Node, error) {
	if m.doc == nil {
		return nil, ErrNilDocument
	}
	v = vdom.Resolve(v)
	if v == nil {
		return nil, ErrNilNode
	}
	m.count++

	if v.Kind == vdom.KindText {
		return m.doc.CreateTextNode(v.Text), nil
	}

	el, err := m.doc.CreateElement(v.Tag)
	if err != nil {
		return nil, err
	}

	for _, key := range vdom.SortedKeys(v.Props) {
		value := v.Props[key]
		if vdom.IsEventKey(key) {
			h, _ := vdom.AsHandler(value)
			var listener dom.Listener
			if h != nil {
				listener = dom.Listener(h)
			}
			if err := el.AddEventListener(vdom.EventName(key), listener); err != nil {
				return nil, fmt.Errorf("<%s> %s: %w", v.Tag, key, err)
			}
			continue
		}
		if value == nil {
			continue
		}
		if err := el.SetAttribute(key, vdom.Stringify(value)); err != nil {
			return nil, fmt.Errorf("<%s> %s: %w", v.Tag, key, err)
		}
	}

	for i, c := range v.Children {
		child, err := m.node(c)
		if err != nil {
			return nil, fmt.Errorf("<%s> child %d: %w", v.Tag, i, err)
		}
		if err := el.AppendChild(child); err != nil {
			return nil, err
		}
	}
	return el, nil
}

// Render replaces the content of container with the materialized node. The
// new tree is built before anything is removed, so a failed build leaves
// the container as it was.
func Render(node *vdom.VNode, container *dom.Node) error {
	_, err := renderInto(node, container)
	return err
}

// renderInto is Render that also reports the number of nodes created.
func renderInto(node *vdom.VNode, container *dom.Node) (int, error) {
	if container == nil {
		return 0, ErrNilContainer
	}
	m := materializer{doc: container.OwnerDocument()}
	tree, err := m.node(node)
	if err != nil {
		return 0, err
	}
	for container.ChildCount() > 0 {
		if err := container.RemoveChild(container.FirstChild()); err != nil {
			return 0, err
		}
	}
	if err := container.AppendChild(tree); err != nil {
		return 0, err
	}
	return m.count, nil
}
