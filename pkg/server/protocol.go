package server

import (
	"github.com/vango-dev/vlite/pkg/dom"
)

// Message types.
const (
	TypeEvent  = "event"
	TypeRender = "render"
)

// EventMessage is sent by the client when an element with a listener
// receives an event.
type EventMessage struct {
	Type string `json:"type"`

	// Path is the target's element-only index path from the app root.
	Path []int `json:"path"`

	Event string `json:"event"`

	// Value is the target's form value, or the value of the element named
	// by the target's data-value-from attribute.
	Value string `json:"value,omitempty"`

	// Generation is the render the client saw when the event fired. Zero
	// skips the staleness check.
	Generation uint64 `json:"generation,omitempty"`
}

// RenderMessage carries a complete render to the client.
type RenderMessage struct {
	Type       string    `json:"type"`
	Generation uint64    `json:"generation"`
	HTML       string    `json:"html"`
	Tree       *TreeNode `json:"tree,omitempty"`
}

// TreeNode is the wire form of a display node. Text nodes set only Text.
type TreeNode struct {
	Text     *string     `json:"text,omitempty"`
	Tag      string      `json:"tag,omitempty"`
	Attrs    [][2]string `json:"attrs,omitempty"`
	On       []string    `json:"on,omitempty"`
	Children []*TreeNode `json:"children,omitempty"`
}

// EncodeTree converts a display subtree to its wire form.
func EncodeTree(n *dom.Node) *TreeNode {
	if n == nil {
		return nil
	}
	if n.Type() == dom.TextNode {
		text := n.Data()
		return &TreeNode{Text: &text}
	}
	t := &TreeNode{Tag: n.Tag(), On: n.EventTypes()}
	for _, a := range n.Attributes() {
		t.Attrs = append(t.Attrs, [2]string{a.Name, a.Value})
	}
	for _, c := range n.ChildNodes() {
		t.Children = append(t.Children, EncodeTree(c))
	}
	return t
}
