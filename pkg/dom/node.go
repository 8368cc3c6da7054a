package dom

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrInvalidCharacter is returned for tag or attribute names that are
	// not valid names.
	ErrInvalidCharacter = errors.New("dom: invalid character in name")

	// ErrHierarchy is returned when an insertion would produce an invalid
	// tree: children under a text node, a nil child, or a cycle.
	ErrHierarchy = errors.New("dom: hierarchy request error")

	// ErrNotChild is returned by RemoveChild for a node with another parent.
	ErrNotChild = errors.New("dom: node is not a child of this node")

	// ErrWrongDocument is returned when nodes of different documents are
	// combined.
	ErrWrongDocument = errors.New("dom: node belongs to another document")

	// ErrNilListener is returned when registering a nil event listener.
	ErrNilListener = errors.New("dom: event listener is nil")

	// ErrNotElement is returned for element-only operations on text nodes.
	ErrNotElement = errors.New("dom: node is not an element")
)

// NodeType distinguishes elements from text nodes.
type NodeType uint8

const (
	ElementNode NodeType = iota + 1
	TextNode
)

// String returns the string representation of the NodeType.
func (t NodeType) String() string {
	switch t {
	case ElementNode:
		return "Element"
	case TextNode:
		return "Text"
	default:
		return "Unknown"
	}
}

// Attr is a single element attribute.
type Attr struct {
	Name  string
	Value string
}

// Document creates nodes and owns the root body element.
type Document struct {
	body *Node
}

// NewDocument creates an empty document with a body element.
func NewDocument() *Document {
	d := &Document{}
	d.body = &Node{typ: ElementNode, tag: "body", doc: d}
	return d
}

// Body returns the document's root element.
func (d *Document) Body() *Node {
	return d.body
}

// CreateTextNode creates a detached text node.
func (d *Document) CreateTextNode(data string) *Node {
	return &Node{typ: TextNode, data: data, doc: d}
}

// CreateElement creates a detached element. Tag names are lowercased;
// names that are not valid return ErrInvalidCharacter.
func (d *Document) CreateElement(tag string) (*Node, error) {
	if !validName(tag) {
		return nil, &NameError{Kind: "tag", Name: tag}
	}
	return &Node{typ: ElementNode, tag: strings.ToLower(tag), doc: d}, nil
}

// NameError reports an invalid tag or attribute name.
type NameError struct {
	Kind string
	Name string
}

func (e *NameError) Error() string {
	return "dom: invalid " + e.Kind + " name " + `"` + e.Name + `"`
}

// Unwrap returns ErrInvalidCharacter.
func (e *NameError) Unwrap() error {
	return ErrInvalidCharacter
}

// validName accepts an ASCII letter followed by letters, digits, '-', '_',
// '.' or ':'.
func validName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '-' || c == '_' || c == '.' || c == ':'):
		default:
			return false
		}
	}
	return true
}

// Node is a live display-tree node: an element or a text node.
type Node struct {
	typ       NodeType
	tag       string
	data      string
	attrs     []Attr
	listeners map[string][]Listener
	children  []*Node
	parent    *Node
	doc       *Document
	observers []*observer
}

// Type returns the node type.
func (n *Node) Type() NodeType { return n.typ }

// Tag returns the lowercased tag name, or "" for text nodes.
func (n *Node) Tag() string { return n.tag }

// Data returns the text of a text node.
func (n *Node) Data() string { return n.data }

// OwnerDocument returns the document that created the node.
func (n *Node) OwnerDocument() *Document { return n.doc }

// Parent returns the parent node, or nil when detached.
func (n *Node) Parent() *Node { return n.parent }

// FirstChild returns the first child or nil.
func (n *Node) FirstChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[0]
}

// LastChild returns the last child or nil.
func (n *Node) LastChild() *Node {
	if len(n.children) == 0 {
		return nil
	}
	return n.children[len(n.children)-1]
}

// ChildCount returns the number of children.
func (n *Node) ChildCount() int { return len(n.children) }

// Child returns the i-th child or nil when out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// ChildNodes returns a copy of the child list.
func (n *Node) ChildNodes() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// SetAttribute sets or replaces an attribute. Attributes keep the order in
// which they were first set.
func (n *Node) SetAttribute(name, value string) error {
	if n.typ != ElementNode {
		return ErrNotElement
	}
	if !validName(name) {
		return &NameError{Kind: "attribute", Name: name}
	}
	for i := range n.attrs {
		if n.attrs[i].Name == name {
			n.attrs[i].Value = value
			return nil
		}
	}
	n.attrs = append(n.attrs, Attr{Name: name, Value: value})
	return nil
}

// GetAttribute returns the attribute value and whether it is set.
func (n *Node) GetAttribute(name string) (string, bool) {
	for _, a := range n.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// HasAttribute reports whether the attribute is set.
func (n *Node) HasAttribute(name string) bool {
	_, ok := n.GetAttribute(name)
	return ok
}

// RemoveAttribute removes an attribute if present.
func (n *Node) RemoveAttribute(name string) {
	for i := range n.attrs {
		if n.attrs[i].Name == name {
			n.attrs = append(n.attrs[:i], n.attrs[i+1:]...)
			return
		}
	}
}

// Attributes returns a copy of the attribute list.
func (n *Node) Attributes() []Attr {
	out := make([]Attr, len(n.attrs))
	copy(out, n.attrs)
	return out
}

// AddEventListener registers a listener for the named event.
func (n *Node) AddEventListener(event string, l Listener) error {
	if n.typ != ElementNode {
		return ErrNotElement
	}
	if l == nil {
		return ErrNilListener
	}
	if n.listeners == nil {
		n.listeners = make(map[string][]Listener)
	}
	n.listeners[event] = append(n.listeners[event], l)
	return nil
}

// ListenerCount returns how many listeners are registered for event.
func (n *Node) ListenerCount(event string) int {
	return len(n.listeners[event])
}

// EventTypes returns the sorted names of events with listeners.
func (n *Node) EventTypes() []string {
	if len(n.listeners) == 0 {
		return nil
	}
	types := make([]string, 0, len(n.listeners))
	for name := range n.listeners {
		types = append(types, name)
	}
	sort.Strings(types)
	return types
}

// AppendChild appends child as the last child. A child that already has a
// parent is moved.
func (n *Node) AppendChild(child *Node) error {
	if child == nil || n.typ != ElementNode {
		return ErrHierarchy
	}
	if child.doc != n.doc {
		return ErrWrongDocument
	}
	for p := n; p != nil; p = p.parent {
		if p == child {
			return ErrHierarchy
		}
	}
	if child.parent != nil {
		if err := child.parent.RemoveChild(child); err != nil {
			return err
		}
	}
	child.parent = n
	n.children = append(n.children, child)
	n.notify(MutationRecord{Type: ChildAdded, Target: n, Node: child, Index: len(n.children) - 1})
	return nil
}

// RemoveChild detaches child from n.
func (n *Node) RemoveChild(child *Node) error {
	if child == nil || child.parent != n {
		return ErrNotChild
	}
	for i, c := range n.children {
		if c != child {
			continue
		}
		copy(n.children[i:], n.children[i+1:])
		n.children[len(n.children)-1] = nil
		n.children = n.children[:len(n.children)-1]
		child.parent = nil
		n.notify(MutationRecord{Type: ChildRemoved, Target: n, Node: child, Index: i})
		return nil
	}
	return ErrNotChild
}

// Remove detaches n from its parent. Detached nodes are left alone.
func (n *Node) Remove() error {
	if n.parent == nil {
		return nil
	}
	return n.parent.RemoveChild(n)
}

// TextContent returns the concatenated text of n and its descendants.
func (n *Node) TextContent() string {
	if n.typ == TextNode {
		return n.data
	}
	var b strings.Builder
	n.collectText(&b)
	return b.String()
}

func (n *Node) collectText(b *strings.Builder) {
	for _, c := range n.children {
		if c.typ == TextNode {
			b.WriteString(c.data)
			continue
		}
		c.collectText(b)
	}
}

// Find returns the first node in depth-first pre-order, n included, for
// which match returns true.
func (n *Node) Find(match func(*Node) bool) *Node {
	if match(n) {
		return n
	}
	for _, c := range n.children {
		if found := c.Find(match); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every node in depth-first pre-order for which match
// returns true.
func (n *Node) FindAll(match func(*Node) bool) []*Node {
	var out []*Node
	n.walk(func(c *Node) {
		if match(c) {
			out = append(out, c)
		}
	})
	return out
}

func (n *Node) walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.walk(fn)
	}
}

// ElementPath returns the position of n below ancestor as a list of
// element-only child indexes. Text siblings are not counted, so paths match
// a browser tree even where adjacent text nodes were merged by the parser.
func (n *Node) ElementPath(ancestor *Node) ([]int, bool) {
	var path []int
	cur := n
	for cur != ancestor {
		if cur == nil || cur.parent == nil || cur.typ != ElementNode {
			return nil, false
		}
		idx := 0
		for _, sib := range cur.parent.children {
			if sib == cur {
				break
			}
			if sib.typ == ElementNode {
				idx++
			}
		}
		path = append(path, idx)
		cur = cur.parent
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, true
}

// ElementAt resolves an element-index path produced by ElementPath.
func (n *Node) ElementAt(path []int) (*Node, bool) {
	cur := n
	for _, want := range path {
		var next *Node
		idx := 0
		for _, c := range cur.children {
			if c.typ != ElementNode {
				continue
			}
			if idx == want {
				next = c
				break
			}
			idx++
		}
		if next == nil {
			return nil, false
		}
		cur = next
	}
	return cur, true
}
