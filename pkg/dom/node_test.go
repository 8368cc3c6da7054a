package dom

import (
	"errors"
	"testing"
)

func mustElement(t *testing.T, doc *Document, tag string) *Node {
	t.Helper()
	el, err := doc.CreateElement(tag)
	if err != nil {
		t.Fatalf("CreateElement(%q) error = %v", tag, err)
	}
	return el
}

func TestNodeTypeString(t *testing.T) {
	tests := []struct {
		typ  NodeType
		want string
	}{
		{ElementNode, "Element"},
		{TextNode, "Text"},
		{NodeType(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("NodeType(%d).String() = %q, want %q", tt.typ, got, tt.want)
		}
	}
}

func TestCreateElement(t *testing.T) {
	doc := NewDocument()

	tests := []struct {
		tag     string
		want    string
		wantErr bool
	}{
		{"div", "div", false},
		{"DIV", "div", false},
		{"my-widget", "my-widget", false},
		{"h1", "h1", false},
		{"", "", true},
		{"1div", "", true},
		{"di v", "", true},
		{"<script>", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			el, err := doc.CreateElement(tt.tag)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidCharacter) {
					t.Fatalf("CreateElement(%q) error = %v, want ErrInvalidCharacter", tt.tag, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("CreateElement(%q) error = %v", tt.tag, err)
			}
			if el.Tag() != tt.want || el.Type() != ElementNode {
				t.Errorf("got tag %q type %v", el.Tag(), el.Type())
			}
			if el.OwnerDocument() != doc {
				t.Error("OwnerDocument mismatch")
			}
		})
	}
}

func TestTextNode(t *testing.T) {
	doc := NewDocument()
	text := doc.CreateTextNode("hello")

	if text.Type() != TextNode || text.Data() != "hello" {
		t.Fatalf("got %v %q", text.Type(), text.Data())
	}
	if err := text.SetAttribute("class", "x"); !errors.Is(err, ErrNotElement) {
		t.Errorf("SetAttribute on text = %v, want ErrNotElement", err)
	}
	if err := text.AddEventListener("click", func(*Event) {}); !errors.Is(err, ErrNotElement) {
		t.Errorf("AddEventListener on text = %v, want ErrNotElement", err)
	}
	if err := text.AppendChild(doc.CreateTextNode("x")); !errors.Is(err, ErrHierarchy) {
		t.Errorf("AppendChild on text = %v, want ErrHierarchy", err)
	}
	if len(text.Attributes()) != 0 || text.ChildCount() != 0 {
		t.Error("text nodes have no attributes or children")
	}
}

func TestAttributes(t *testing.T) {
	doc := NewDocument()
	el := mustElement(t, doc, "div")

	if err := el.SetAttribute("id", "main"); err != nil {
		t.Fatal(err)
	}
	if err := el.SetAttribute("class", "a"); err != nil {
		t.Fatal(err)
	}
	if err := el.SetAttribute("id", "other"); err != nil {
		t.Fatal(err)
	}

	attrs := el.Attributes()
	if len(attrs) != 2 || attrs[0] != (Attr{"id", "other"}) || attrs[1] != (Attr{"class", "a"}) {
		t.Errorf("Attributes() = %v", attrs)
	}
	if v, ok := el.GetAttribute("class"); !ok || v != "a" {
		t.Errorf("GetAttribute(class) = %q, %v", v, ok)
	}
	if el.HasAttribute("title") {
		t.Error("unexpected title attribute")
	}

	el.RemoveAttribute("id")
	if el.HasAttribute("id") {
		t.Error("id should be removed")
	}

	if err := el.SetAttribute("bad name", "x"); !errors.Is(err, ErrInvalidCharacter) {
		t.Errorf("SetAttribute(bad name) = %v", err)
	}
}

func TestEventListeners(t *testing.T) {
	doc := NewDocument()
	el := mustElement(t, doc, "button")

	if err := el.AddEventListener("click", nil); !errors.Is(err, ErrNilListener) {
		t.Errorf("nil listener = %v, want ErrNilListener", err)
	}
	_ = el.AddEventListener("click", func(*Event) {})
	_ = el.AddEventListener("click", func(*Event) {})
	_ = el.AddEventListener("input", func(*Event) {})

	if el.ListenerCount("click") != 2 {
		t.Errorf("ListenerCount(click) = %d", el.ListenerCount("click"))
	}
	types := el.EventTypes()
	if len(types) != 2 || types[0] != "click" || types[1] != "input" {
		t.Errorf("EventTypes() = %v", types)
	}
}

func TestAppendAndRemoveChild(t *testing.T) {
	doc := NewDocument()
	parent := mustElement(t, doc, "ul")
	a := mustElement(t, doc, "li")
	b := mustElement(t, doc, "li")
	c := doc.CreateTextNode("c")

	for _, child := range []*Node{a, b, c} {
		if err := parent.AppendChild(child); err != nil {
			t.Fatal(err)
		}
	}
	if parent.ChildCount() != 3 || parent.FirstChild() != a || parent.LastChild() != c || parent.Child(1) != b {
		t.Fatalf("unexpected children %v", parent.ChildNodes())
	}
	if parent.Child(5) != nil || parent.Child(-1) != nil {
		t.Error("out of range Child should be nil")
	}
	if b.Parent() != parent {
		t.Error("parent not set")
	}

	if err := parent.RemoveChild(b); err != nil {
		t.Fatal(err)
	}
	if parent.ChildCount() != 2 || parent.Child(1) != c || b.Parent() != nil {
		t.Error("RemoveChild did not detach")
	}
	if err := parent.RemoveChild(b); !errors.Is(err, ErrNotChild) {
		t.Errorf("second RemoveChild = %v, want ErrNotChild", err)
	}

	if err := a.Remove(); err != nil || parent.FirstChild() != c {
		t.Errorf("Remove() = %v, first = %v", err, parent.FirstChild())
	}
	if err := a.Remove(); err != nil {
		t.Errorf("Remove() on detached node = %v", err)
	}
}

func TestAppendChildMovesNode(t *testing.T) {
	doc := NewDocument()
	from := mustElement(t, doc, "div")
	to := mustElement(t, doc, "div")
	child := mustElement(t, doc, "span")

	_ = from.AppendChild(child)
	if err := to.AppendChild(child); err != nil {
		t.Fatal(err)
	}
	if from.ChildCount() != 0 || to.FirstChild() != child || child.Parent() != to {
		t.Error("child was not moved")
	}
}

func TestAppendChildHierarchyErrors(t *testing.T) {
	doc := NewDocument()
	outer := mustElement(t, doc, "div")
	inner := mustElement(t, doc, "div")
	_ = outer.AppendChild(inner)

	if err := inner.AppendChild(outer); !errors.Is(err, ErrHierarchy) {
		t.Errorf("cycle = %v, want ErrHierarchy", err)
	}
	if err := outer.AppendChild(outer); !errors.Is(err, ErrHierarchy) {
		t.Errorf("self = %v, want ErrHierarchy", err)
	}
	if err := outer.AppendChild(nil); !errors.Is(err, ErrHierarchy) {
		t.Errorf("nil = %v, want ErrHierarchy", err)
	}

	other := NewDocument()
	if err := outer.AppendChild(other.CreateTextNode("x")); !errors.Is(err, ErrWrongDocument) {
		t.Errorf("foreign node = %v, want ErrWrongDocument", err)
	}
}

func TestTextContentAndFind(t *testing.T) {
	doc := NewDocument()
	div := mustElement(t, doc, "div")
	strong := mustElement(t, doc, "strong")
	_ = div.AppendChild(doc.CreateTextNode("Hello "))
	_ = div.AppendChild(strong)
	_ = strong.AppendChild(doc.CreateTextNode("World"))

	if got := div.TextContent(); got != "Hello World" {
		t.Errorf("TextContent() = %q", got)
	}

	found := div.Find(func(n *Node) bool { return n.Tag() == "strong" })
	if found != strong {
		t.Errorf("Find(strong) = %v", found)
	}
	if div.Find(func(n *Node) bool { return n.Tag() == "em" }) != nil {
		t.Error("Find(em) should be nil")
	}

	texts := div.FindAll(func(n *Node) bool { return n.Type() == TextNode })
	if len(texts) != 2 || texts[0].Data() != "Hello " || texts[1].Data() != "World" {
		t.Errorf("FindAll(text) = %v", texts)
	}
}

func TestElementPath(t *testing.T) {
	doc := NewDocument()
	root := doc.Body()
	main := mustElement(t, doc, "main")
	p := mustElement(t, doc, "p")
	button := mustElement(t, doc, "button")

	_ = root.AppendChild(main)
	_ = main.AppendChild(mustElement(t, doc, "h1"))
	_ = main.AppendChild(doc.CreateTextNode("between"))
	_ = main.AppendChild(p)
	_ = p.AppendChild(doc.CreateTextNode("a"))
	_ = p.AppendChild(doc.CreateTextNode("b"))
	_ = p.AppendChild(button)

	path, ok := button.ElementPath(root)
	if !ok {
		t.Fatal("ElementPath failed")
	}
	want := []int{0, 1, 0}
	if len(path) != len(want) {
		t.Fatalf("ElementPath() = %v, want %v", path, want)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Fatalf("ElementPath() = %v, want %v", path, want)
		}
	}

	got, ok := root.ElementAt(path)
	if !ok || got != button {
		t.Errorf("ElementAt(%v) = %v, %v", path, got, ok)
	}
	if _, ok := root.ElementAt([]int{0, 5}); ok {
		t.Error("ElementAt out of range should fail")
	}
	if got, ok := root.ElementAt(nil); !ok || got != root {
		t.Error("empty path resolves to the receiver")
	}

	detached := mustElement(t, doc, "div")
	if _, ok := detached.ElementPath(root); ok {
		t.Error("detached node has no path")
	}
}
