package dom

import (
	"bufio"
	"io"
	"strings"
)

// ListenerAttr is the attribute WriteHTML emits, when MarkListeners is set,
// listing the event types an element listens to.
const ListenerAttr = "data-vl-on"

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// HTMLOptions configures serialization.
type HTMLOptions struct {
	// Pretty enables indented output. Only use it for inspection: the extra
	// whitespace becomes text nodes when parsed.
	Pretty bool

	// Indent is the string used per level in pretty mode (default two spaces).
	Indent string

	// MarkListeners adds a data-vl-on attribute naming the events each
	// element listens to, so a thin client knows what to forward.
	MarkListeners bool
}

// WriteHTML serializes n and its subtree to w.
func (n *Node) WriteHTML(w io.Writer, opts HTMLOptions) error {
	if opts.Indent == "" {
		opts.Indent = "  "
	}
	bw := bufio.NewWriter(w)
	writeNode(bw, n, opts, 0)
	return bw.Flush()
}

// OuterHTML returns n serialized without pretty printing.
func (n *Node) OuterHTML() string {
	var b strings.Builder
	_ = n.WriteHTML(&b, HTMLOptions{})
	return b.String()
}

// InnerHTML returns the serialized children of n.
func (n *Node) InnerHTML(opts HTMLOptions) string {
	if opts.Indent == "" {
		opts.Indent = "  "
	}
	var b strings.Builder
	bw := bufio.NewWriter(&b)
	for _, c := range n.children {
		writeNode(bw, c, opts, 0)
	}
	_ = bw.Flush()
	return b.String()
}

func writeNode(w *bufio.Writer, n *Node, opts HTMLOptions, depth int) {
	if n.typ == TextNode {
		if opts.Pretty {
			writeIndent(w, opts.Indent, depth)
		}
		w.WriteString(escapeHTML(n.data))
		if opts.Pretty {
			w.WriteByte('\n')
		}
		return
	}

	if opts.Pretty {
		writeIndent(w, opts.Indent, depth)
	}
	w.WriteByte('<')
	w.WriteString(n.tag)
	for _, a := range n.attrs {
		w.WriteByte(' ')
		w.WriteString(a.Name)
		w.WriteString(`="`)
		w.WriteString(escapeAttr(a.Value))
		w.WriteByte('"')
	}
	if opts.MarkListeners && len(n.listeners) > 0 {
		w.WriteString(" " + ListenerAttr + `="`)
		w.WriteString(escapeAttr(strings.Join(n.EventTypes(), " ")))
		w.WriteByte('"')
	}
	w.WriteByte('>')

	if IsVoidElement(n.tag) {
		if opts.Pretty {
			w.WriteByte('\n')
		}
		return
	}

	if opts.Pretty && len(n.children) > 0 {
		w.WriteByte('\n')
	}
	for _, c := range n.children {
		writeNode(w, c, opts, depth+1)
	}
	if opts.Pretty && len(n.children) > 0 {
		writeIndent(w, opts.Indent, depth)
	}

	w.WriteString("</")
	w.WriteString(n.tag)
	w.WriteByte('>')
	if opts.Pretty {
		w.WriteByte('\n')
	}
}

func writeIndent(w *bufio.Writer, indent string, depth int) {
	for i := 0; i < depth; i++ {
		w.WriteString(indent)
	}
}
