package dom

import (
	"strings"
	"testing"
)

func buildSample(t *testing.T) *Node {
	t.Helper()
	doc := NewDocument()
	div := mustElement(t, doc, "div")
	_ = div.SetAttribute("class", `a "quoted" <b>`)
	_ = div.AppendChild(doc.CreateTextNode("Hello <World> & 'you'"))
	input := mustElement(t, doc, "input")
	_ = input.SetAttribute("type", "text")
	_ = div.AppendChild(input)
	button := mustElement(t, doc, "button")
	_ = button.AddEventListener("click", func(*Event) {})
	_ = button.AddEventListener("focus", func(*Event) {})
	_ = button.AppendChild(doc.CreateTextNode("Go"))
	_ = div.AppendChild(button)
	return div
}

func TestOuterHTML(t *testing.T) {
	div := buildSample(t)
	want := `<div class="a &quot;quoted&quot; &lt;b&gt;">Hello &lt;World&gt; &amp; &#39;you&#39;<input type="text"><button>Go</button></div>`
	if got := div.OuterHTML(); got != want {
		t.Errorf("OuterHTML() =\n%s\nwant\n%s", got, want)
	}
}

func TestWriteHTMLMarkListeners(t *testing.T) {
	div := buildSample(t)
	var b strings.Builder
	if err := div.WriteHTML(&b, HTMLOptions{MarkListeners: true}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(b.String(), `<button data-vl-on="click focus">Go</button>`) {
		t.Errorf("listener marker missing:\n%s", b.String())
	}
}

func TestWriteHTMLPretty(t *testing.T) {
	doc := NewDocument()
	ul := mustElement(t, doc, "ul")
	li := mustElement(t, doc, "li")
	_ = li.AppendChild(doc.CreateTextNode("one"))
	_ = ul.AppendChild(li)

	var b strings.Builder
	if err := ul.WriteHTML(&b, HTMLOptions{Pretty: true}); err != nil {
		t.Fatal(err)
	}
	want := "<ul>\n  <li>\n    one\n  </li>\n</ul>\n"
	if b.String() != want {
		t.Errorf("pretty =\n%q\nwant\n%q", b.String(), want)
	}
}

func TestInnerHTML(t *testing.T) {
	doc := NewDocument()
	body := doc.Body()
	_ = body.AppendChild(doc.CreateTextNode("a"))
	p := mustElement(t, doc, "p")
	_ = body.AppendChild(p)

	if got := body.InnerHTML(HTMLOptions{}); got != "a<p></p>" {
		t.Errorf("InnerHTML() = %q", got)
	}
}

func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"<script>", "&lt;script&gt;"},
		{`a&b"c'd`, "a&amp;b&quot;c&#39;d"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := escapeHTML(tt.in); got != tt.want {
			t.Errorf("escapeHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEscapeAttr(t *testing.T) {
	if got := escapeAttr("a\nb\tc\r"); got != "a&#10;b&#9;c&#13;" {
		t.Errorf("escapeAttr() = %q", got)
	}
}

func TestIsVoidElement(t *testing.T) {
	if !IsVoidElement("br") || !IsVoidElement("input") || IsVoidElement("div") {
		t.Error("unexpected void element classification")
	}
}
