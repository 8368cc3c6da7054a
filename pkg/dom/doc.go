// Package dom is an in-memory display tree: the live nodes that vlite
// materializes virtual trees into.
//
// It models the small part of a browser DOM that a renderer needs:
//
//	doc := dom.NewDocument()
//	el, err := doc.CreateElement("button")
//	el.SetAttribute("class", "primary")
//	el.AddEventListener("click", func(ev *dom.Event) { ... })
//	el.AppendChild(doc.CreateTextNode("Save"))
//	doc.Body().AppendChild(el)
//
// Nodes can be serialized to HTML (WriteHTML), addressed by element index
// paths (ElementPath, ElementAt), observed for child-list mutations
// (Observe) and sent events (Dispatch), which bubble to ancestors.
//
// A Document and its nodes are not safe for concurrent use. Hosts that
// touch a tree from several goroutines serialize access themselves.
package dom
