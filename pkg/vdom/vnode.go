package vdom

import (
	"sort"
	"strings"

	"github.com/vango-dev/vlite/pkg/dom"
)

// Kind is the node type discriminator.
type Kind uint8

const (
	KindText    Kind = iota // Plain text leaf
	KindElement             // Tag element or component
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindElement:
		return "Element"
	default:
		return "Unknown"
	}
}

// EventPrefix marks props that bind event handlers.
const EventPrefix = "on"

// Props holds attributes, event handlers, or component properties.
type Props map[string]any

// Handler handles an event fired on a materialized element.
type Handler func(*dom.Event)

// ComponentFunc renders props into a VNode. It must be a pure function of
// its props.
type ComponentFunc func(Props) *VNode

// VNode is a virtual node. Nodes are never modified after construction.
type VNode struct {
	Kind      Kind          // Node type
	Tag       string        // Element tag name (e.g., "div")
	Component ComponentFunc // Set instead of Tag for component nodes
	Props     Props         // Attributes and event handlers
	Children  []*VNode      // Child nodes, in order
	Text      string        // For KindText
}

// IsComponent reports whether the node's type is a component function.
func (v *VNode) IsComponent() bool {
	return v != nil && v.Kind == KindElement && v.Component != nil
}

// IsInteractive returns true if this node binds at least one event handler.
func (v *VNode) IsInteractive() bool {
	if v == nil || v.Kind != KindElement || v.Component != nil {
		return false
	}
	for key := range v.Props {
		if IsEventKey(key) {
			return true
		}
	}
	return false
}

// Handlers returns the event handlers keyed by event name.
func (v *VNode) Handlers() map[string]Handler {
	if v == nil || v.Component != nil {
		return nil
	}
	out := make(map[string]Handler)
	for key, value := range v.Props {
		if !IsEventKey(key) {
			continue
		}
		if h, ok := AsHandler(value); ok {
			out[EventName(key)] = h
		}
	}
	return out
}

// Attr is a stringified attribute.
type Attr struct {
	Key   string
	Value string
}

// Attributes returns the non-event props as strings, sorted by key.
func (v *VNode) Attributes() []Attr {
	if v == nil || v.Component != nil {
		return nil
	}
	var out []Attr
	for _, key := range SortedKeys(v.Props) {
		value := v.Props[key]
		if IsEventKey(key) || value == nil {
			continue
		}
		out = append(out, Attr{Key: key, Value: Stringify(value)})
	}
	return out
}

// IsEventKey reports whether a prop key binds an event handler. The check
// is a plain prefix test: "onion" binds the event "ion".
func IsEventKey(key string) bool {
	return strings.HasPrefix(key, EventPrefix)
}

// EventName strips the event prefix from a prop key.
func EventName(key string) string {
	return strings.TrimPrefix(key, EventPrefix)
}

// AsHandler converts the accepted handler shapes to a Handler.
func AsHandler(value any) (Handler, bool) {
	switch h := value.(type) {
	case Handler:
		return h, h != nil
	case func(*dom.Event):
		return Handler(h), h != nil
	case func():
		if h == nil {
			return nil, false
		}
		return func(*dom.Event) { h() }, true
	default:
		return nil, false
	}
}

// SortedKeys returns the prop keys in lexical order.
func SortedKeys(props Props) []string {
	keys := make([]string, 0, len(props))
	for k := range props {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
