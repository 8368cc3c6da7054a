package dom

// Event is delivered to listeners by Dispatch.
type Event struct {
	// Type is the event name without the "on" prefix, e.g. "click".
	Type string

	// Value carries the input value reported by the client, if any.
	Value string

	// Target is the node the event was dispatched on.
	Target *Node

	// CurrentTarget is the node whose listener is running.
	CurrentTarget *Node

	stopped bool
}

// StopPropagation prevents the event from reaching further ancestors.
// Remaining listeners on the current node still run.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// Listener handles an event.
type Listener func(*Event)

// Dispatch delivers ev to n and then to each ancestor, running listeners in
// registration order. The propagation path and listener lists are captured
// before the first listener runs, so listeners may freely rebuild the tree.
// It returns the number of listeners invoked.
func (n *Node) Dispatch(ev *Event) int {
	ev.Target = n

	type stop struct {
		node      *Node
		listeners []Listener
	}
	var path []stop
	for cur := n; cur != nil; cur = cur.parent {
		if ls := cur.listeners[ev.Type]; len(ls) > 0 {
			captured := make([]Listener, len(ls))
			copy(captured, ls)
			path = append(path, stop{node: cur, listeners: captured})
		}
	}

	invoked := 0
	for _, s := range path {
		ev.CurrentTarget = s.node
		for _, l := range s.listeners {
			l(ev)
			invoked++
		}
		if ev.stopped {
			break
		}
	}
	ev.CurrentTarget = nil
	return invoked
}
