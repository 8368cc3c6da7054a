package dom

// MutationType describes a child-list change.
type MutationType uint8

const (
	ChildAdded MutationType = iota + 1
	ChildRemoved
)

// String returns the string representation of the MutationType.
func (t MutationType) String() string {
	switch t {
	case ChildAdded:
		return "added"
	case ChildRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// MutationRecord describes one child-list change on Target.
type MutationRecord struct {
	Type   MutationType
	Target *Node
	Node   *Node
	// Index is the child position the node was added at or removed from.
	Index int
	// Remaining is Target's child count after the change.
	Remaining int
}

type observer struct {
	fn func(MutationRecord)
}

// Observe registers fn to be called synchronously after every child-list
// change of n. The returned function stops observation.
func (n *Node) Observe(fn func(MutationRecord)) (cancel func()) {
	o := &observer{fn: fn}
	n.observers = append(n.observers, o)
	return func() {
		for i, cur := range n.observers {
			if cur == o {
				n.observers = append(n.observers[:i:i], n.observers[i+1:]...)
				return
			}
		}
	}
}

func (n *Node) notify(rec MutationRecord) {
	if len(n.observers) == 0 {
		return
	}
	rec.Remaining = len(n.children)
	observers := make([]*observer, len(n.observers))
	copy(observers, n.observers)
	for _, o := range observers {
		o.fn(rec)
	}
}
