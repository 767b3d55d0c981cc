package sovt

import (
	"fmt"
	"weak"
)

// childCache is the per-node child storage. It grows through four states
// and is never downgraded:
//
//	nil        no children yet
//	*Entry     a single weak slot
//	arrayCache a fixed-size array of weak slots (capacity MapThreshold)
//	ChildMap   an unbounded concurrent map
//
// Transitions and all array/single mutation happen under the owning node's
// lock. Map state is the exception: the map carries its own per-key
// synchronization, so lookups release the node lock first.
type childCache any

// Entry is a weak cache slot. It keeps the child's coordinates (parent and
// name) so the slot can be located and purged after the child is gone.
type Entry struct {
	parent *Node
	name   string
	ref    weak.Pointer[Node]
}

func newEntry(n *Node) *Entry {
	return &Entry{parent: n.parent, name: n.name, ref: weak.Make(n)}
}

// Value resolves the weak reference. Returns nil once the node has been
// reclaimed.
func (e *Entry) Value() *Node {
	return e.ref.Value()
}

// arrayCache holds up to MapThreshold weak slots. Dead slots are reused and
// compacted gradually: each lookup closes at most one gap per preceding
// gap. Slots are filled left to right, so a nil slot ends the scan.
type arrayCache []*Entry

// childLocked resolves a child in the pre-map cache states. Caller holds
// n.mu; the cache is known not to be in map state.
func (n *Node) childLocked(name string) *Node {
	switch c := n.children.(type) {
	case nil:
		child := &Node{parent: n, name: name}
		n.children = newEntry(child)
		return child
	case *Entry:
		return n.childFromSingle(c, name)
	case arrayCache:
		return n.childFromArray(c, name)
	default:
		panic(fmt.Sprintf("sovt: unexpected child cache state %T", c))
	}
}

func (n *Node) childFromSingle(e *Entry, name string) *Node {
	cached := e.Value()
	if cached == nil {
		// The only child was reclaimed; reuse the slot.
		child := &Node{parent: n, name: name}
		n.children = newEntry(child)
		return child
	}
	if cached.name == name {
		return cached
	}

	// Second distinct child: upgrade to an array.
	a := make(arrayCache, arrayCapacity())
	a[0] = e
	child := &Node{parent: n, name: name}
	a[1] = newEntry(child)
	n.children = a
	return child
}

func (n *Node) childFromArray(a arrayCache, name string) *Node {
	free := -1
	var child *Node
	for i := 0; i < len(a); i++ {
		if a[i] == nil {
			if free == -1 {
				free = i
			}
			break
		}
		v := a[i].Value()
		if v == nil {
			if free == -1 {
				free = i
			}
		} else if child == nil && v.name == name {
			child = v
			if free == -1 {
				return child
			}
		}
		if free >= 0 && free < i {
			// Shift one slot toward the first gap. Later gaps wait for
			// later lookups.
			a[free] = a[i]
			free++
			a[i] = nil
		}
	}
	if child != nil {
		return child
	}
	if free >= 0 {
		child = &Node{parent: n, name: name}
		a[free] = newEntry(child)
		return child
	}

	// Array is full with no reusable slot: upgrade to a map. Only live
	// entries carry over; from here on, slots are registered with the
	// reclamation queue.
	m := MapFactory()
	for _, e := range a {
		if v := e.Value(); v != nil {
			m.Update(v.name, func(*Entry) *Entry { return queuedEntry(v) })
		}
	}
	child = &Node{parent: n, name: name}
	m.Update(name, func(*Entry) *Entry { return queuedEntry(child) })
	n.children = m
	return child
}

func arrayCapacity() int {
	if MapThreshold < 2 {
		return 2
	}
	return MapThreshold
}
