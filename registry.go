package sovt

import "runtime"

const (
	// registryShards is the shard count of the process-wide root registry.
	registryShards = 16

	// reclaimBuffer bounds the reclamation queue. When the queue is full,
	// notifications are dropped; the stale entry is then replaced on the
	// next interning of the same name instead.
	reclaimBuffer = 1024
)

// roots is the process-wide registry of root nodes. It lives for the
// process duration and is never torn down.
var roots = NewShardedMap(registryShards)

// reclaimed receives entries whose node has been collected. It is drained
// cooperatively at the start of every Root and Child call; there is no
// background reclamation goroutine.
var reclaimed = make(chan *Entry, reclaimBuffer)

// intern returns the unique live node for name in m, constructing and
// installing it if the slot is absent or its node has been reclaimed.
//
// The liveness check and the installation run inside the map's atomic
// per-key update. A plain load-then-store would race against a concurrent
// reclamation clearing the slot between the two steps.
func intern(m ChildMap, parent *Node, name string) *Node {
	var node *Node
	m.Update(name, func(cur *Entry) *Entry {
		if cur != nil {
			if live := cur.Value(); live != nil {
				node = live
				return cur
			}
		}
		node = &Node{parent: parent, name: name}
		return queuedEntry(node)
	})
	return node
}

// queuedEntry wraps n in a weak entry that reports to the reclamation
// queue once n is collected. Only map-held entries are queued; single and
// array slots are pruned during their own scans instead.
func queuedEntry(n *Node) *Entry {
	e := newEntry(n)
	runtime.AddCleanup(n, enqueueReclaimed, e)
	return e
}

func enqueueReclaimed(e *Entry) {
	select {
	case reclaimed <- e:
	default:
	}
}

// drainReclaimed purges pending dead entries from their owning caches.
// Eviction compares the stored entry against the enqueued one, so a newer
// live entry installed under the same name is never removed.
func drainReclaimed() {
	for {
		select {
		case e := <-reclaimed:
			if e.parent == nil {
				roots.CompareAndDelete(e.name, e)
			} else if m, ok := e.parent.childMap(); ok {
				m.CompareAndDelete(e.name, e)
			}
		default:
			return
		}
	}
}
