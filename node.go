package sovt

import (
	"hash/fnv"
	"path/filepath"
	"strings"
	"sync"
)

// Node is a single interned path segment. It stores only its name and a
// reference to its parent; the full path is implied by the parent chain.
// Nodes form a tree structure where shared prefixes are represented once.
type Node struct {
	parent *Node
	name   string

	mu       sync.Mutex
	children childCache
}

// Root creates or returns the cached root node with the given name.
//
// The name is not cleaned up in any way and taken exactly as is:
// Root("Documents") and Root("Documents/") are different nodes. To create
// a sanitized root node, parse the path with FromPath instead.
func Root(name string) (*Node, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	drainReclaimed()
	return intern(roots, nil, name), nil
}

// Get returns a node with the given path. This is equivalent to calling
// Root(root) and then Child for each of names in order.
func Get(root string, names ...string) (*Node, error) {
	n, err := Root(root)
	if err != nil {
		return nil, err
	}
	for _, name := range names {
		if n, err = n.Child(name); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// FromPath returns a node for the given platform path. Each path segment
// becomes one node, with the root node corresponding to the first segment,
// or to the filesystem root if the path is absolute.
//
// FromPath("/home/user/file.txt") returns the same node as
// Get("/", "home", "user", "file.txt"). FromPath("Documents/file.txt")
// returns the same node as Get("Documents", "file.txt").
func FromPath(path string) (*Node, error) {
	clean := filepath.Clean(path)
	sep := string(filepath.Separator)

	root := clean
	rest := ""
	if vol := filepath.VolumeName(clean); len(clean) > len(vol) && clean[len(vol)] == filepath.Separator {
		root = clean[:len(vol)+1]
		rest = clean[len(vol)+1:]
	} else if i := strings.Index(clean, sep); i >= 0 {
		root = clean[:i]
		rest = clean[i+1:]
	}

	n, err := Root(root)
	if err != nil {
		return nil, err
	}
	for _, seg := range strings.Split(rest, sep) {
		if seg == "" {
			continue
		}
		if n, err = n.Child(seg); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// Child returns the child node with the given name, creating it if it is
// not cached. The name can comprise any number of path segments; it is not
// parsed or split.
func (n *Node) Child(name string) (*Node, error) {
	if err := checkName(name); err != nil {
		return nil, err
	}
	drainReclaimed()

	n.mu.Lock()
	if m, ok := n.children.(ChildMap); ok {
		// The map synchronizes per key on its own; no need to hold the
		// node lock for the lookup.
		n.mu.Unlock()
		return intern(m, n, name), nil
	}
	child := n.childLocked(name)
	n.mu.Unlock()
	return child, nil
}

// Name returns the name of this node, exactly as it was passed in to
// create the node.
func (n *Node) Name() string {
	return n.name
}

// Parent returns the parent node, or nil if this is a root node.
func (n *Node) Parent() *Node {
	return n.parent
}

// Depth returns the number of segments on the path from the root to this
// node, inclusive.
func (n *Node) Depth() int {
	d := 0
	for v := n; v != nil; v = v.parent {
		d++
	}
	return d
}

// Equal reports whether both nodes represent the same segment sequence.
// Live nodes are deduplicated, so for nodes obtained through Root, Get,
// Child or FromPath this coincides with pointer identity.
func (n *Node) Equal(other *Node) bool {
	for n != other {
		if n == nil || other == nil || n.name != other.name {
			return false
		}
		n, other = n.parent, other.parent
	}
	return true
}

// Sum64 returns a hash over the segment sequence from the root to this
// node. Equal nodes hash identically.
func (n *Node) Sum64() uint64 {
	h := uint64(1)
	if n.parent != nil {
		h = n.parent.Sum64()
	}
	f := fnv.New64a()
	f.Write([]byte(n.name))
	return 31*h + f.Sum64()
}

// String renders the full path with the platform separator. A separator is
// only inserted after a parent whose own name does not already end with
// one, so roots like "/" render without doubling.
func (n *Node) String() string {
	if n.parent == nil {
		return n.name
	}
	var sb strings.Builder
	n.writeTo(&sb)
	return sb.String()
}

func (n *Node) writeTo(sb *strings.Builder) {
	if n.parent != nil {
		n.parent.writeTo(sb)
		if n.parent.name[len(n.parent.name)-1] != filepath.Separator {
			sb.WriteByte(filepath.Separator)
		}
	}
	sb.WriteString(n.name)
}

// childMap returns the node's cache if it has reached map state.
func (n *Node) childMap() (ChildMap, bool) {
	n.mu.Lock()
	m, ok := n.children.(ChildMap)
	n.mu.Unlock()
	return m, ok
}

func checkName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrBlankName
	}
	return nil
}
