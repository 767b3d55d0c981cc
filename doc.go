// Package sovt provides a memory-efficient, globally deduplicated tree for
// path-like keys.
//
// Each node stores only its name and a reference to its parent, so shared
// path prefixes consume memory once rather than once per path. Nodes are
// cached in a process-wide tree of weak references: unused subtrees are
// reclaimed by the garbage collector and their cache slots are purged
// lazily on later lookups.
//
// Basic usage:
//
//	file1, _ := sovt.Get("/home/user", "file1.txt")
//	file1.String()          // "/home/user/file1.txt"
//	file1.Parent().String() // "/home/user"
//	file1.Parent().Parent() // nil! Segments are left as-is, not parsed.
//
// Nodes are deduplicated where possible:
//
//	again, _ := sovt.Get("/home/user", "file1.txt")
//	again == file1 // true
//	file2, _ := sovt.Get("/home/user", "file2.txt")
//	file1.Parent() == file2.Parent() // true
//
// This is preserved through the codec:
//
//	data, _ := file1.MarshalBinary()
//	copy1, _ := sovt.UnmarshalNode(data)
//	copy1 == file1 // true
//
// The granularity of the tree follows the caller's segment boundaries:
//
//	a, _ := sovt.Get("/home", "user/file1.txt")
//	b, _ := sovt.Get("/home/user", "file1.txt")
//	a.Equal(b) // false, even though both render the same string
//
// To match the natural segment structure of a path, use FromPath:
//
//	n, _ := sovt.FromPath("/home/user/file1.txt")
//	m, _ := sovt.Get("/", "home", "user", "file1.txt")
//	n == m // true
//
// Whole path sets can be persisted with WriteSnapshot and ReadSnapshot,
// and synced through an OCI registry with the sovt CLI.
package sovt
