package sovt

import (
	"hash/fnv"
	"sync"
)

// ChildMap is the concurrent map a node's child cache is promoted to once
// it outgrows the array state. The root registry uses the same contract.
//
// Update is the heart of the interning operation and must apply f to the
// current entry and store its result as one indivisible step per key.
type ChildMap interface {
	// Update atomically replaces the entry stored under name with f's
	// result. f receives the current entry, or nil if the key is absent;
	// returning nil removes the key.
	Update(name string, f func(cur *Entry) *Entry)

	// Load returns the entry stored under name.
	Load(name string) (*Entry, bool)

	// CompareAndDelete removes name only if the stored entry is old.
	CompareAndDelete(name string, old *Entry) bool

	// Len returns the number of stored entries, dead ones included.
	Len() int

	// Range calls f for each entry until f returns false.
	Range(f func(name string, e *Entry) bool)
}

// lockedMap guards a plain map with a single mutex. Lowest memory
// overhead; the default choice for per-node caches.
type lockedMap struct {
	mu sync.Mutex
	m  map[string]*Entry
}

// NewLockedMap returns a ChildMap guarded by a single mutex.
func NewLockedMap() ChildMap {
	return &lockedMap{m: make(map[string]*Entry)}
}

func (l *lockedMap) Update(name string, f func(cur *Entry) *Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if next := f(l.m[name]); next != nil {
		l.m[name] = next
	} else {
		delete(l.m, name)
	}
}

func (l *lockedMap) Load(name string) (*Entry, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.m[name]
	return e, ok
}

func (l *lockedMap) CompareAndDelete(name string, old *Entry) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.m[name] != old {
		return false
	}
	delete(l.m, name)
	return true
}

func (l *lockedMap) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.m)
}

func (l *lockedMap) Range(f func(name string, e *Entry) bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for name, e := range l.m {
		if !f(name, e) {
			return
		}
	}
}

// shardedMap spreads keys over independently locked shards, trading memory
// for less contention. Used for the root registry and available through
// MapFactory for hot nodes.
type shardedMap struct {
	shards []lockedMap
}

// NewShardedMap returns a ChildMap with the given number of shards.
func NewShardedMap(shards int) ChildMap {
	if shards < 1 {
		shards = 1
	}
	s := &shardedMap{shards: make([]lockedMap, shards)}
	for i := range s.shards {
		s.shards[i].m = make(map[string]*Entry)
	}
	return s
}

func (s *shardedMap) shard(name string) *lockedMap {
	h := fnv.New32a()
	h.Write([]byte(name))
	return &s.shards[h.Sum32()%uint32(len(s.shards))]
}

func (s *shardedMap) Update(name string, f func(cur *Entry) *Entry) {
	s.shard(name).Update(name, f)
}

func (s *shardedMap) Load(name string) (*Entry, bool) {
	return s.shard(name).Load(name)
}

func (s *shardedMap) CompareAndDelete(name string, old *Entry) bool {
	return s.shard(name).CompareAndDelete(name, old)
}

func (s *shardedMap) Len() int {
	total := 0
	for i := range s.shards {
		total += s.shards[i].Len()
	}
	return total
}

func (s *shardedMap) Range(f func(name string, e *Entry) bool) {
	for i := range s.shards {
		done := false
		s.shards[i].Range(func(name string, e *Entry) bool {
			if !f(name, e) {
				done = true
				return false
			}
			return true
		})
		if done {
			return
		}
	}
}
