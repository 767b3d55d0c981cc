package sovt

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func childMapImpls() map[string]func() ChildMap {
	return map[string]func() ChildMap{
		"locked":  NewLockedMap,
		"sharded": func() ChildMap { return NewShardedMap(4) },
	}
}

func TestChildMapUpdate(t *testing.T) {
	for impl, newMap := range childMapImpls() {
		t.Run(impl, func(t *testing.T) {
			m := newMap()
			node := &Node{name: "a"}

			// insert
			m.Update("a", func(cur *Entry) *Entry {
				require.Nil(t, cur)
				return newEntry(node)
			})
			e, ok := m.Load("a")
			require.True(t, ok)
			assert.Same(t, node, e.Value())
			assert.Equal(t, 1, m.Len())

			// keep
			m.Update("a", func(cur *Entry) *Entry {
				require.Same(t, e, cur)
				return cur
			})
			assert.Equal(t, 1, m.Len())

			// replace
			other := &Node{name: "a"}
			m.Update("a", func(cur *Entry) *Entry { return newEntry(other) })
			e2, ok := m.Load("a")
			require.True(t, ok)
			assert.NotSame(t, e, e2)
			assert.Same(t, other, e2.Value())

			// remove
			m.Update("a", func(cur *Entry) *Entry { return nil })
			_, ok = m.Load("a")
			assert.False(t, ok)
			assert.Equal(t, 0, m.Len())
		})
	}
}

func TestChildMapCompareAndDelete(t *testing.T) {
	for impl, newMap := range childMapImpls() {
		t.Run(impl, func(t *testing.T) {
			m := newMap()
			node := &Node{name: "a"}
			stored := newEntry(node)
			m.Update("a", func(*Entry) *Entry { return stored })

			assert.False(t, m.CompareAndDelete("a", newEntry(node)))
			_, ok := m.Load("a")
			require.True(t, ok)

			assert.True(t, m.CompareAndDelete("a", stored))
			_, ok = m.Load("a")
			assert.False(t, ok)

			assert.False(t, m.CompareAndDelete("missing", stored))
		})
	}
}

func TestChildMapRange(t *testing.T) {
	for impl, newMap := range childMapImpls() {
		t.Run(impl, func(t *testing.T) {
			m := newMap()
			for i := range 10 {
				name := fmt.Sprintf("n%d", i)
				m.Update(name, func(*Entry) *Entry { return newEntry(&Node{name: name}) })
			}

			seen := make(map[string]bool)
			m.Range(func(name string, e *Entry) bool {
				seen[name] = true
				return true
			})
			assert.Len(t, seen, 10)

			// early stop
			calls := 0
			m.Range(func(string, *Entry) bool {
				calls++
				return false
			})
			assert.Equal(t, 1, calls)
		})
	}
}

func TestChildMapConcurrentUpdates(t *testing.T) {
	for impl, newMap := range childMapImpls() {
		t.Run(impl, func(t *testing.T) {
			m := newMap()
			const goroutines = 16
			const keys = 50

			var wg sync.WaitGroup
			for range goroutines {
				wg.Add(1)
				go func() {
					defer wg.Done()
					for i := range keys {
						name := fmt.Sprintf("k%d", i)
						m.Update(name, func(cur *Entry) *Entry {
							if cur != nil {
								return cur
							}
							return newEntry(&Node{name: name})
						})
					}
				}()
			}
			wg.Wait()

			assert.Equal(t, keys, m.Len())
		})
	}
}
