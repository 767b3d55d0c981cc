package sovt

// MapThreshold is the largest number of children cached in a node's array
// state. One more distinct child promotes the cache to a map. Changes take
// effect at the next state transition; values below 2 are treated as 2.
//
// Not safe to change while the tree is in use from other goroutines.
var MapThreshold = 10

// MapFactory constructs the concurrent map installed when a node's cache
// is promoted past the array state. The default, NewLockedMap, has the
// smallest footprint; NewShardedMap trades memory for less contention on
// nodes with many concurrently accessed children.
//
// Not safe to change while the tree is in use from other goroutines.
var MapFactory func() ChildMap = NewLockedMap
