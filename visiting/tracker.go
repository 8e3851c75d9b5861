package visiting

import "log"

// Unsigned enumerates the counter widths that a Tracker can use.
type Unsigned interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// A Tracker records which indices have been visited in the current traversal
// round. Marks from earlier rounds are invalidated by Clear without touching
// the counter array.
//
// A Tracker is not safe for concurrent mutation. The only exceptions are the
// Racing methods, which relax that guarantee under the caller's own
// discipline.
type Tracker[T Unsigned] struct {
	visited []T
	flag    T
}

// NewTracker creates a Tracker that can mark indices 0 through capacity-1.
// All indices start unvisited.
func NewTracker[T Unsigned](capacity int) *Tracker[T] {
	if capacity < 0 {
		log.Panic("tracker capacity must not be negative")
	}

	return &Tracker[T]{
		visited: make([]T, capacity),
		flag:    1,
	}
}

// Cap returns the number of trackable indices.
func (t *Tracker[T]) Cap() int {
	return len(t.visited)
}

// IsVisited returns whether index was marked in the current round.
func (t *Tracker[T]) IsVisited(index int) bool {
	t.indexMustBeInRange(index)

	return t.visited[index] == t.flag
}

// SetVisited marks index as visited in the current round. Marking an index
// that is already visited has no further effect.
func (t *Tracker[T]) SetVisited(index int) {
	t.indexMustBeInRange(index)

	t.visited[index] = t.flag
}

// SetAndGetVisited marks index as visited and returns whether it was already
// visited before this call. It is the primary entry point for traversal
// loops: a false return means the caller owns the first visit.
func (t *Tracker[T]) SetAndGetVisited(index int) bool {
	t.indexMustBeInRange(index)

	original := t.visited[index]
	t.visited[index] = t.flag

	return original == t.flag
}

// SetVisitedRacing marks index as visited without any exclusivity guarantee.
//
// It may be called from multiple goroutines concurrently, but only when the
// caller guarantees that no two goroutines write the same index at the same
// time (e.g., goroutines own disjoint index partitions), or when the
// algorithm tolerates the occasional lost mark. Concurrent conflicting
// writes to one index are a contract violation that the Tracker does not
// detect.
func (t *Tracker[T]) SetVisitedRacing(index int) {
	t.indexMustBeInRange(index)

	t.visited[index] = t.flag
}

// SetAndGetVisitedRacing marks index as visited and returns the previous
// state, without any exclusivity guarantee.
//
// The same contract as SetVisitedRacing applies. When two goroutines race on
// the same index, both may observe false; algorithms using this method must
// tolerate such duplicate claims.
func (t *Tracker[T]) SetAndGetVisitedRacing(index int) bool {
	t.indexMustBeInRange(index)

	original := t.visited[index]
	t.visited[index] = t.flag

	return original == t.flag
}

// Clear starts a new round: every index reads as unvisited afterwards.
//
// In the common case this is a single generation-counter increment. When the
// counter has saturated, stale marks from max(T) rounds ago would otherwise
// alias the new generation, so Clear re-zeroes the whole array and restarts
// the generation counter. Amortized over rounds the cost is O(1).
func (t *Tracker[T]) Clear() {
	var maxVal T
	maxVal--

	if t.flag == maxVal {
		t.flag = 1
		for i := range t.visited {
			t.visited[i] = 0
		}
	} else {
		t.flag++
	}
}

// Grow extends the trackable range to newCap indices. The added indices
// start unvisited. Existing marks and the current round are unaffected.
func (t *Tracker[T]) Grow(newCap int) {
	if newCap < len(t.visited) {
		log.Panic("tracker cannot shrink")
	}

	grown := make([]T, newCap)
	copy(grown, t.visited)
	t.visited = grown
}

func (t *Tracker[T]) indexMustBeInRange(index int) {
	if index < 0 || index >= len(t.visited) {
		log.Panicf("index %d out of range [0, %d)", index, len(t.visited))
	}
}
