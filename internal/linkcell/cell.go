// Package linkcell implements the atomic link cell shared by the
// lock-free linked set: a single-word atomic holding a successor
// pointer tagged with a logically-deleted bit.
//
// Go has no portable double-word CAS and no safe way to steal bits out
// of a *T without hiding the pointer from the garbage collector, so the
// (ptr, mark) pair is represented as an immutable snapshot object and
// the cell holds an atomic.Pointer to that snapshot. CompareAndSwap
// still compares by logical value (next pointer identity plus mark
// bit), exactly the "pointer and mark both match" contract callers
// expect of a single tagged-pointer word; it is implemented as a retry
// loop around a single hardware pointer CAS on the snapshot, so
// physically it is still one word wide.
package linkcell

import "sync/atomic"

// pair is an immutable (next, marked) snapshot. A new pair is allocated
// for every transition; existing pairs are never mutated in place.
type pair[T any] struct {
	next   *T
	marked bool
}

// Cell is a single atomic link cell: a successor pointer plus the
// logically-deleted bit for the edge leaving the node that owns it.
// The zero value is a valid cell pointing at nil, unmarked.
type Cell[T any] struct {
	state atomic.Pointer[pair[T]]
}

// Load atomically reads the successor pointer and mark bit.
func (c *Cell[T]) Load() (next *T, marked bool) {
	p := c.state.Load()
	if p == nil {
		return nil, false
	}
	return p.next, p.marked
}

// Store unconditionally installs (next, marked).
func (c *Cell[T]) Store(next *T, marked bool) {
	c.state.Store(&pair[T]{next: next, marked: marked})
}

// CompareAndSwap succeeds only when the cell currently holds exactly
// (oldNext, oldMarked); on success it atomically installs
// (newNext, newMarked) and returns true.
//
// The comparison is against the logical value (oldNext, oldMarked), not
// pointer identity of some previously-loaded snapshot, so callers may
// construct the expected value however is convenient (e.g. from values
// returned by Load). Internally this still resolves to a single pointer
// CAS: it loads the current snapshot, checks it logically matches, and
// races to swap it for a freshly allocated snapshot. A concurrent
// mutation between the check and the swap simply fails the CAS, which
// is the correct outcome.
func (c *Cell[T]) CompareAndSwap(oldNext *T, oldMarked bool, newNext *T, newMarked bool) bool {
	for {
		cur := c.state.Load()
		var curNext *T
		var curMarked bool
		if cur != nil {
			curNext, curMarked = cur.next, cur.marked
		}
		if curNext != oldNext || curMarked != oldMarked {
			return false
		}
		if c.state.CompareAndSwap(cur, &pair[T]{next: newNext, marked: newMarked}) {
			return true
		}
		// state changed between the logical check and the physical CAS;
		// retry the logical check against the fresh value.
	}
}
