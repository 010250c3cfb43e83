// Package epoch provides optional epoch-based reclamation for the
// concurrent set engines in this module.
//
// No reclamation scheme is mandatory — unreachable nodes may simply
// leak — but a pluggable hazard-pointer or epoch-based discipline can
// be layered on top without changing any correctness contract. This is
// a generic epoch-based discipline: a global epoch counter, per-reader
// entry epochs, and a retire-then-reclaim-when-safe pipeline,
// parameterized over the node type so every engine in this module can
// share one implementation instead of three near-identical copies.
package epoch

import (
	"sync"
	"sync/atomic"
)

// Manager tracks reader epochs and retired nodes of type T, and decides
// when a retired node is safe to drop (i.e. stop referencing, so the Go
// garbage collector can reclaim it).
type Manager[T any] struct {
	globalEpoch uint64

	mu      sync.Mutex
	readers map[uint64]*readerState
	nextID  uint64

	retiredMu sync.Mutex
	retired   map[uint64][]*T
}

type readerState struct {
	epoch  uint64
	active int32 // atomic flag: 1 = active, 0 = left
}

// NewManager returns a fresh epoch manager with no active readers and
// nothing retired.
func NewManager[T any]() *Manager[T] {
	return &Manager[T]{
		globalEpoch: 1,
		readers:     make(map[uint64]*readerState),
		retired:     make(map[uint64][]*T),
	}
}

// Guard represents one reader's participation in the epoch scheme.
// It must be released with Leave once the reader stops touching nodes
// that reclamation could otherwise free.
type Guard struct {
	leave func()
}

// Leave ends the guarded read section. Safe to call on a nil Guard (the
// no-reclamation engines hand out a nil Guard so Enter/Leave are no-ops).
func (g *Guard) Leave() {
	if g == nil || g.leave == nil {
		return
	}
	g.leave()
}

// Enter begins a read section, pinning the current epoch so that any
// node visible now will not be reclaimed until this guard leaves.
func (m *Manager[T]) Enter() *Guard {
	id := atomic.AddUint64(&m.nextID, 1)
	st := &readerState{epoch: atomic.LoadUint64(&m.globalEpoch), active: 1}

	m.mu.Lock()
	m.readers[id] = st
	m.mu.Unlock()

	return &Guard{leave: func() {
		atomic.StoreInt32(&st.active, 0)
		m.mu.Lock()
		delete(m.readers, id)
		m.mu.Unlock()
	}}
}

// Advance moves the global epoch forward. Writers call this after a
// mutation that unlinked nodes becomes visible.
func (m *Manager[T]) Advance() uint64 {
	return atomic.AddUint64(&m.globalEpoch, 1)
}

// Retire marks node as unlinked and eligible for reclamation once no
// reader could still be observing the epoch it was retired in.
func (m *Manager[T]) Retire(node *T) {
	if node == nil {
		return
	}
	epoch := atomic.LoadUint64(&m.globalEpoch)
	m.retiredMu.Lock()
	m.retired[epoch] = append(m.retired[epoch], node)
	m.retiredMu.Unlock()
}

// TryReclaim drops references to nodes retired strictly before the
// oldest epoch any active reader could still observe, letting the
// garbage collector free them. Returns the number of nodes dropped.
func (m *Manager[T]) TryReclaim() int {
	minEpoch := m.minActiveEpoch()

	m.retiredMu.Lock()
	defer m.retiredMu.Unlock()

	reclaimed := 0
	for epoch, nodes := range m.retired {
		if epoch < minEpoch {
			reclaimed += len(nodes)
			delete(m.retired, epoch)
		}
	}
	return reclaimed
}

func (m *Manager[T]) minActiveEpoch() uint64 {
	min := atomic.LoadUint64(&m.globalEpoch)

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, st := range m.readers {
		if atomic.LoadInt32(&st.active) == 1 && st.epoch < min {
			min = st.epoch
		}
	}
	return min
}

// PendingCount reports how many retired nodes are still held back from
// reclamation. Exposed for tests and diagnostics.
func (m *Manager[T]) PendingCount() int {
	m.retiredMu.Lock()
	defer m.retiredMu.Unlock()
	n := 0
	for _, nodes := range m.retired {
		n += len(nodes)
	}
	return n
}

// ActiveReaders reports how many Enter calls have not yet Leave'd.
func (m *Manager[T]) ActiveReaders() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, st := range m.readers {
		if atomic.LoadInt32(&st.active) == 1 {
			n++
		}
	}
	return n
}
