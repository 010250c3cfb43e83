// Package lincheck checks whether a small recorded history of
// concurrent Insert/Remove/Contains calls against one of this module's
// set engines admits a linearization: a total order of the calls,
// consistent with their real-time invocation/response intervals, that
// replays correctly against a plain sequential set.
//
// This is a brute-force Wing & Gong style checker (exponential in the
// number of overlapping events), intentionally scoped to the small
// histories and small key spaces the accompanying tests use — it has
// no grounding in any example repo or the original C++ sources, since
// none of them include a linearizability checker; it exists only to
// exercise the testable property that recorded histories of these
// engines are linearizable.
package lincheck

// Kind names which set operation an Event recorded.
type Kind int

const (
	KindInsert Kind = iota
	KindRemove
	KindContains
)

// Event is one completed call against the set under test. Start and End
// are any monotonically comparable timestamps (e.g. time.Now().UnixNano()
// sampled immediately before invoking and immediately after returning);
// Start must be strictly less than End.
type Event struct {
	Kind   Kind
	Key    int
	Result bool
	Start  int64
	End    int64
}

// sequentialSet is the reference model: a plain, non-concurrent set
// used to replay a candidate linearization and check its results.
type sequentialSet map[int]bool

func (s sequentialSet) apply(e Event) bool {
	switch e.Kind {
	case KindInsert:
		if s[e.Key] {
			return false
		}
		s[e.Key] = true
		return true
	case KindRemove:
		if !s[e.Key] {
			return false
		}
		delete(s, e.Key)
		return true
	case KindContains:
		return s[e.Key]
	default:
		return false
	}
}

// Check reports whether history has at least one linearization.
func Check(history []Event) bool {
	used := make([]bool, len(history))
	model := make(sequentialSet)
	return search(history, used, model)
}

// search tries every event that is legally next (no unused event
// strictly precedes it in real time) and recurses, backtracking out of
// the model on failure.
func search(history []Event, used []bool, model sequentialSet) bool {
	remaining := false
	for i := range history {
		if !used[i] {
			remaining = true
			break
		}
	}
	if !remaining {
		return true
	}

	for i, e := range history {
		if used[i] || !canGoNext(history, used, i) {
			continue
		}

		snapshot := make(sequentialSet, len(model))
		for k, v := range model {
			snapshot[k] = v
		}

		got := model.apply(e)
		used[i] = true
		if got == e.Result && search(history, used, model) {
			return true
		}
		used[i] = false
		model = snapshot
	}
	return false
}

// canGoNext reports whether history[i] may be linearized next: it may
// not if some other not-yet-used event ended at or before the time
// history[i] began, since that event must be linearized first.
func canGoNext(history []Event, used []bool, i int) bool {
	for j, g := range history {
		if j == i || used[j] {
			continue
		}
		if g.End <= history[i].Start {
			return false
		}
	}
	return true
}
