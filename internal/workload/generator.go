// Package workload generates pseudo-random insert/remove/contains
// operation streams and drives them concurrently against any of this
// module's ordered-set engines, mirroring the multi_test harness the
// engines themselves were ported from.
package workload

import "math/rand"

// Op names the three operations a workload can issue.
type Op int

const (
	OpInsert Op = iota
	OpRemove
	OpContains
)

func (o Op) String() string {
	switch o {
	case OpInsert:
		return "insert"
	case OpRemove:
		return "remove"
	case OpContains:
		return "contains"
	default:
		return "unknown"
	}
}

// Generator produces a deterministic stream of (Op, key) pairs for one
// worker, keyed off its own seed. insertPct and removePct are
// out of 100 and must sum to at most 100; the remainder is Contains.
type Generator struct {
	rng       *rand.Rand
	lo, hi    int
	insertPct int
	removePct int
}

// NewGenerator returns a generator drawing keys from [lo, hi) and
// choosing among Insert/Remove/Contains according to insertPct/removePct.
func NewGenerator(seed int64, lo, hi, insertPct, removePct int) *Generator {
	return &Generator{
		rng:       rand.New(rand.NewSource(seed)),
		lo:        lo,
		hi:        hi,
		insertPct: insertPct,
		removePct: removePct,
	}
}

// Next returns the next (Op, key) pair in this generator's stream.
func (g *Generator) Next() (Op, int) {
	roll := g.rng.Intn(100)
	key := g.lo + g.rng.Intn(g.hi-g.lo)

	switch {
	case roll < g.insertPct:
		return OpInsert, key
	case roll < g.insertPct+g.removePct:
		return OpRemove, key
	default:
		return OpContains, key
	}
}
