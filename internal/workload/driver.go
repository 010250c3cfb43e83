package workload

import (
	"context"
	"sync/atomic"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Target is anything that can receive a single-key insert/remove/contains
// workload. linkedset.Set implements this directly; the leaf-tree and
// range-tree engines use the adapters in adapter.go since their native
// Insert/Remove also carry a value.
type Target interface {
	Insert(key int) bool
	Remove(key int) bool
	Contains(key int) bool
}

// Config controls one concurrent run.
type Config struct {
	Workers      int
	OpsPerWorker int
	KeyLo, KeyHi int // half-open key range every generator draws from
	InsertPct    int // out of 100
	RemovePct    int // out of 100; remainder is Contains
	Seed         int64
	Logger       *logrus.Logger // nil uses logrus.StandardLogger()
}

// Stats aggregates the observed effect of a run across all workers: the
// net change in set size and key sum, derived solely from operations
// that actually succeeded (mirroring a caller who tracks size/sum
// incrementally instead of re-scanning the structure).
type Stats struct {
	Inserts      int64
	Removes      int64
	Contains     int64
	InsertHits   int64
	RemoveHits   int64
	ContainsHits int64
	SizeDelta    int64
	SumDelta     int64
}

// Run fans Config.Workers goroutines out against target, each replaying
// its own deterministic Generator, and returns the aggregated effect.
// It stops early and returns ctx's error if ctx is cancelled mid-run.
func Run(ctx context.Context, target Target, cfg Config) (Stats, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	var inserts, removes, contains int64
	var insertHits, removeHits, containsHits int64
	var sizeDelta, sumDelta int64

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < cfg.Workers; w++ {
		w := w
		g.Go(func() error {
			gen := NewGenerator(cfg.Seed+int64(w), cfg.KeyLo, cfg.KeyHi, cfg.InsertPct, cfg.RemovePct)
			var localSize, localSum int64

			for i := 0; i < cfg.OpsPerWorker; i++ {
				if i%5000 == 0 {
					select {
					case <-gctx.Done():
						return gctx.Err()
					default:
					}
				}

				op, key := gen.Next()
				switch op {
				case OpInsert:
					atomic.AddInt64(&inserts, 1)
					if target.Insert(key) {
						atomic.AddInt64(&insertHits, 1)
						localSize++
						localSum += int64(key)
					}
				case OpRemove:
					atomic.AddInt64(&removes, 1)
					if target.Remove(key) {
						atomic.AddInt64(&removeHits, 1)
						localSize--
						localSum -= int64(key)
					}
				case OpContains:
					atomic.AddInt64(&contains, 1)
					if target.Contains(key) {
						atomic.AddInt64(&containsHits, 1)
					}
				}
			}

			atomic.AddInt64(&sizeDelta, localSize)
			atomic.AddInt64(&sumDelta, localSum)
			logger.WithFields(logrus.Fields{
				"worker":     w,
				"ops":        cfg.OpsPerWorker,
				"size_delta": localSize,
			}).Debug("workload worker finished")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Stats{}, err
	}

	stats := Stats{
		Inserts:      atomic.LoadInt64(&inserts),
		Removes:      atomic.LoadInt64(&removes),
		Contains:     atomic.LoadInt64(&contains),
		InsertHits:   atomic.LoadInt64(&insertHits),
		RemoveHits:   atomic.LoadInt64(&removeHits),
		ContainsHits: atomic.LoadInt64(&containsHits),
		SizeDelta:    atomic.LoadInt64(&sizeDelta),
		SumDelta:     atomic.LoadInt64(&sumDelta),
	}
	logger.WithFields(logrus.Fields{
		"inserts":  stats.Inserts,
		"removes":  stats.Removes,
		"contains": stats.Contains,
	}).Info("workload run complete")
	return stats, nil
}
