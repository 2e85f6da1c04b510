package report

import (
	"time"

	"pngpress/internal/pool"
)

// Stats accumulates the run-level tally. It has a single logical owner, the
// goroutine draining the pool's result channel, so no locking is needed;
// Apply must not be called concurrently.
type Stats struct {
	TotalFiles     int
	Succeeded      int
	Failed         int
	OriginalBytes  int64
	OptimizedBytes int64
}

// NewStats seeds the tally with the discovered file count. On completion
// Succeeded+Failed == TotalFiles.
func NewStats(totalFiles int) *Stats {
	return &Stats{TotalFiles: totalFiles}
}

// Apply folds one completed result into the tally. Original bytes accumulate
// for every item; optimized bytes only for successful conversions.
func (s *Stats) Apply(res pool.Result) {
	s.OriginalBytes += res.Item.Size
	if res.Outcome.Success {
		s.Succeeded++
		s.OptimizedBytes += res.Outcome.OutputBytes
	} else {
		s.Failed++
	}
}

// Reduction reports the percentage size reduction across the run. The second
// return is false when no original bytes were seen, in which case no
// reduction can be computed.
func (s *Stats) Reduction() (float64, bool) {
	if s.OriginalBytes == 0 {
		return 0, false
	}
	return float64(s.OriginalBytes-s.OptimizedBytes) / float64(s.OriginalBytes) * 100, true
}

// Summary is the finalized, immutable view of a completed run.
type Summary struct {
	Stats
	Elapsed time.Duration
}

// Finalize freezes the tally into a Summary.
func (s *Stats) Finalize(elapsed time.Duration) Summary {
	return Summary{Stats: *s, Elapsed: elapsed}
}
