package memo

import "sync/atomic"

// Stats is a point-in-time copy of cache counters. Evictions counts only
// capacity evictions; explicit invalidations are not included.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions int64
}

// HitRate returns the cache hit rate as a value between 0 and 1.
// Returns 0 if there have been no lookups.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// counters accumulates cache statistics with atomics so snapshot reads
// never need the cache lock.
type counters struct {
	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

func (c *counters) hit()   { c.hits.Add(1) }
func (c *counters) miss()  { c.misses.Add(1) }
func (c *counters) evict() { c.evictions.Add(1) }

func (c *counters) snapshot() Stats {
	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}
