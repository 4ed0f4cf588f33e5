// Package memo provides a generic, bounded, thread-safe memoization cache
// with most-recently-used eviction and release callbacks for resource
// cleanup.
//
// Unlike a plain LRU map, the cache owns the computation: values are
// produced by a calculation function supplied at construction and computed
// at most once per key while the entry stays cached. When the entry count
// exceeds the configured capacity, the least recently used entry is evicted
// and, if a release function is configured, released exactly once.
//
// # Key Features
//
//   - Generic over any comparable key type and any value type
//   - Memoizing Get: the calculation function runs only on cache misses
//   - Strict capacity bound with least-recently-used eviction
//   - Release callback invoked exactly once per entry on eviction or
//     invalidation
//   - Optional key normalization for custom key equality
//   - Lock-sharded variant for contended workloads
//   - Hit/miss/eviction counters
//
// # Usage
//
// Create a cache with a calculation function and a capacity:
//
//	cache, err := memo.New(func(path string, _ any) (*Asset, error) {
//		return loadAsset(path)
//	}, 64)
//	if err != nil {
//		// invalid configuration
//	}
//
//	asset, err := cache.Get("logo.png")  // computed
//	asset, err = cache.Get("logo.png")   // served from cache
//
// GetWithData forwards an arbitrary payload to the calculation function on
// a miss, for inputs that are not part of the key:
//
//	v, err := cache.GetWithData("logo.png", renderOpts)
//
// TryGet looks up without computing:
//
//	if v, ok, _ := cache.TryGet("logo.png"); ok {
//		// cached
//	}
//
// # Resource Cleanup
//
// Values that own resources can be cleaned up when they leave the cache:
//
//	cache, _ := memo.New(openConn, 10,
//		memo.WithRelease(func(c *Conn) error { return c.Close() }),
//	)
//
// The release function runs exactly once per entry, whether the entry is
// evicted by capacity, removed with Invalidate, or flushed with
// InvalidateAll. Note that release means "the cache no longer holds this
// value", not "no caller still references it".
//
// InvalidateAll detaches the cache state under the lock and releases the
// old values outside it, so concurrent Get calls proceed against the
// now-empty cache while cleanup runs. Pass aggregate=true to attempt every
// release and receive all failures joined into one error; with
// aggregate=false the first failure stops the batch.
//
// # Thread Safety and Reentrancy
//
// All methods are safe for concurrent use. A single mutex guards the cache,
// and the calculation function runs while it is held: concurrent Get calls
// for the same key never compute twice, at the cost of serializing all
// access during a computation. The calculation function must therefore be
// reasonably fast, must not block indefinitely, and must never call back
// into the same cache instance — the lock is not reentrant and such a call
// deadlocks.
//
// For workloads where the single lock is a measured bottleneck, NewSharded
// splits the key space across independently locked shards. Recency order
// then holds per shard rather than globally; see Sharded for the exact
// trade-off.
//
// # Error Handling
//
// Construction fails with ErrNilCalculation or ErrInvalidCapacity
// (ErrInvalidShards for the sharded variant). Nil keys of nilable kinds are
// rejected with ErrNilKey before any lock is taken. Calculation errors
// propagate to the Get caller and leave the cache unmodified for that key;
// release errors propagate after the entry is already removed. The cache
// never logs, swallows or retries anything.
package memo
