package memo

import (
	"errors"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Sharded is a lock-sharded variant of Cache for workloads where a single
// mutex becomes a bottleneck. Keys are routed to shards by hash; each shard
// is an independent Cache with its own lock and its own recency order.
//
// The per-key guarantees of Cache hold within the owning shard, but the
// eviction order is total per shard only: there is no global least recently
// used entry, so under skewed key distributions a shard may evict while
// others sit below capacity. Use plain Cache when a single global recency
// order matters.
type Sharded[K comparable, V any] struct {
	shards []*Cache[K, V]
	hash   func(K) uint64
	mapKey func(K) K
}

// NewSharded creates a sharded memoizing cache. The capacity is split
// evenly across shards (rounding up), so the effective total capacity is
// shards times ceil(capacity/shards).
func NewSharded[K comparable, V any](calc CalcFunc[K, V], capacity, shards int, opts ...Option[K, V]) (*Sharded[K, V], error) {
	if calc == nil {
		return nil, ErrNilCalculation
	}
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if shards <= 0 {
		return nil, ErrInvalidShards
	}

	cfg := config[K, V]{}
	for _, opt := range opts {
		opt(&cfg)
	}
	hash := cfg.hasher
	if hash == nil {
		hash = defaultHasher[K]
	}

	perShard := (capacity + shards - 1) / shards
	s := &Sharded[K, V]{
		shards: make([]*Cache[K, V], shards),
		hash:   hash,
		mapKey: cfg.keyMapper,
	}
	for i := range s.shards {
		shard, err := New(calc, perShard, opts...)
		if err != nil {
			return nil, err
		}
		s.shards[i] = shard
	}
	return s, nil
}

// Get returns the cached value for key, computing it on first access.
// Equivalent to GetWithData(key, nil).
func (s *Sharded[K, V]) Get(key K) (V, error) {
	return s.GetWithData(key, nil)
}

// GetWithData behaves like Cache.GetWithData within the shard owning key.
func (s *Sharded[K, V]) GetWithData(key K, data any) (V, error) {
	var zero V
	if isNilKey(key) {
		return zero, ErrNilKey
	}
	return s.shard(key).GetWithData(key, data)
}

// TryGet behaves like Cache.TryGet within the shard owning key.
func (s *Sharded[K, V]) TryGet(key K) (V, bool, error) {
	var zero V
	if isNilKey(key) {
		return zero, false, ErrNilKey
	}
	return s.shard(key).TryGet(key)
}

// Invalidate behaves like Cache.Invalidate within the shard owning key.
func (s *Sharded[K, V]) Invalidate(key K) error {
	if isNilKey(key) {
		return ErrNilKey
	}
	return s.shard(key).Invalidate(key)
}

// InvalidateAll empties every shard with the same release semantics as
// Cache.InvalidateAll: with aggregate false the fan-out stops at the first
// release error, with aggregate true every shard is flushed and all errors
// are joined.
func (s *Sharded[K, V]) InvalidateAll(aggregate bool) error {
	if !aggregate {
		for _, shard := range s.shards {
			if err := shard.InvalidateAll(false); err != nil {
				return err
			}
		}
		return nil
	}

	var errs []error
	for _, shard := range s.shards {
		if err := shard.InvalidateAll(true); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// CachedValues returns a point-in-time copy of all values across shards in
// unspecified order.
func (s *Sharded[K, V]) CachedValues() []V {
	var values []V
	for _, shard := range s.shards {
		values = append(values, shard.CachedValues()...)
	}
	return values
}

// Len returns the total number of entries across all shards.
func (s *Sharded[K, V]) Len() int {
	n := 0
	for _, shard := range s.shards {
		n += shard.Len()
	}
	return n
}

// Stats returns counters summed across all shards.
func (s *Sharded[K, V]) Stats() Stats {
	var total Stats
	for _, shard := range s.shards {
		st := shard.Stats()
		total.Hits += st.Hits
		total.Misses += st.Misses
		total.Evictions += st.Evictions
	}
	return total
}

// shard routes key to its owning shard. The key mapper runs before hashing
// so that keys normalizing to the same value land in the same shard.
func (s *Sharded[K, V]) shard(key K) *Cache[K, V] {
	if s.mapKey != nil {
		key = s.mapKey(key)
	}
	return s.shards[s.hash(key)%uint64(len(s.shards))]
}

// defaultHasher hashes the key's string form with xxhash. Strings skip the
// formatting round-trip.
func defaultHasher[K comparable](key K) uint64 {
	if str, ok := any(key).(string); ok {
		return xxhash.Sum64String(str)
	}
	return xxhash.Sum64String(fmt.Sprint(key))
}
