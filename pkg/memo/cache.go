package memo

import (
	"container/list"
	"errors"
	"reflect"
	"sync"
)

// CalcFunc computes the value to cache for a key. The data argument is an
// optional caller-supplied payload forwarded untouched from GetWithData; it
// is nil for plain Get calls. The function must be referentially transparent
// (same key, same result) since results may be served from cache
// indefinitely.
type CalcFunc[K comparable, V any] func(key K, data any) (V, error)

// ReleaseFunc is invoked exactly once per entry whenever the entry leaves
// the cache, whether by eviction or by explicit invalidation. It receives
// the cached value and may report a cleanup failure.
type ReleaseFunc[V any] func(value V) error

type entry[K comparable, V any] struct {
	key   K
	value V
}

// Cache is a bounded, thread-safe memoization cache. Values are computed on
// first access by the calculation function and then served from cache; when
// the entry count exceeds the capacity, the least recently used entry is
// evicted.
//
// A single mutex guards all state, and the calculation function runs while
// it is held. Calculation functions must not call back into the same cache
// instance; the lock is not reentrant and such use deadlocks.
type Cache[K comparable, V any] struct {
	mu       sync.Mutex
	calc     CalcFunc[K, V]
	capacity int
	items    map[K]*list.Element
	recency  *list.List // front is most recently used, back is next to evict
	cfg      config[K, V]
	stats    counters
}

// New creates a memoizing cache that holds at most capacity entries.
// The calculation function is required and the capacity must be positive.
func New[K comparable, V any](calc CalcFunc[K, V], capacity int, opts ...Option[K, V]) (*Cache[K, V], error) {
	if calc == nil {
		return nil, ErrNilCalculation
	}
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	cfg := config[K, V]{}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Cache[K, V]{
		calc:     calc,
		capacity: capacity,
		items:    make(map[K]*list.Element, capacity),
		recency:  list.New(),
		cfg:      cfg,
	}, nil
}

// Get returns the cached value for key, computing it on first access.
// Equivalent to GetWithData(key, nil).
func (c *Cache[K, V]) Get(key K) (V, error) {
	return c.GetWithData(key, nil)
}

// GetWithData returns the cached value for key, computing it with the
// calculation function on first access. The data payload is forwarded to
// the calculation function on a miss and ignored on a hit.
//
// A hit marks the entry most recently used. A miss runs the calculation
// under the cache lock; a calculation error propagates to the caller and
// leaves the cache unmodified. When the insertion pushes the cache over
// capacity, least recently used entries are evicted and released before the
// call returns; the new value is returned even if a release reports an
// error.
func (c *Cache[K, V]) GetWithData(key K, data any) (V, error) {
	var zero V
	if isNilKey(key) {
		return zero, ErrNilKey
	}
	key = c.mapKey(key)

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.refresh(elem)
		c.stats.hit()
		return elem.Value.(*entry[K, V]).value, nil
	}
	c.stats.miss()

	value, err := c.calc(key, data)
	if err != nil {
		return zero, err
	}

	c.items[key] = c.recency.PushFront(&entry[K, V]{key: key, value: value})

	return value, c.maintain()
}

// TryGet looks up key without ever invoking the calculation function.
// It returns the cached value and true on a hit (marking the entry most
// recently used), or the zero value and false on a miss.
func (c *Cache[K, V]) TryGet(key K) (V, bool, error) {
	var zero V
	if isNilKey(key) {
		return zero, false, ErrNilKey
	}
	key = c.mapKey(key)

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		c.stats.miss()
		return zero, false, nil
	}
	c.refresh(elem)
	c.stats.hit()
	return elem.Value.(*entry[K, V]).value, true, nil
}

// Invalidate removes key from the cache and releases its value. A missing
// key is a no-op, not an error. The entry is unlinked before the release
// function runs, so a release error never resurrects the entry.
func (c *Cache[K, V]) Invalidate(key K) error {
	if isNilKey(key) {
		return ErrNilKey
	}
	key = c.mapKey(key)

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return nil
	}
	ent := c.unlink(elem)
	if c.cfg.release == nil {
		return nil
	}
	return c.cfg.release(ent.value)
}

// InvalidateAll empties the cache and releases every value that was cached
// at the moment of the call. Both internal structures are swapped for fresh
// ones under the lock, then the release calls run outside it, so concurrent
// Get calls proceed against the empty cache while old values are being
// released.
//
// With aggregate false, release calls stop at the first error, which is
// returned as-is; remaining values in the batch are not released. With
// aggregate true, every release is attempted and all errors are joined into
// a single error. Which value a joined error belongs to is not reported.
func (c *Cache[K, V]) InvalidateAll(aggregate bool) error {
	c.mu.Lock()
	detached := c.recency
	c.items = make(map[K]*list.Element, c.capacity)
	c.recency = list.New()
	c.mu.Unlock()

	if c.cfg.release == nil {
		return nil
	}

	if !aggregate {
		for elem := detached.Front(); elem != nil; elem = elem.Next() {
			if err := c.cfg.release(elem.Value.(*entry[K, V]).value); err != nil {
				return err
			}
		}
		return nil
	}

	var errs []error
	for elem := detached.Front(); elem != nil; elem = elem.Next() {
		if err := c.cfg.release(elem.Value.(*entry[K, V]).value); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// CachedValues returns a point-in-time copy of all cached values in
// unspecified order. The returned slice is not affected by later cache
// operations.
func (c *Cache[K, V]) CachedValues() []V {
	c.mu.Lock()
	defer c.mu.Unlock()

	values := make([]V, 0, len(c.items))
	for elem := c.recency.Front(); elem != nil; elem = elem.Next() {
		values = append(values, elem.Value.(*entry[K, V]).value)
	}
	return values
}

// Len returns the number of entries currently cached.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recency.Len()
}

// Stats returns a point-in-time copy of the cache counters.
func (c *Cache[K, V]) Stats() Stats {
	return c.stats.snapshot()
}

func (c *Cache[K, V]) mapKey(key K) K {
	if c.cfg.keyMapper == nil {
		return key
	}
	return c.cfg.keyMapper(key)
}

// refresh promotes elem to most recently used. With a single entry the list
// order cannot change, so the move is skipped.
func (c *Cache[K, V]) refresh(elem *list.Element) {
	if c.recency.Len() == 1 {
		return
	}
	c.recency.MoveToFront(elem)
}

// maintain evicts from the least recently used end until the entry count is
// back within capacity, releasing each evicted value exactly once. Must be
// called with the lock held.
func (c *Cache[K, V]) maintain() error {
	var errs []error
	for c.recency.Len() > c.capacity {
		ent := c.unlink(c.recency.Back())
		c.stats.evict()
		if c.cfg.release != nil {
			if err := c.cfg.release(ent.value); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// unlink removes elem from both the recency list and the lookup map.
// Must be called with the lock held.
func (c *Cache[K, V]) unlink(elem *list.Element) *entry[K, V] {
	ent := elem.Value.(*entry[K, V])
	c.recency.Remove(elem)
	delete(c.items, ent.key)
	return ent
}

// isNilKey reports whether key is a nil value of a nilable kind. The
// comparable constraint rules out interface, map, slice and func keys, so
// pointers and channels are the only kinds that can smuggle nil through the
// type parameter.
func isNilKey(key any) bool {
	rv := reflect.ValueOf(key)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Chan, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}
