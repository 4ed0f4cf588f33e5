package memo

type config[K comparable, V any] struct {
	release   ReleaseFunc[V]
	keyMapper func(K) K
	hasher    func(K) uint64
}

// Option configures a Cache or a Sharded cache.
type Option[K comparable, V any] func(*config[K, V])

// WithRelease sets a function invoked whenever an entry leaves the cache,
// by eviction or by invalidation. Useful for cleanup of values that own
// resources (file handles, connections, native memory).
func WithRelease[K comparable, V any](fn ReleaseFunc[V]) Option[K, V] {
	return func(c *config[K, V]) {
		c.release = fn
	}
}

// WithKeyMapper sets a normalization function applied to every incoming key
// before it touches the cache, making keys that normalize to the same value
// share one entry (e.g. strings.ToLower for case-insensitive keys). The
// function must be idempotent and is also what the calculation function
// receives as its key. Defaults to the native equality of the key type.
func WithKeyMapper[K comparable, V any](fn func(K) K) Option[K, V] {
	return func(c *config[K, V]) {
		c.keyMapper = fn
	}
}

// WithHasher sets the hash function used by a Sharded cache to route keys
// to shards. Ignored by plain Cache instances. Defaults to xxhash over the
// key's string form.
func WithHasher[K comparable, V any](fn func(K) uint64) Option[K, V] {
	return func(c *config[K, V]) {
		c.hasher = fn
	}
}
