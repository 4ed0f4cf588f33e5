package memo

import "errors"

// Predefined errors for the memo package.
var (
	// ErrNilCalculation indicates that no calculation function was supplied
	// to the constructor. The cache cannot compute values without one.
	ErrNilCalculation = errors.New("memo: calculation function is required")

	// ErrInvalidCapacity indicates that the requested cache capacity is not
	// a positive integer.
	ErrInvalidCapacity = errors.New("memo: capacity must be positive")

	// ErrNilKey indicates that a nil key was passed to Get, TryGet or
	// Invalidate. Only keys of nilable kinds (pointers, channels) can
	// trigger this error.
	ErrNilKey = errors.New("memo: key must not be nil")

	// ErrInvalidShards indicates that the requested shard count for a
	// sharded cache is not a positive integer.
	ErrInvalidShards = errors.New("memo: shard count must be positive")
)
