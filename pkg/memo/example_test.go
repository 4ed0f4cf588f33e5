package memo_test

import (
	"fmt"

	"github.com/dmitrymomot/memocache/pkg/memo"
)

func ExampleCache() {
	calls := 0
	cache, _ := memo.New(func(k int, _ any) (int, error) {
		calls++
		return k * 10, nil
	}, 100)

	v, _ := cache.Get(7) // computed
	fmt.Println(v)

	v, _ = cache.Get(7) // served from cache
	fmt.Println(v, "calls:", calls)

	// Output:
	// 70
	// 70 calls: 1
}

func ExampleWithRelease() {
	cache, _ := memo.New(
		func(k string, _ any) (string, error) { return "value of " + k, nil },
		2,
		memo.WithRelease[string](func(v string) error {
			fmt.Println("released:", v)
			return nil
		}),
	)

	cache.Get("a")
	cache.Get("b")
	cache.Get("c") // evicts "a", the least recently used entry

	// Output: released: value of a
}

func ExampleCache_InvalidateAll() {
	cache, _ := memo.New(
		func(k int, _ any) (int, error) { return k * k, nil },
		10,
		memo.WithRelease[int](func(v int) error {
			fmt.Println("released:", v)
			return nil
		}),
	)

	cache.Get(2)
	cache.Get(3)

	cache.InvalidateAll(false)
	fmt.Println("cached:", len(cache.CachedValues()))

	// Output:
	// released: 9
	// released: 4
	// cached: 0
}

func ExampleCache_Stats() {
	cache, _ := memo.New(func(k string, _ any) (int, error) { return len(k), nil }, 10)

	cache.Get("a")    // miss
	cache.Get("a")    // hit
	cache.TryGet("b") // miss

	stats := cache.Stats()
	fmt.Printf("hits: %d, misses: %d, rate: %.0f%%\n",
		stats.Hits, stats.Misses, stats.HitRate()*100)

	// Output: hits: 1, misses: 2, rate: 33%
}
