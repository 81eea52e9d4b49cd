package common

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_GetOrCreateExpiresIdleEntries(t *testing.T) {
	cache := NewCache(time.Millisecond, 0)

	calls := 0
	create := func() interface{} {
		calls++
		return calls
	}

	assert.Equal(t, 1, cache.GetOrCreate("key", create))
	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, 2, cache.GetOrCreate("key", create))
}

func TestCache_GetOrCreate(t *testing.T) {
	cache := NewCache(0, 0)

	calls := 0
	create := func() interface{} {
		calls++
		return calls
	}

	first := cache.GetOrCreate(CacheKeyClient("10.0.0.1"), create)
	second := cache.GetOrCreate(CacheKeyClient("10.0.0.1"), create)
	other := cache.GetOrCreate(CacheKeyClient("10.0.0.2"), create)

	assert.Equal(t, 1, first)
	assert.Equal(t, 1, second)
	assert.Equal(t, 2, other)
	assert.Equal(t, 2, calls)
}

func TestCache_GetOrCreateConcurrent(t *testing.T) {
	cache := NewCache(0, 0)

	var wg sync.WaitGroup
	results := make([]interface{}, 20)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = cache.GetOrCreate("shared", func() interface{} { return new(int) })
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Same(t, results[0], r)
	}
}
