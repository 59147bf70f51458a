package domain

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNameCache(t *testing.T) {
	cache := NewNameCache()

	_, ok := cache.Get("r1")
	assert.False(t, ok)

	cache.Set("r1", "Ada Lovelace")
	name, ok := cache.Get("r1")
	assert.True(t, ok)
	assert.Equal(t, "Ada Lovelace", name)
	assert.Equal(t, 1, cache.Len())

	cache.Set("r1", "Ada King")
	name, _ = cache.Get("r1")
	assert.Equal(t, "Ada King", name)
	assert.Equal(t, 1, cache.Len())
}

func TestNameCacheConcurrent(t *testing.T) {
	cache := NewNameCache()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cache.Set("shared", "value")
			cache.Get("shared")
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, cache.Len())
}
