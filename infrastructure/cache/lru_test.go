package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNamespaceLRU_SetGet(t *testing.T) {
	c := NewNamespaceLRU[[]byte](2)

	c.Set("PNG", "a", []byte("alpha"))
	c.Set("OTHER", "a", []byte("other"))

	v, ok := c.Get("PNG", "a")
	assert.True(t, ok)
	assert.Equal(t, []byte("alpha"), v)

	v, ok = c.Get("OTHER", "a")
	assert.True(t, ok)
	assert.Equal(t, []byte("other"), v)

	_, ok = c.Get("PNG", "missing")
	assert.False(t, ok)

	stats := c.Stats()
	assert.Equal(t, 2, stats.Entries)
	assert.Equal(t, uint64(2), stats.Hits)
	assert.Equal(t, uint64(1), stats.Misses)
}

func TestNamespaceLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	c := NewNamespaceLRU[int](2)

	c.Set("n", "a", 1)
	c.Set("n", "b", 2)
	c.Get("n", "a") // a is now most recent
	c.Set("n", "c", 3)

	_, ok := c.Get("n", "b")
	assert.False(t, ok, "b should have been evicted")

	v, ok := c.Get("n", "a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	v, ok = c.Get("n", "c")
	assert.True(t, ok)
	assert.Equal(t, 3, v)
}

func TestNamespaceLRU_UpdateExisting(t *testing.T) {
	c := NewNamespaceLRU[string](1)

	c.Set("n", "k", "v1")
	c.Set("n", "k", "v2")

	v, ok := c.Get("n", "k")
	assert.True(t, ok)
	assert.Equal(t, "v2", v)
	assert.Equal(t, 1, c.Stats().Entries)
}

func TestNamespaceLRU_ZeroCapacityDisables(t *testing.T) {
	c := NewNamespaceLRU[string](0)

	c.Set("n", "k", "v")

	_, ok := c.Get("n", "k")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Stats().Entries)
}

func TestNamespaceLRU_Concurrent(t *testing.T) {
	c := NewNamespaceLRU[int](50)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("%d-%d", worker, j%10)
				c.Set("n", key, j)
				c.Get("n", key)
			}
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Stats().Entries, 50)
}
