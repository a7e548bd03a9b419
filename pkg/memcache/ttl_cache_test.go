package memcache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLCache_Expiry(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewTTLCache[string](time.Minute)
	c.now = func() time.Time { return now }

	c.Set("paris", "louvre")
	v, ok := c.Get("paris")
	assert.True(t, ok)
	assert.Equal(t, "louvre", v)

	now = now.Add(2 * time.Minute)
	_, ok = c.Get("paris")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())

	_, ok = c.Get("rome")
	assert.False(t, ok)
}

func TestTTLCache_SweepsExpiredOnGrowth(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	c := NewTTLCache[int](time.Minute)
	c.now = func() time.Time { return now }
	c.sweepAt = 4

	for i := 0; i < 4; i++ {
		c.Set(fmt.Sprint(i), i)
	}
	now = now.Add(2 * time.Minute)
	c.Set("fresh", 1)

	assert.Equal(t, 1, c.Len())
}

func TestTTLCache_Concurrent(t *testing.T) {
	c := NewTTLCache[int](time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprint(i % 3)
			c.Set(key, i)
			_, _ = c.Get(key)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 3, c.Len())
}
