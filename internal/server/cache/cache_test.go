package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache(t *testing.T) {
	c := New(time.Minute)
	assert.True(t, c.Enabled())

	_, ok := c.Get("stats")
	assert.False(t, ok)

	c.Set("stats", 42)
	v, ok := c.Get("stats")
	assert.True(t, ok)
	assert.Equal(t, 42, v)
	assert.Equal(t, 1, c.ItemCount())

	c.Clear()
	assert.Equal(t, 0, c.ItemCount())
}

func TestCacheExpiry(t *testing.T) {
	c := New(20 * time.Millisecond)
	c.Set("k", "v")
	time.Sleep(50 * time.Millisecond)
	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestCacheDisabled(t *testing.T) {
	for _, c := range []*Cache{New(0), nil} {
		assert.False(t, c.Enabled())
		c.Set("k", "v")
		_, ok := c.Get("k")
		assert.False(t, ok)
		assert.Equal(t, 0, c.ItemCount())
		c.Clear()
	}
}
