package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_BasicOperations(t *testing.T) {
	c := New(5*time.Minute, 10*time.Minute)

	t.Run("Set and Get", func(t *testing.T) {
		c.Set("key1", "value1")

		val, found := c.Get("key1")
		assert.True(t, found)
		assert.Equal(t, "value1", val)
	})

	t.Run("Get non-existent key", func(t *testing.T) {
		_, found := c.Get("nonexistent")
		assert.False(t, found)
	})

	t.Run("Set and Delete", func(t *testing.T) {
		c.Set("key2", "value2")
		c.Delete("key2")

		_, found := c.Get("key2")
		assert.False(t, found)
	})
}

func TestCache_Expiration(t *testing.T) {
	c := New(20*time.Millisecond, time.Hour)
	c.Set("k", 1)

	time.Sleep(40 * time.Millisecond)

	_, found := c.Get("k")
	assert.False(t, found)
}

func TestCache_OnEvicted(t *testing.T) {
	c := New(time.Minute, time.Hour)
	var evicted []string
	c.OnEvicted(func(key string, _ any) {
		evicted = append(evicted, key)
	})

	c.Set("a", 1)
	c.Set("b", 2)
	c.Delete("a")

	assert.Equal(t, []string{"a"}, evicted)
	assert.Equal(t, 1, c.ItemCount())
}
