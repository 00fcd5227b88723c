package mem

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newClockedTTL() (*TTL[string, int], *time.Time) {
	now := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)
	c := NewTTL[string, int]()
	c.now = func() time.Time { return now }
	return c, &now
}

func TestTTL_GetBeforeAndAfterExpiry(t *testing.T) {
	c, now := newClockedTTL()
	c.Set("a", 1, time.Minute)

	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	*now = now.Add(2 * time.Minute)
	_, ok = c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestTTL_ConsumeIsSingleUse(t *testing.T) {
	c, _ := newClockedTTL()
	c.Set("token", 7, time.Hour)

	v, ok := c.Consume("token")
	assert.True(t, ok)
	assert.Equal(t, 7, v)

	_, ok = c.Consume("token")
	assert.False(t, ok)
}

func TestTTL_Purge(t *testing.T) {
	c, now := newClockedTTL()
	c.Set("short", 1, time.Second)
	c.Set("long", 2, time.Hour)

	*now = now.Add(time.Minute)
	assert.Equal(t, 1, c.Purge())

	_, ok := c.Get("long")
	assert.True(t, ok)
}
