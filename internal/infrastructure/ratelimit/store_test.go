package ratelimit_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/finanzas-api/internal/infrastructure/ratelimit"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func TestStore_BurstYRecarga(t *testing.T) {
	c := &clock{t: time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)}
	s := ratelimit.NewStore(1, 2, ratelimit.WithClock(c.now))

	assert.True(t, s.Allow("1.1.1.1"))
	assert.True(t, s.Allow("1.1.1.1"))
	assert.False(t, s.Allow("1.1.1.1"), "burst agotado")
	assert.True(t, s.Allow("2.2.2.2"), "cada IP tiene su propio bucket")

	c.t = c.t.Add(time.Second)
	assert.True(t, s.Allow("1.1.1.1"))
}

func TestStore_CleanupEliminaInactivas(t *testing.T) {
	c := &clock{t: time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)}
	s := ratelimit.NewStore(1, 1, ratelimit.WithClock(c.now), ratelimit.WithIdleTTL(time.Minute))

	s.Allow("a")
	c.t = c.t.Add(30 * time.Second)
	s.Allow("b")
	c.t = c.t.Add(45 * time.Second)
	s.Cleanup()

	assert.Equal(t, 1, s.Len())
}

func TestStore_RetryAfter(t *testing.T) {
	assert.Equal(t, 2*time.Second, ratelimit.NewStore(0.5, 1).RetryAfter())
	assert.Equal(t, time.Second, ratelimit.NewStore(10, 1).RetryAfter())
}
