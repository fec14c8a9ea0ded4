package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type clock struct{ t time.Time }

func (c *clock) now() time.Time { return c.t }

func newTestLimiter() (*RateLimiter, *clock) {
	c := &clock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	rl := NewRateLimiter()
	rl.now = c.now
	return rl, c
}

func TestAllowExhaustsAndRefills(t *testing.T) {
	rl, c := newTestLimiter()

	for i := 0; i < 5; i++ {
		ok, _ := rl.Allow("10.0.0.1", ActionSubmitReview)
		assert.True(t, ok, "attempt %d", i)
	}

	ok, wait := rl.Allow("10.0.0.1", ActionSubmitReview)
	assert.False(t, ok)
	assert.Equal(t, 2*time.Minute, wait)

	// Other clients and actions have their own buckets.
	ok, _ = rl.Allow("10.0.0.2", ActionSubmitReview)
	assert.True(t, ok)
	ok, _ = rl.Allow("10.0.0.1", ActionValidateKey)
	assert.True(t, ok)

	c.t = c.t.Add(2 * time.Minute)
	ok, _ = rl.Allow("10.0.0.1", ActionSubmitReview)
	assert.True(t, ok)
	ok, _ = rl.Allow("10.0.0.1", ActionSubmitReview)
	assert.False(t, ok)
}

func TestStatus(t *testing.T) {
	rl, _ := newTestLimiter()

	tokens, maxTokens := rl.Status("10.0.0.1", ActionAdminLogin)
	assert.Equal(t, 5, tokens)
	assert.Equal(t, 5, maxTokens)

	rl.Allow("10.0.0.1", ActionAdminLogin)
	tokens, _ = rl.Status("10.0.0.1", ActionAdminLogin)
	assert.Equal(t, 4, tokens)

	_, maxTokens = rl.Status("10.0.0.1", "unknown")
	assert.Equal(t, 60, maxTokens)
}

func TestCleanupDropsIdleBuckets(t *testing.T) {
	rl, c := newTestLimiter()
	rl.Allow("10.0.0.1", ActionValidateKey)

	c.t = c.t.Add(30 * time.Minute)
	rl.Allow("10.0.0.2", ActionValidateKey)

	c.t = c.t.Add(45 * time.Minute)
	assert.Equal(t, 1, rl.Cleanup())
	assert.Len(t, rl.buckets, 1)
}
