package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Actions limited per client.
const (
	ActionSubmitReview = "submit_review"
	ActionValidateKey  = "validate_key"
	ActionAdminLogin   = "admin_login"
)

// Policy is a bucket size and refill rate.
type Policy struct {
	MaxTokens  int
	RefillRate int
	RefillTime time.Duration
}

var defaultPolicies = map[string]Policy{
	// 5 submissions per 10 minutes
	ActionSubmitReview: {MaxTokens: 5, RefillRate: 1, RefillTime: 2 * time.Minute},
	// 20 key checks per minute
	ActionValidateKey: {MaxTokens: 20, RefillRate: 1, RefillTime: 3 * time.Second},
	// 5 login attempts per 5 minutes
	ActionAdminLogin: {MaxTokens: 5, RefillRate: 1, RefillTime: time.Minute},
}

var fallbackPolicy = Policy{MaxTokens: 60, RefillRate: 1, RefillTime: time.Second}

// TokenBucket represents a token bucket for rate limiting
type TokenBucket struct {
	tokens     int
	policy     Policy
	lastRefill time.Time
	lastUsed   time.Time
	mutex      sync.Mutex
}

func NewTokenBucket(policy Policy, now time.Time) *TokenBucket {
	return &TokenBucket{
		tokens:     policy.MaxTokens,
		policy:     policy,
		lastRefill: now,
		lastUsed:   now,
	}
}

// Allow consumes a token if one is available. Otherwise it returns the wait until
// the next refill.
func (tb *TokenBucket) Allow(now time.Time) (bool, time.Duration) {
	tb.mutex.Lock()
	defer tb.mutex.Unlock()

	tb.lastUsed = now

	elapsed := now.Sub(tb.lastRefill)
	if refills := int(elapsed / tb.policy.RefillTime); refills > 0 {
		tb.tokens += refills * tb.policy.RefillRate
		if tb.tokens > tb.policy.MaxTokens {
			tb.tokens = tb.policy.MaxTokens
		}
		tb.lastRefill = tb.lastRefill.Add(time.Duration(refills) * tb.policy.RefillTime)
	}

	if tb.tokens > 0 {
		tb.tokens--
		return true, 0
	}

	return false, tb.lastRefill.Add(tb.policy.RefillTime).Sub(now)
}

func (tb *TokenBucket) Tokens() int {
	tb.mutex.Lock()
	defer tb.mutex.Unlock()
	return tb.tokens
}

func (tb *TokenBucket) idleSince(now time.Time) time.Duration {
	tb.mutex.Lock()
	defer tb.mutex.Unlock()
	return now.Sub(tb.lastUsed)
}

// RateLimiter keeps one bucket per client and action.
type RateLimiter struct {
	buckets  map[string]*TokenBucket
	policies map[string]Policy
	mutex    sync.RWMutex
	now      func() time.Time
}

func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		buckets:  make(map[string]*TokenBucket),
		policies: defaultPolicies,
		now:      time.Now,
	}
}

// Allow checks whether clientID may perform action now.
func (rl *RateLimiter) Allow(clientID, action string) (bool, time.Duration) {
	key := clientID + ":" + action
	now := rl.now()

	rl.mutex.RLock()
	bucket, exists := rl.buckets[key]
	rl.mutex.RUnlock()

	if !exists {
		rl.mutex.Lock()
		if bucket, exists = rl.buckets[key]; !exists {
			bucket = NewTokenBucket(rl.policyFor(action), now)
			rl.buckets[key] = bucket
		}
		rl.mutex.Unlock()
	}

	return bucket.Allow(now)
}

// Status returns the remaining and maximum tokens for a client action.
func (rl *RateLimiter) Status(clientID, action string) (tokens int, maxTokens int) {
	rl.mutex.RLock()
	bucket, exists := rl.buckets[clientID+":"+action]
	rl.mutex.RUnlock()

	if !exists {
		return rl.policyFor(action).MaxTokens, rl.policyFor(action).MaxTokens
	}
	return bucket.Tokens(), bucket.policy.MaxTokens
}

func (rl *RateLimiter) policyFor(action string) Policy {
	if policy, ok := rl.policies[action]; ok {
		return policy
	}
	return fallbackPolicy
}

// Cleanup drops buckets idle for more than an hour.
func (rl *RateLimiter) Cleanup() int {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	now := rl.now()
	removed := 0
	for key, bucket := range rl.buckets {
		if bucket.idleSince(now) > time.Hour {
			delete(rl.buckets, key)
			removed++
		}
	}
	return removed
}

// StartCleanupRoutine runs Cleanup every 30 minutes until ctx is done.
func (rl *RateLimiter) StartCleanupRoutine(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(30 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				rl.Cleanup()
			case <-ctx.Done():
				return
			}
		}
	}()
}
