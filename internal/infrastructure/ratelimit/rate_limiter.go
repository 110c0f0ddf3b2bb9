package ratelimit

import (
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"
)

const (
	ActionCartMutation = "cart_mutation"
	ActionCheckout     = "checkout"
	ActionStreamSelect = "stream_select"
)

// Policy is a token bucket: Burst tokens, one refilled every Every.
type Policy struct {
	Burst int
	Every time.Duration
}

type bucket struct {
	limiter  *rate.Limiter
	lastSeen atomic.Int64
}

// RateLimiter keeps one token bucket per user and action.
type RateLimiter struct {
	buckets  map[string]*bucket
	policies map[string]Policy
	fallback Policy
	mutex    sync.RWMutex
	now      func() time.Time
}

// DefaultPolicies derives per-action limits from a general per-minute budget.
func DefaultPolicies(perMinute int) (Policy, map[string]Policy) {
	if perMinute <= 0 {
		perMinute = 60
	}
	fallback := Policy{Burst: perMinute, Every: time.Minute / time.Duration(perMinute)}
	return fallback, map[string]Policy{
		ActionCheckout:     {Burst: 5, Every: 12 * time.Second},
		ActionCartMutation: {Burst: 30, Every: 2 * time.Second},
		ActionStreamSelect: {Burst: 10, Every: 6 * time.Second},
	}
}

func NewRateLimiter(fallback Policy, policies map[string]Policy) *RateLimiter {
	if policies == nil {
		policies = make(map[string]Policy)
	}
	return &RateLimiter{
		buckets:  make(map[string]*bucket),
		policies: policies,
		fallback: fallback,
		now:      time.Now,
	}
}

func (rl *RateLimiter) policy(action string) Policy {
	if p, ok := rl.policies[action]; ok {
		return p
	}
	return rl.fallback
}

// Allow consumes a token for userID/action. When none is available it
// returns false and how long until the next token.
func (rl *RateLimiter) Allow(userID, action string) (bool, time.Duration) {
	key := userID + ":" + action
	now := rl.now()

	rl.mutex.RLock()
	b, exists := rl.buckets[key]
	rl.mutex.RUnlock()

	if !exists {
		rl.mutex.Lock()
		if b, exists = rl.buckets[key]; !exists {
			p := rl.policy(action)
			b = &bucket{limiter: rate.NewLimiter(rate.Every(p.Every), p.Burst)}
			rl.buckets[key] = b
		}
		rl.mutex.Unlock()
	}

	b.lastSeen.Store(now.UnixNano())

	res := b.limiter.ReserveN(now, 1)
	if !res.OK() {
		return false, rl.policy(action).Every
	}
	if delay := res.DelayFrom(now); delay > 0 {
		res.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// Tokens returns the tokens currently available for userID/action.
func (rl *RateLimiter) Tokens(userID, action string) float64 {
	rl.mutex.RLock()
	b, exists := rl.buckets[userID+":"+action]
	rl.mutex.RUnlock()

	if !exists {
		return float64(rl.policy(action).Burst)
	}
	return b.limiter.TokensAt(rl.now())
}

// Cleanup removes buckets idle for longer than maxIdle.
func (rl *RateLimiter) Cleanup(maxIdle time.Duration) int {
	rl.mutex.Lock()
	defer rl.mutex.Unlock()

	cutoff := rl.now().Add(-maxIdle).UnixNano()
	removed := 0
	for key, b := range rl.buckets {
		if b.lastSeen.Load() < cutoff {
			delete(rl.buckets, key)
			removed++
		}
	}
	return removed
}

// StartCleanupRoutine starts a cleanup routine that runs until stop closes.
func (rl *RateLimiter) StartCleanupRoutine(stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(30 * time.Minute)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				rl.Cleanup(time.Hour)
			case <-stop:
				return
			}
		}
	}()
}
