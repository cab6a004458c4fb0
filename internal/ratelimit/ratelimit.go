package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"auction-platform/utils"
)

// Policy defines a token bucket: Points tokens refill continuously over
// Duration, each Allow call consumes one.
type Policy struct {
	Name     string
	Points   int
	Duration time.Duration
}

// Named policies shared by the admission gate and login throttling.
var (
	BidPolicy   = Policy{Name: "bid", Points: 1, Duration: time.Second}
	LoginPolicy = Policy{Name: "login", Points: 5, Duration: 60 * time.Second}
)

// Store holds per-bucket token state. Take attempts to consume one point
// from the bucket and reports whether it was available.
type Store interface {
	Take(ctx context.Context, bucketKey string, policy Policy) (bool, error)
}

// Limiter is a non-blocking admission gate. Buckets are keyed by
// {key}_{policyName}; throttling is advisory, so a failing store lets
// traffic through rather than rejecting it.
type Limiter struct {
	store Store
}

// NewLimiter creates a limiter backed by the given store
func NewLimiter(store Store) *Limiter {
	return &Limiter{store: store}
}

// Allow consumes one point from the key's bucket under the policy.
// Returns true when the call is admitted.
func (l *Limiter) Allow(ctx context.Context, key string, policy Policy) bool {
	ok, err := l.store.Take(ctx, fmt.Sprintf("%s_%s", key, policy.Name), policy)
	if err != nil {
		utils.Warn("rate limiter store unavailable, admitting", map[string]any{
			"key":    key,
			"policy": policy.Name,
			"error":  err.Error(),
		})
		return true
	}
	return ok
}

// bucket tracks remaining tokens with lazy refill on access.
type bucket struct {
	tokens float64
	last   time.Time
}

// MemoryStore is the process-local Store. State is not shared across
// replicas; each instance enforces the policy independently.
type MemoryStore struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	now     func() time.Time
}

// NewMemoryStore creates an in-memory bucket store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		buckets: make(map[string]*bucket),
		now:     time.Now,
	}
}

// Take refills the bucket for elapsed time and consumes one token if a
// whole one is available.
func (s *MemoryStore) Take(_ context.Context, bucketKey string, policy Policy) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	b, ok := s.buckets[bucketKey]
	if !ok {
		b = &bucket{tokens: float64(policy.Points), last: now}
		s.buckets[bucketKey] = b
	} else {
		refill := now.Sub(b.last).Seconds() * float64(policy.Points) / policy.Duration.Seconds()
		b.tokens += refill
		if b.tokens > float64(policy.Points) {
			b.tokens = float64(policy.Points)
		}
		b.last = now
	}

	if b.tokens < 1 {
		return false, nil
	}
	b.tokens--
	return true, nil
}
