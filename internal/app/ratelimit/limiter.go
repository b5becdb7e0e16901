// Package ratelimit implements per-key fixed-window request quotas.
package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Decision is the outcome of a single Allow call
type Decision struct {
	Allowed    bool
	Remaining  int
	RetryAfter time.Duration
}

// Limiter admits or rejects requests for a key
type Limiter interface {
	Allow(ctx context.Context, key string) Decision
}

type window struct {
	count   int
	resetAt time.Time
}

// MemoryLimiter is a process-local fixed-window counter. It is only correct for a
// single-process deployment; use RedisLimiter when running several instances.
type MemoryLimiter struct {
	mu      sync.Mutex
	entries map[string]*window
	limit   int
	window  time.Duration
	now     func() time.Time
}

// Option customises a MemoryLimiter
type Option func(*MemoryLimiter)

// WithClock replaces the time source
func WithClock(now func() time.Time) Option {
	return func(l *MemoryLimiter) {
		l.now = now
	}
}

// NewMemoryLimiter allows limit requests per key in each window
func NewMemoryLimiter(limit int, windowLength time.Duration, opts ...Option) *MemoryLimiter {
	l := &MemoryLimiter{
		entries: make(map[string]*window),
		limit:   limit,
		window:  windowLength,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Allow performs the check-and-increment for key in one critical section
func (l *MemoryLimiter) Allow(_ context.Context, key string) Decision {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	w, ok := l.entries[key]
	if !ok || !now.Before(w.resetAt) {
		l.entries[key] = &window{count: 1, resetAt: now.Add(l.window)}
		return Decision{Allowed: true, Remaining: l.limit - 1}
	}

	w.count++
	if w.count > l.limit {
		return Decision{Allowed: false, RetryAfter: w.resetAt.Sub(now)}
	}
	return Decision{Allowed: true, Remaining: l.limit - w.count}
}

// Sweep drops every entry whose window has elapsed and returns how many were removed
func (l *MemoryLimiter) Sweep() int {
	now := l.now()

	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, w := range l.entries {
		if !now.Before(w.resetAt) {
			delete(l.entries, key)
			removed++
		}
	}
	return removed
}

// Len returns the number of tracked keys
func (l *MemoryLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
