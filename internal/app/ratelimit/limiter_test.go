package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"meetingmind/internal/config"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestMemoryLimiterDeniesAfterLimit(t *testing.T) {
	clock := newFakeClock()
	l := NewMemoryLimiter(3, time.Minute, WithClock(clock.Now))
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		d := l.Allow(ctx, "ip-1")
		assert.True(t, d.Allowed, "request %d should be allowed", i+1)
		assert.Equal(t, 2-i, d.Remaining)
	}

	d := l.Allow(ctx, "ip-1")
	assert.False(t, d.Allowed)
	assert.Equal(t, time.Minute, d.RetryAfter)

	clock.Advance(20 * time.Second)
	d = l.Allow(ctx, "ip-1")
	assert.False(t, d.Allowed)
	assert.Equal(t, 40*time.Second, d.RetryAfter)
}

func TestMemoryLimiterResetsAfterWindow(t *testing.T) {
	clock := newFakeClock()
	l := NewMemoryLimiter(2, time.Minute, WithClock(clock.Now))
	ctx := context.Background()

	assert.True(t, l.Allow(ctx, "k").Allowed)
	assert.True(t, l.Allow(ctx, "k").Allowed)
	assert.False(t, l.Allow(ctx, "k").Allowed)

	clock.Advance(time.Minute)

	assert.True(t, l.Allow(ctx, "k").Allowed)
	assert.True(t, l.Allow(ctx, "k").Allowed)
	assert.False(t, l.Allow(ctx, "k").Allowed)
}

func TestMemoryLimiterKeysAreIndependent(t *testing.T) {
	l := NewMemoryLimiter(1, time.Minute)
	ctx := context.Background()

	assert.True(t, l.Allow(ctx, "a").Allowed)
	assert.False(t, l.Allow(ctx, "a").Allowed)
	assert.True(t, l.Allow(ctx, "b").Allowed)
}

func TestMemoryLimiterSweep(t *testing.T) {
	clock := newFakeClock()
	l := NewMemoryLimiter(5, time.Minute, WithClock(clock.Now))
	ctx := context.Background()

	l.Allow(ctx, "old")
	clock.Advance(30 * time.Second)
	l.Allow(ctx, "new")
	require.Equal(t, 2, l.Len())

	clock.Advance(30 * time.Second)
	assert.Equal(t, 1, l.Sweep())
	assert.Equal(t, 1, l.Len())

	clock.Advance(30 * time.Second)
	assert.Equal(t, 1, l.Sweep())
	assert.Equal(t, 0, l.Len())
}

func TestMemoryLimiterConcurrentAllow(t *testing.T) {
	l := NewMemoryLimiter(50, time.Minute)
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 200; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow(ctx, "shared").Allowed {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, allowed)
}

func TestRegistryTiersAreIndependent(t *testing.T) {
	clock := newFakeClock()
	tiers := config.RateLimitConfig{
		config.TierUpload:      {Limit: 1, Window: time.Hour},
		config.TierPublicNotes: {Limit: 2, Window: time.Minute},
	}
	r := NewRegistry(tiers, nil, zap.NewNop(), WithClock(clock.Now))
	ctx := context.Background()

	assert.True(t, r.Allow(ctx, config.TierUpload, "u1").Allowed)
	assert.False(t, r.Allow(ctx, config.TierUpload, "u1").Allowed)
	assert.True(t, r.Allow(ctx, config.TierPublicNotes, "u1").Allowed)
	assert.True(t, r.Allow(ctx, "unknown", "u1").Allowed)

	clock.Advance(time.Hour)
	assert.Equal(t, 2, r.Sweep())
}

func TestRegistryStartStop(t *testing.T) {
	r := NewRegistry(config.DefaultRateLimits(), nil, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r.Start(ctx, 10*time.Millisecond)
	r.Stop()
	r.Stop()
}

func TestRedisLimiterFailsOpen(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	l := NewRedisLimiter(client, "ratelimit:test", 1, time.Minute, zap.NewNop())
	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow(context.Background(), "k").Allowed)
	}
}

func TestRegistryUsesRedisWhenConfigured(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
	defer client.Close()

	r := NewRegistry(config.DefaultRateLimits(), client, zap.NewNop())
	assert.Empty(t, r.memory)
	_, ok := r.limiters[config.TierUpload].(*RedisLimiter)
	assert.True(t, ok)
}
