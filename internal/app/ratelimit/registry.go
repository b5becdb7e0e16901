package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"meetingmind/internal/config"
)

// Registry holds one independent limiter per endpoint tier
type Registry struct {
	limiters map[string]Limiter
	memory   []*MemoryLimiter
	logger   *zap.Logger

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewRegistry builds a limiter per tier. When client is nil the counters are process-local.
func NewRegistry(tiers config.RateLimitConfig, client redis.Cmdable, logger *zap.Logger, opts ...Option) *Registry {
	r := &Registry{
		limiters: make(map[string]Limiter, len(tiers)),
		logger:   logger.Named("ratelimit"),
		stopChan: make(chan struct{}),
	}

	for name, tier := range tiers {
		if client != nil {
			r.limiters[name] = NewRedisLimiter(client, config.DefaultRateLimitKeyRoot+":"+name, tier.Limit, tier.Window, r.logger)
			continue
		}
		l := NewMemoryLimiter(tier.Limit, tier.Window, opts...)
		r.limiters[name] = l
		r.memory = append(r.memory, l)
	}
	return r
}

// Allow checks key against the named tier; unknown tiers always allow
func (r *Registry) Allow(ctx context.Context, tier, key string) Decision {
	l, ok := r.limiters[tier]
	if !ok {
		r.logger.Warn("unknown rate limit tier", zap.String("tier", tier))
		return Decision{Allowed: true}
	}
	return l.Allow(ctx, key)
}

// Sweep evicts expired windows from every process-local limiter
func (r *Registry) Sweep() int {
	removed := 0
	for _, l := range r.memory {
		removed += l.Sweep()
	}
	return removed
}

// Start runs Sweep on a ticker until Stop is called or ctx is cancelled
func (r *Registry) Start(ctx context.Context, interval time.Duration) {
	if len(r.memory) == 0 {
		return
	}

	ticker := time.NewTicker(interval)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if removed := r.Sweep(); removed > 0 {
					r.logger.Debug("swept expired rate limit windows", zap.Int("removed", removed))
				}
			case <-ctx.Done():
				return
			case <-r.stopChan:
				return
			}
		}
	}()

	r.logger.Info("rate limit sweeper started", zap.Duration("interval", interval))
}

// Stop halts the sweeper; it is safe to call more than once
func (r *Registry) Stop() {
	r.stopOnce.Do(func() {
		close(r.stopChan)
	})
	r.wg.Wait()
}
