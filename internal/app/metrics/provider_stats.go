package metrics

import (
	"sort"
	"sync"
	"time"
)

// ProviderSnapshot is a point-in-time view of one provider's health
type ProviderSnapshot struct {
	Provider           string           `json:"provider"`
	TotalRequests      int64            `json:"total_requests"`
	SuccessfulRequests int64            `json:"successful_requests"`
	FailedRequests     int64            `json:"failed_requests"`
	SuccessRate        float64          `json:"success_rate"`
	AverageLatencyMs   float64          `json:"average_latency_ms"`
	LastUsed           int64            `json:"last_used"`
	IsHealthy          bool             `json:"is_healthy"`
	ErrorBreakdown     map[string]int64 `json:"error_breakdown,omitempty"`
}

// ProviderStats keeps per-provider request statistics in memory
type ProviderStats struct {
	mu    sync.RWMutex
	stats map[string]*ProviderSnapshot
	now   func() time.Time
}

// NewProviderStats creates an empty stats table
func NewProviderStats() *ProviderStats {
	return &ProviderStats{
		stats: make(map[string]*ProviderSnapshot),
		now:   time.Now,
	}
}

// RecordSuccess records a successful provider call
func (p *ProviderStats) RecordSuccess(provider string, latencyMs int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.getOrCreate(provider)
	s.TotalRequests++
	s.SuccessfulRequests++
	s.LastUsed = p.now().Unix()
	s.IsHealthy = true

	// Weighted average favoring recent results
	if s.AverageLatencyMs == 0 {
		s.AverageLatencyMs = float64(latencyMs)
	} else {
		s.AverageLatencyMs = (s.AverageLatencyMs * 0.8) + (float64(latencyMs) * 0.2)
	}
	s.SuccessRate = float64(s.SuccessfulRequests) / float64(s.TotalRequests)
}

// RecordFailure records a failed provider call under the given error type
func (p *ProviderStats) RecordFailure(provider string, errorType string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.getOrCreate(provider)
	s.TotalRequests++
	s.FailedRequests++
	s.LastUsed = p.now().Unix()
	s.ErrorBreakdown[errorType]++
	s.SuccessRate = float64(s.SuccessfulRequests) / float64(s.TotalRequests)

	if s.TotalRequests >= 10 && s.SuccessRate < 0.5 {
		s.IsHealthy = false
	}
}

// Snapshot returns copies of all provider stats ordered by name
func (p *ProviderStats) Snapshot() []ProviderSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]ProviderSnapshot, 0, len(p.stats))
	for _, s := range p.stats {
		c := *s
		c.ErrorBreakdown = make(map[string]int64, len(s.ErrorBreakdown))
		for k, v := range s.ErrorBreakdown {
			c.ErrorBreakdown[k] = v
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Provider < out[j].Provider })
	return out
}

// must be called with lock held
func (p *ProviderStats) getOrCreate(provider string) *ProviderSnapshot {
	s, ok := p.stats[provider]
	if !ok {
		s = &ProviderSnapshot{
			Provider:       provider,
			IsHealthy:      true,
			ErrorBreakdown: make(map[string]int64),
		}
		p.stats[provider] = s
	}
	return s
}
