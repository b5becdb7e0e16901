package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "meetingmind"

// Metrics groups the service's prometheus collectors
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests        *prometheus.HistogramVec
	TranscriptionJobs   *prometheus.CounterVec
	WebhookDeliveries   *prometheus.CounterVec
	Summarizations      *prometheus.CounterVec
	RateLimitDenials    *prometheus.CounterVec
	RealtimeSubscribers prometheus.Gauge
	ProviderLatency     *prometheus.HistogramVec

	Providers *ProviderStats
}

// New registers all collectors on a fresh registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		HTTPRequests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
		TranscriptionJobs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transcription_jobs_total",
			Help:      "Transcription job lifecycle events.",
		}, []string{"event"}),
		WebhookDeliveries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "webhook_deliveries_total",
			Help:      "Provider webhook deliveries by outcome.",
		}, []string{"outcome"}),
		Summarizations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "summarizations_total",
			Help:      "Summarization requests by provider and outcome.",
		}, []string{"provider", "outcome"}),
		RateLimitDenials: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limit_denials_total",
			Help:      "Requests rejected by a rate limit tier.",
		}, []string{"tier"}),
		RealtimeSubscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "realtime_subscribers",
			Help:      "Currently connected realtime subscribers.",
		}),
		ProviderLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_request_duration_seconds",
			Help:      "Latency of calls to external providers.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"provider", "operation"}),
		Providers: NewProviderStats(),
	}

	reg.MustRegister(
		m.HTTPRequests,
		m.TranscriptionJobs,
		m.WebhookDeliveries,
		m.Summarizations,
		m.RateLimitDenials,
		m.RealtimeSubscribers,
		m.ProviderLatency,
	)
	return m
}

// Handler serves the registry in the prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests and extra collectors
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveProvider records one provider call in both the histogram and the stats table
func (m *Metrics) ObserveProvider(provider, operation string, started time.Time, err error) {
	elapsed := time.Since(started)
	m.ProviderLatency.WithLabelValues(provider, operation).Observe(elapsed.Seconds())
	if err != nil {
		m.Providers.RecordFailure(provider, operation)
		return
	}
	m.Providers.RecordSuccess(provider, elapsed.Milliseconds())
}
