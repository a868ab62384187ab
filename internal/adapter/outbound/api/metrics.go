package api

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the gateway.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RefreshTotal    *prometheus.CounterVec
	CacheHitsTotal  prometheus.Counter
	CacheMissTotal  prometheus.Counter
}

// NewMetrics creates and registers all gateway metrics with the given registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		RequestsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "quillctl",
				Name:      "requests_total",
				Help:      "Total number of API requests sent",
			},
			[]string{"method", "status"}, // status=HTTP code or transport_error
		),
		RequestDuration: promauto.With(reg).NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "quillctl",
				Name:      "request_duration_seconds",
				Help:      "API request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		RefreshTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "quillctl",
				Name:      "token_refresh_total",
				Help:      "Total token refresh attempts",
			},
			[]string{"result"}, // result=success/failure
		),
		CacheHitsTotal: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Namespace: "quillctl",
				Name:      "response_cache_hits_total",
				Help:      "Total GET responses served from the cache",
			},
		),
		CacheMissTotal: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Namespace: "quillctl",
				Name:      "response_cache_misses_total",
				Help:      "Total cacheable GETs that went to the server",
			},
		),
	}
}

func (m *Metrics) request(method, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(method, status).Inc()
	m.RequestDuration.WithLabelValues(method).Observe(d.Seconds())
}

func (m *Metrics) refresh(result string) {
	if m == nil {
		return
	}
	m.RefreshTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) cacheHit() {
	if m == nil {
		return
	}
	m.CacheHitsTotal.Inc()
}

func (m *Metrics) cacheMiss() {
	if m == nil {
		return
	}
	m.CacheMissTotal.Inc()
}
