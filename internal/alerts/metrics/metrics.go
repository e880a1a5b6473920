package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the alert engine.
type Metrics struct {
	// Cache slot outcomes by kind
	CacheHits   *prometheus.CounterVec
	CacheMisses *prometheus.CounterVec
	Coalesced   *prometheus.CounterVec

	// Alerts produced per generation pass by kind and priority
	AlertsGenerated *prometheus.CounterVec

	// Full generation latency, entity fetch included
	GenerateLatency prometheus.Histogram
}

// New creates a new Metrics instance with all alert engine metrics registered.
func New() *Metrics {
	return &Metrics{
		CacheHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vigil_alert_cache_hits_total",
			Help: "Alert list requests served from the cache without recomputation",
		}, []string{"kind"}),

		CacheMisses: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vigil_alert_cache_misses_total",
			Help: "Alert list requests that triggered a generation pass",
		}, []string{"kind"}),

		Coalesced: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vigil_alert_cache_coalesced_total",
			Help: "Alert list requests attached to an already in-flight generation",
		}, []string{"kind"}),

		AlertsGenerated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "vigil_alerts_generated_total",
			Help: "Alerts produced by generation passes by kind and priority",
		}, []string{"kind", "priority"}),

		GenerateLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "vigil_alert_generate_duration_seconds",
			Help:    "Duration of a full alert generation pass including entity fetch",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
	}
}

// IncrementCacheHit records a request served from cache.
func (m *Metrics) IncrementCacheHit(kind string) {
	if m != nil {
		m.CacheHits.WithLabelValues(kind).Inc()
	}
}

// IncrementCacheMiss records a request that started a generation pass.
func (m *Metrics) IncrementCacheMiss(kind string) {
	if m != nil {
		m.CacheMisses.WithLabelValues(kind).Inc()
	}
}

// IncrementCoalesced records a request that joined an in-flight generation.
func (m *Metrics) IncrementCoalesced(kind string) {
	if m != nil {
		m.Coalesced.WithLabelValues(kind).Inc()
	}
}

// CountAlert records one generated alert.
func (m *Metrics) CountAlert(kind, priority string) {
	if m != nil {
		m.AlertsGenerated.WithLabelValues(kind, priority).Inc()
	}
}

// ObserveGenerateLatency records the duration of a generation pass.
func (m *Metrics) ObserveGenerateLatency(d time.Duration) {
	if m != nil {
		m.GenerateLatency.Observe(d.Seconds())
	}
}
