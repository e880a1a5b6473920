package notify

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts dispatcher outcomes.
type Metrics struct {
	Sent    prometheus.Counter
	Deduped prometheus.Counter
	Failed  prometheus.Counter
}

// NewMetrics registers the dispatcher counters.
func NewMetrics() *Metrics {
	return &Metrics{
		Sent: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vigil_notifications_sent_total",
			Help: "Notifications handed to the outbound queue",
		}),
		Deduped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vigil_notifications_deduped_total",
			Help: "Notifications skipped because one was already logged today",
		}),
		Failed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "vigil_notifications_failed_total",
			Help: "Notification enqueue attempts that failed",
		}),
	}
}

func (m *Metrics) incSent() {
	if m != nil {
		m.Sent.Inc()
	}
}

func (m *Metrics) incDeduped() {
	if m != nil {
		m.Deduped.Inc()
	}
}

func (m *Metrics) incFailed() {
	if m != nil {
		m.Failed.Inc()
	}
}
