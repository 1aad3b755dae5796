package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the matchmaking module.
type Metrics struct {
	RequestsCreated   prometheus.Counter
	RequestsCancelled prometheus.Counter
	QuotaDenied       *prometheus.CounterVec
	OracleFailures    prometheus.Counter
	OracleLatency     prometheus.Histogram
}

// New creates and registers all matchmaking metrics.
func New() *Metrics {
	return &Metrics{
		RequestsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hashpass_meeting_requests_created_total",
			Help: "Total meeting requests created.",
		}),
		RequestsCancelled: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hashpass_meeting_requests_cancelled_total",
			Help: "Total meeting requests cancelled by the requester.",
		}),
		QuotaDenied: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "hashpass_meeting_request_denials_total",
			Help: "Meeting request denials by reason (quota, duplicate).",
		}, []string{"reason"}),
		OracleFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "hashpass_quota_oracle_failures_total",
			Help: "Quota oracle calls that failed and were treated as denial.",
		}),
		OracleLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "hashpass_quota_oracle_latency_seconds",
			Help:    "Quota oracle round-trip latency.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// RecordDenial counts a denial by reason ("quota" or "duplicate").
func (m *Metrics) RecordDenial(reason string) {
	if m == nil {
		return
	}
	m.QuotaDenied.WithLabelValues(reason).Inc()
}

// RecordOracleFailure counts a verdict that was unusable despite the call
// succeeding at the transport level.
func (m *Metrics) RecordOracleFailure() {
	if m == nil {
		return
	}
	m.OracleFailures.Inc()
}

// ObserveOracle records one oracle round trip.
func (m *Metrics) ObserveOracle(d time.Duration, failed bool) {
	if m == nil {
		return
	}
	m.OracleLatency.Observe(d.Seconds())
	if failed {
		m.OracleFailures.Inc()
	}
}
