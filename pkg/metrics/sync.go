package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SyncMetrics records the outcome of remote pushes per category.
type SyncMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
	dropped  *prometheus.CounterVec
}

// NewSyncMetrics registers the sync metrics on the provided registerer.
func NewSyncMetrics(reg prometheus.Registerer) *SyncMetrics {
	if reg == nil {
		return &SyncMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sync_push_duration_seconds",
		Help:    "Duration of remote pushes in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"category"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sync_push_success",
		Help: "Successful remote pushes.",
	}, []string{"category"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sync_push_failure",
		Help: "Failed remote pushes.",
	}, []string{"category"})
	dropped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sync_push_dropped",
		Help: "Pushes dropped because one was already in flight for the category.",
	}, []string{"category"})
	reg.MustRegister(duration, success, failure, dropped)
	return &SyncMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
		dropped:  dropped,
	}
}

// ObserveDuration records how long a push took.
func (m *SyncMetrics) ObserveDuration(category string, d time.Duration) {
	if m == nil || m.duration == nil {
		return
	}
	m.duration.WithLabelValues(category).Observe(d.Seconds())
}

// IncSuccess counts a completed push.
func (m *SyncMetrics) IncSuccess(category string) {
	if m == nil || m.success == nil {
		return
	}
	m.success.WithLabelValues(category).Inc()
}

// IncFailure counts a failed push.
func (m *SyncMetrics) IncFailure(category string) {
	if m == nil || m.failure == nil {
		return
	}
	m.failure.WithLabelValues(category).Inc()
}

// IncDropped counts a push rejected by the single-flight guard.
func (m *SyncMetrics) IncDropped(category string) {
	if m == nil || m.dropped == nil {
		return
	}
	m.dropped.WithLabelValues(category).Inc()
}
