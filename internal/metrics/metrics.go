package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CapturesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobflow_captures_total",
			Help: "Capture runs by terminal outcome",
		},
		[]string{"outcome"},
	)

	FieldSourceTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobflow_field_source_total",
			Help: "Which strategy filled each field",
		},
		[]string{"field", "source"},
	)

	AppliesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobflow_applies_total",
			Help: "POST /apply requests handled by the sink, by result",
		},
		[]string{"result"},
	)

	ApplyDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "jobflow_apply_duration_seconds",
			Help:    "Time spent storing one /apply payload",
			Buckets: prometheus.DefBuckets,
		},
	)
)

// ObserveFields counts the source of every filled field.
func ObserveFields(sources map[string]string) {
	for field, src := range sources {
		FieldSourceTotal.WithLabelValues(field, src).Inc()
	}
}

func ObserveApply(result string, start time.Time) {
	AppliesTotal.WithLabelValues(result).Inc()
	ApplyDuration.Observe(time.Since(start).Seconds())
}
