// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MatchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_requests_total",
			Help: "Total number of matching operations served",
		},
		[]string{"operation"},
	)

	MatchFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_requests_failed_total",
			Help: "Total number of matching operations that failed",
		},
		[]string{"operation", "error_code"},
	)

	MatchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "matching_request_duration_seconds",
			Help: "Duration of matching operations in seconds",
		},
		[]string{"operation"},
	)

	CandidatesScored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "matching_candidates_scored_total",
			Help: "Number of profile/listing pairs scored, per operation",
		},
		[]string{"operation"},
	)
)
