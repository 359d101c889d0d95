// Package metrics provides Prometheus metrics for the category deletion tool.
// It tracks tool calls, wiki API calls, candidate outcomes, deletions and
// authentication failures.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace for all metrics
const (
	Namespace = "mediawiki_delete_category"
)

// Candidate outcomes
const (
	OutcomeDeleted  = "deleted"
	OutcomeSkipped  = "skipped"
	OutcomeDeclined = "declined"
)

var (
	// RequestsTotal counts MCP tool calls by tool name and status
	RequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "requests_total",
		Help:      "Total number of MCP tool calls",
	}, []string{"tool", "status"})

	// RequestDuration measures tool call latency
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "request_duration_seconds",
		Help:      "Tool call latency distribution by tool",
		Buckets:   []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60, 300},
	}, []string{"tool"})

	// RequestInFlight tracks currently executing tool calls
	RequestInFlight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "requests_in_flight",
		Help:      "Number of tool calls currently being processed",
	}, []string{"tool"})

	// PanicsRecovered counts recovered panics
	PanicsRecovered = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "panics_recovered_total",
		Help:      "Number of panics recovered in tool handlers",
	}, []string{"tool"})

	// APIRequestsTotal counts wiki API requests by action and status
	APIRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "api_requests_total",
		Help:      "Total wiki API requests by action and status",
	}, []string{"action", "status"})

	// APILatency measures wiki API call latency by action
	APILatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "api_latency_seconds",
		Help:      "Wiki API call latency by action",
		Buckets:   prometheus.DefBuckets,
	}, []string{"action"})

	// APIErrors counts MediaWiki error responses by action and error code
	APIErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "api_errors_total",
		Help:      "Wiki API errors by action and error code",
	}, []string{"action", "error_code"})

	// APIRetries counts API request retries
	APIRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "api_retries_total",
		Help:      "Wiki API retry count by action",
	}, []string{"action"})

	// AuthFailures counts authentication failures
	AuthFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "auth_failures_total",
		Help:      "Authentication failure count by reason",
	}, []string{"reason"})

	// CandidatesTotal counts processed category members by outcome
	CandidatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "candidates_total",
		Help:      "Category members processed by outcome",
	}, []string{"outcome"})

	// DeleteOperations counts delete actions by status
	DeleteOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "delete_operations_total",
		Help:      "Delete actions by status",
	}, []string{"status"})

	// ReferrersPerCandidate records how many referrers were found per candidate
	ReferrersPerCandidate = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "referrers_per_candidate",
		Help:      "Distribution of backlink and file usage counts per candidate",
		Buckets:   []float64{0, 1, 2, 5, 10, 25, 50, 100, 500},
	})
)

func status(success bool) string {
	if success {
		return "success"
	}
	return "error"
}

// RecordRequest records a completed tool call with its duration and status
func RecordRequest(tool string, duration float64, success bool) {
	RequestsTotal.WithLabelValues(tool, status(success)).Inc()
	RequestDuration.WithLabelValues(tool).Observe(duration)
}

// RecordAPICall records a wiki API call
func RecordAPICall(action string, duration float64, success bool, errorCode string) {
	APIRequestsTotal.WithLabelValues(action, status(success)).Inc()
	APILatency.WithLabelValues(action).Observe(duration)
	if errorCode != "" {
		APIErrors.WithLabelValues(action, errorCode).Inc()
	}
}

// RecordDeletion records a delete action
func RecordDeletion(success bool) {
	DeleteOperations.WithLabelValues(status(success)).Inc()
}

// RecordOutcome records what happened to one candidate
func RecordOutcome(outcome string) {
	CandidatesTotal.WithLabelValues(outcome).Inc()
}

// RecordReferrers records the referrer count of one candidate
func RecordReferrers(n int) {
	ReferrersPerCandidate.Observe(float64(n))
}

// WriteTextfile writes all registered metrics to path in the text exposition
// format, for pickup by a node_exporter textfile collector.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
