// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CRMRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_requests_total",
			Help: "Total number of Dynamics 365 Web API calls by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	CRMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "crm_request_duration_seconds",
			Help: "Duration of Dynamics 365 Web API calls in seconds",
		},
		[]string{"operation"},
	)

	CRMTokenAcquisitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "crm_token_acquisitions_total",
			Help: "Total number of access tokens fetched from the identity provider",
		},
		[]string{"outcome"},
	)

	RFPSyncResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rfp_sync_results_total",
			Help: "Total number of RFP sync attempts by entity kind and outcome",
		},
		[]string{"mode", "outcome"},
	)

	LLMRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_requests_total",
			Help: "Total number of LLM completion calls by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	RequestsInFlight = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being served per route",
		},
		[]string{"route"},
	)
)

// Outcome returns the label value used for success/failure counters.
func Outcome(success bool) string {
	if success {
		return "success"
	}
	return "failure"
}
