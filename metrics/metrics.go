package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ChatResponses counts chat replies by mode (ai or echo).
	ChatResponses = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "jarvis",
		Name:      "chat_responses_total",
		Help:      "Chat replies produced, by mode.",
	}, []string{"mode"})

	// RuntimeProbes counts model runtime availability probes by result.
	RuntimeProbes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "jarvis",
		Name:      "runtime_probes_total",
		Help:      "Model runtime availability probes, by result.",
	}, []string{"result"})

	// RequestDuration observes HTTP handler latency.
	RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "jarvis",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
