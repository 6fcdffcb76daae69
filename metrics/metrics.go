package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "sondaj"

// Board labels
const (
	BoardUser = "user"
	BoardLive = "live"
)

// Vote outcome labels
const (
	OutcomeAccepted  = "accepted"
	OutcomeChanged   = "changed"
	OutcomeDuplicate = "duplicate"
	OutcomeRejected  = "rejected"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route pattern, method and status code.",
	}, []string{"route", "method", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP handler latency by route pattern and method.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	Votes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "votes_total",
		Help:      "Vote attempts by board and outcome.",
	}, []string{"board", "outcome"})

	LiveActivations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "live_activations_total",
		Help:      "Live questions activated.",
	})
)

// Vote records the outcome of one vote attempt
func Vote(board, outcome string) {
	Votes.WithLabelValues(board, outcome).Inc()
}
