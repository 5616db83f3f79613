package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "payments"

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status code.",
		},
		[]string{"route", "method", "code"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   []float64{
				0.005, 0.01, 0.02, 0.05, 0.1, 0.2, 0.3, 0.5, 0.8, 1.2, 2, 5,
			},
		},
		[]string{"route", "method"},
	)

	WebhooksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "webhooks_total",
			Help:      "Processed bank webhooks by outcome.",
		},
		[]string{"outcome"},
	)
)

const (
	OutcomeCreated           = "created"
	OutcomeDuplicate         = "duplicate"
	OutcomeInvalid           = "invalid"
	OutcomeUnknownPayer      = "unknown_payer"
	OutcomeDuplicateDocument = "duplicate_document"
	OutcomeBalanceOverflow   = "balance_overflow"
	OutcomeFailed            = "failed"
)

func init() {
	prometheus.MustRegister(HTTPRequestsTotal, HTTPRequestDuration, WebhooksTotal)
}

func IncHTTPRequest(route, method, code string) {
	HTTPRequestsTotal.WithLabelValues(route, method, code).Inc()
}

func ObserveHTTPDuration(route, method string, seconds float64) {
	HTTPRequestDuration.WithLabelValues(route, method).Observe(seconds)
}

func IncWebhook(outcome string) {
	WebhooksTotal.WithLabelValues(outcome).Inc()
}
