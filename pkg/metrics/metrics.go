package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "invirogens", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "invirogens", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
	// ContactSubmissions counts POST /api/contact outcomes: stored, invalid.
	ContactSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "invirogens", Name: "contact_submissions_total", Help: "Number of contact form submissions by outcome."},
		[]string{"outcome"},
	)
	RelayDeliveries = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "invirogens", Name: "relay_deliveries_total", Help: "Number of inquiry relay attempts by channel and outcome."},
		[]string{"channel", "outcome"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(ContactSubmissions)
	reg.MustRegister(RelayDeliveries)
}
