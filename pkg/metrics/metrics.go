package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "xpres", Name: "http_requests_total", Help: "Handled HTTP requests by route, method and status."},
		[]string{"route", "method", "status"},
	)
	ExternalFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "xpres", Name: "external_fetch_total", Help: "Outbound proxy fetches by outcome (ok, upstream_error, unreachable)."},
		[]string{"outcome"},
	)
	Received = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "xpres", Name: "received_total", Help: "Payloads persisted by sink (disk, minio, mongo)."},
		[]string{"sink"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "xpres", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "xpres", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(HTTPRequests)
	reg.MustRegister(ExternalFetches)
	reg.MustRegister(Received)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
