// Package metrics exposes the Prometheus collectors of the storefront.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	checkoutsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "javamaster",
		Name:      "checkouts_started_total",
		Help:      "Checkout attempts that requested a gateway order.",
	})

	checkoutsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "javamaster",
		Name:      "checkouts_completed_total",
		Help:      "Checkout attempts that recorded an order.",
	})

	checkoutsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "javamaster",
		Name:      "checkouts_failed_total",
		Help:      "Checkout attempts that ended in Failed, by reason.",
	}, []string{"reason"})

	gatewayLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "javamaster",
		Name:      "gateway_request_duration_seconds",
		Help:      "Latency of payment gateway calls.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation", "outcome"})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "javamaster",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route and status.",
	}, []string{"method", "route", "status"})
)

// CheckoutStarted counts a new checkout attempt
func CheckoutStarted() { checkoutsStarted.Inc() }

// CheckoutCompleted counts a recorded order
func CheckoutCompleted() { checkoutsCompleted.Inc() }

// CheckoutFailed counts a failed attempt under reason
func CheckoutFailed(reason string) { checkoutsFailed.WithLabelValues(reason).Inc() }

// ObserveGatewayCall records the duration of a gateway call
func ObserveGatewayCall(operation, outcome string, elapsed time.Duration) {
	gatewayLatency.WithLabelValues(operation, outcome).Observe(elapsed.Seconds())
}

// ObserveRequest counts one served HTTP request
func ObserveRequest(method, route, status string) {
	httpRequests.WithLabelValues(method, route, status).Inc()
}

// Handler serves the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}
