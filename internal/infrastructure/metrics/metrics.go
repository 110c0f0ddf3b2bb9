// Package metrics registers the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CheckoutTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rivalioo_checkout_total",
		Help: "Checkout attempts by outcome.",
	}, []string{"outcome"})

	RedemptionOrdersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rivalioo_redemption_orders_total",
		Help: "Redemption order create calls by result.",
	}, []string{"result"})

	UnsubmittedProductsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rivalioo_unsubmitted_products_total",
		Help: "Product lines accepted at checkout with no order path.",
	})

	StatsPollTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rivalioo_stats_poll_total",
		Help: "Stream stats refresh cycles by job and result.",
	}, []string{"job", "result"})

	LiveStreams = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "rivalioo_live_streams",
		Help: "Live broadcasts found in the last discovery cycle.",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "rivalioo_http_request_duration_seconds",
		Help:    "HTTP request latency by route and status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
	ResultStale   = "stale"

	// Checkout rejected before any order call.
	ResultRejected = "rejected"
)
