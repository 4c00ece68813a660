// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder is the collection interface used by HTTP middleware and the
// purchase service.
type Recorder interface {
	RecordRequest(method, route string, status int, duration time.Duration)
	RecordPurchase(outcome string)
	RecordLoginFailure()
}

// Purchase outcome labels.
const (
	PurchaseOK           = "ok"
	PurchaseBuyLimit     = "buy_limit"
	PurchaseWallet       = "insufficient_wallet"
	PurchaseOutOfStock   = "out_of_stock"
	PurchaseBadReferents = "bad_referents"
	PurchaseError        = "error"
)

// Collector implements Recorder on top of a Prometheus registry.
type Collector struct {
	requests   *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	purchases  *prometheus.CounterVec
	loginFails prometheus.Counter
}

// NewCollector creates a Collector and registers its metrics.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clubhouse_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "clubhouse_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		purchases: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "clubhouse_purchases_total",
			Help: "Purchase attempts by outcome.",
		}, []string{"outcome"}),
		loginFails: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "clubhouse_login_failures_total",
			Help: "Failed login attempts.",
		}),
	}

	reg.MustRegister(
		c.requests,
		c.latency,
		c.purchases,
		c.loginFails,
	)

	return c
}

// RecordRequest records one served HTTP request.
func (c *Collector) RecordRequest(method, route string, status int, duration time.Duration) {
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.latency.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordPurchase records a purchase attempt outcome.
func (c *Collector) RecordPurchase(outcome string) {
	c.purchases.WithLabelValues(outcome).Inc()
}

// RecordLoginFailure records a rejected login.
func (c *Collector) RecordLoginFailure() {
	c.loginFails.Inc()
}

// Handler returns the HTTP handler for Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
