// File: internal/infra/metrics/metrics.go
package metrics

import (
	"strconv"
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	checkoutSessions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_sessions_total",
			Help: "Hosted checkout sessions opened, per gateway.",
		},
		[]string{"gateway"},
	)

	paymentsCompleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_completed_total",
			Help: "Transactions reconciled to COMPLETED, per gateway.",
		},
		[]string{"gateway"},
	)

	ticketsActivated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tickets_activated_total",
			Help: "Tickets provisioned and moved to ACTIVE.",
		},
	)

	ticketsUnprovisioned = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tickets_unprovisioned_total",
			Help: "Paid tickets left PENDING after a provisioning failure.",
		},
	)

	routerOpLatencyMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "router_op_latency_ms",
			Help:    "RouterOS API call latency distribution in milliseconds.",
			Buckets: []float64{10, 25, 50, 100, 200, 400, 800, 1600, 3000, 5000},
		},
		[]string{"op", "success"},
	)

	webhookEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_events_total",
			Help: "Gateway webhook deliveries by outcome (ok/invalid_signature).",
		},
		[]string{"outcome"},
	)
)

// MustRegister registers collectors with the default registry (idempotent).
func MustRegister() {
	once.Do(func() {
		prometheus.MustRegister(
			checkoutSessions, paymentsCompleted,
			ticketsActivated, ticketsUnprovisioned,
			routerOpLatencyMs, webhookEvents,
		)
	})
}

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

func CheckoutSessionStarted(gateway string) {
	checkoutSessions.WithLabelValues(norm(gateway)).Inc()
}

func PaymentCompleted(gateway string) {
	paymentsCompleted.WithLabelValues(norm(gateway)).Inc()
}

func TicketActivated() { ticketsActivated.Inc() }

func TicketLeftUnprovisioned() { ticketsUnprovisioned.Inc() }

func ObserveRouterOp(op string, latencyMs int64, success bool) {
	routerOpLatencyMs.WithLabelValues(norm(op), strconv.FormatBool(success)).
		Observe(float64(latencyMs))
}

func WebhookEvent(outcome string) {
	webhookEvents.WithLabelValues(norm(outcome)).Inc()
}
