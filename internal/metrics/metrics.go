package metrics

import (
	"strings"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	eventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conversation_events_total",
			Help: "Inbound events dispatched per state and event kind.",
		},
		[]string{"state", "kind"},
	)

	transitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conversation_transitions_total",
			Help: "State transitions per source and target state.",
		},
		[]string{"from", "to"},
	)

	dispatchErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "conversation_dispatch_errors_total",
			Help: "Dispatch cycles aborted by an error, per state.",
		},
		[]string{"state"},
	)

	transportRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transport_rejections_total",
			Help: "Transport requests rejected by the gateway, per operation.",
		},
		[]string{"operation"},
	)

	ordersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Orders created per receiving and delivery method.",
		},
		[]string{"receiving", "delivery"},
	)

	supportTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "support_applications_total",
			Help: "Support applications per request type.",
		},
		[]string{"request_type"},
	)

	activationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "certificate_activations_total",
			Help: "Certificate activation attempts per outcome.",
		},
		[]string{"outcome"},
	)
)

// MustRegister registers collectors with the default registry (idempotent).
func MustRegister() {
	once.Do(func() {
		prometheus.MustRegister(
			eventsTotal, transitionsTotal, dispatchErrors,
			transportRejections,
			ordersTotal, supportTotal, activationsTotal,
		)
	})
}

func norm(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// -------- Conversation helpers --------

func ObserveEvent(state, kind string) {
	eventsTotal.WithLabelValues(norm(state), norm(kind)).Inc()
}

func ObserveTransition(from, to string) {
	transitionsTotal.WithLabelValues(norm(from), norm(to)).Inc()
}

func IncDispatchError(state string) {
	dispatchErrors.WithLabelValues(norm(state)).Inc()
}

func IncTransportRejection(operation string) {
	transportRejections.WithLabelValues(norm(operation)).Inc()
}

// -------- Store helpers --------

func IncOrder(receiving, delivery string) {
	if delivery == "" {
		delivery = "none"
	}
	ordersTotal.WithLabelValues(norm(receiving), norm(delivery)).Inc()
}

func IncSupportApplication(requestType string) {
	supportTotal.WithLabelValues(norm(requestType)).Inc()
}

func IncActivation(success bool) {
	outcome := "rejected"
	if success {
		outcome = "activated"
	}
	activationsTotal.WithLabelValues(outcome).Inc()
}
