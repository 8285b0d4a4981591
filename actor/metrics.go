package actor

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors a Context updates each time it is
// ticked. A nil *Metrics is valid everywhere one is accepted; every
// method on it is a no-op in that case, so instrumentation is opt-in.
type Metrics struct {
	MessagesDispatched *prometheus.CounterVec
	InFlightFutures     prometheus.Gauge
	MailboxDepth        *prometheus.GaugeVec
}

// NewMetrics registers the actor package's collectors against registerer.
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	return &Metrics{
		MessagesDispatched: promauto.With(registerer).NewCounterVec(
			prometheus.CounterOpts{
				Name: "actorcore_messages_dispatched_total",
				Help: "Total number of envelopes dispatched to an actor's Handle.",
			},
			[]string{"message_type"},
		),
		InFlightFutures: promauto.With(registerer).NewGauge(
			prometheus.GaugeOpts{
				Name: "actorcore_inflight_futures",
				Help: "Number of ActorFutures in flight on the most recently ticked context.",
			},
		),
		MailboxDepth: promauto.With(registerer).NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "actorcore_mailbox_depth",
				Help: "Number of envelopes currently queued in a mailbox.",
			},
			[]string{"variant"},
		),
	}
}

func (m *Metrics) dispatched(messageType string) {
	if m == nil {
		return
	}

	m.MessagesDispatched.WithLabelValues(messageType).Inc()
}

func (m *Metrics) setInFlight(n int) {
	if m == nil {
		return
	}

	m.InFlightFutures.Set(float64(n))
}

func (m *Metrics) setMailboxDepth(variant string, depth int) {
	if m == nil {
		return
	}

	m.MailboxDepth.WithLabelValues(variant).Set(float64(depth))
}
