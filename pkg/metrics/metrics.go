// Package metrics exposes prometheus instruments for the relay.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"cta-relay/pkg/models"
)

// Metrics holds the relay instruments. A nil *Metrics records nothing.
type Metrics struct {
	outcomes       *prometheus.CounterVec
	intakeDuration prometheus.Histogram
}

// New creates the instruments and registers them with reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cta",
			Subsystem: "relay",
			Name:      "outcomes_total",
			Help:      "Relay requests by outcome.",
		}, []string{"outcome"}),
		intakeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "cta",
			Subsystem: "intake",
			Name:      "request_duration_seconds",
			Help:      "Duration of calls to the intake service that got a response.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
	}
	reg.MustRegister(m.outcomes, m.intakeDuration)
	return m
}

// ObserveOutcome counts one finished relay request
func (m *Metrics) ObserveOutcome(kind models.Kind) {
	if m == nil {
		return
	}
	m.outcomes.WithLabelValues(kind.String()).Inc()
}

// ObserveIntake records the duration of one intake call
func (m *Metrics) ObserveIntake(d time.Duration) {
	if m == nil {
		return
	}
	m.intakeDuration.Observe(d.Seconds())
}
