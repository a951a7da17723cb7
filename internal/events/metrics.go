package events

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the dispatcher's prometheus collectors. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	emitted   *prometheus.CounterVec
	delivered *prometheus.CounterVec
	panics    *prometheus.CounterVec
	listeners *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// leaves them unregistered, which is useful in tests. Collectors already
// registered with reg are reused.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		emitted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "walletd",
				Subsystem: "events",
				Name:      "emitted_total",
				Help:      "Total number of emitted events",
			},
			[]string{"category"},
		),
		delivered: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "walletd",
				Subsystem: "events",
				Name:      "delivered_total",
				Help:      "Total number of listener invocations that returned normally",
			},
			[]string{"category"},
		),
		panics: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "walletd",
				Subsystem: "events",
				Name:      "listener_panics_total",
				Help:      "Total number of listener invocations that panicked",
			},
			[]string{"category"},
		),
		listeners: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "walletd",
				Subsystem: "events",
				Name:      "listeners",
				Help:      "Active listeners per category",
			},
			[]string{"category"},
		),
	}
	if reg != nil {
		m.emitted = register(reg, m.emitted)
		m.delivered = register(reg, m.delivered)
		m.panics = register(reg, m.panics)
		m.listeners = register(reg, m.listeners)
	}
	return m
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) C {
	err := reg.Register(c)
	if err == nil {
		return c
	}
	var are prometheus.AlreadyRegisteredError
	if errors.As(err, &are) {
		if existing, ok := are.ExistingCollector.(C); ok {
			return existing
		}
	}
	panic(err)
}

func (m *Metrics) observeEmit(cat Category) {
	if m == nil {
		return
	}
	m.emitted.WithLabelValues(MetricLabel(cat)).Inc()
}

func (m *Metrics) observeDelivery(cat Category, panicked bool) {
	if m == nil {
		return
	}
	if panicked {
		m.panics.WithLabelValues(MetricLabel(cat)).Inc()
		return
	}
	m.delivered.WithLabelValues(MetricLabel(cat)).Inc()
}

// addListeners adjusts the listener gauge by delta. Deltas rather than
// absolute counts keep the folded "other" series a sum over its categories.
func (m *Metrics) addListeners(cat Category, delta int) {
	if m == nil || delta == 0 {
		return
	}
	m.listeners.WithLabelValues(MetricLabel(cat)).Add(float64(delta))
}
