package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los contadores del pipeline de ingesta. Se construye una
// vez y se inyecta; no hay registro global.
type Metrics struct {
	registry *prometheus.Registry

	eventsProcessed *prometheus.CounterVec
	eventsFailed    *prometheus.CounterVec
	batchesTotal    prometheus.Counter
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		eventsProcessed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "park_events_processed_total",
				Help: "Events applied successfully, by kind",
			},
			[]string{"kind"},
		),
		eventsFailed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "park_events_failed_total",
				Help: "Events that failed to apply, by kind",
			},
			[]string{"kind"},
		),
		batchesTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "park_sync_batches_total",
				Help: "Completed fetch-and-reconcile runs",
			},
		),
	}

	registry.MustRegister(m.eventsProcessed, m.eventsFailed, m.batchesTotal)
	return m
}

func (m *Metrics) EventProcessed(kind string) {
	if m == nil {
		return
	}
	m.eventsProcessed.WithLabelValues(kind).Inc()
}

func (m *Metrics) EventFailed(kind string) {
	if m == nil {
		return
	}
	m.eventsFailed.WithLabelValues(kind).Inc()
}

func (m *Metrics) BatchCompleted() {
	if m == nil {
		return
	}
	m.batchesTotal.Inc()
}

// Handler expone el registro en formato prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
