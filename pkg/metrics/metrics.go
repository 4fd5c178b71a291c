package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "boosterbot"

// Metrics holds the bot's collectors on a private registry. A nil *Metrics
// is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	// CommandTotal counts handled commands by command and result
	CommandTotal *prometheus.CounterVec
	// CommandDuration observes command latency, store I/O included
	CommandDuration *prometheus.HistogramVec
	// DrawTotal counts successful draws by tier and variant
	DrawTotal *prometheus.CounterVec
	// StorageFailures counts failed store loads and saves
	StorageFailures *prometheus.CounterVec
	// CatalogCards is the number of cards loaded, 0 in degraded mode
	CatalogCards prometheus.Gauge
}

// New creates the collectors and registers them, together with the Go and
// process collectors, on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		CommandTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "commands_total",
				Help:      "Commands handled, by command and result",
			},
			[]string{"command", "result"},
		),
		CommandDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "command_duration_seconds",
				Help:      "Command handling latency in seconds",
				Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1},
			},
			[]string{"command"},
		),
		DrawTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "draws_total",
				Help:      "Successful booster draws, by tier and variant",
			},
			[]string{"tier", "variant"},
		),
		StorageFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "storage_failures_total",
				Help:      "Failed player store operations",
			},
			[]string{"op"},
		),
		CatalogCards: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "catalog_cards",
				Help:      "Number of cards in the loaded catalog",
			},
		),
	}

	m.registry.MustRegister(
		m.CommandTotal,
		m.CommandDuration,
		m.DrawTotal,
		m.StorageFailures,
		m.CatalogCards,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		Registry: m.registry,
	})
}

// ObserveCommand records one handled command
func (m *Metrics) ObserveCommand(command, result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.CommandTotal.WithLabelValues(command, result).Inc()
	m.CommandDuration.WithLabelValues(command).Observe(elapsed.Seconds())
}

// ObserveDraw records one successful draw
func (m *Metrics) ObserveDraw(tier, variant string) {
	if m == nil {
		return
	}
	m.DrawTotal.WithLabelValues(tier, variant).Inc()
}

// ObserveStorageFailure records a failed load or save
func (m *Metrics) ObserveStorageFailure(op string) {
	if m == nil {
		return
	}
	m.StorageFailures.WithLabelValues(op).Inc()
}

// SetCatalogCards records the catalog size
func (m *Metrics) SetCatalogCards(n int) {
	if m == nil {
		return
	}
	m.CatalogCards.Set(float64(n))
}
