// Package metrics exposes Prometheus instruments of the item pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Drop reasons for modifiers that do not make it into the resolved list.
const (
	DropNoAffix     = "no_affix"
	DropCorruptTier = "corrupt_tier"
)

// Metrics groups the pipeline instruments. A nil *Metrics is valid and
// records nothing.
type Metrics struct {
	gatherer prometheus.Gatherer

	ItemsProcessed   *prometheus.CounterVec
	ModsResolved     prometheus.Counter
	ModsDropped      *prometheus.CounterVec
	ProcessDuration  prometheus.Histogram
	ReferenceFinding *prometheus.CounterVec
}

// New registers the instruments on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		gatherer: reg,
		ItemsProcessed: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "craftassist_items_processed_total",
				Help: "Total number of items processed, by status",
			},
			[]string{"status"},
		),
		ModsResolved: f.NewCounter(
			prometheus.CounterOpts{
				Name: "craftassist_mods_resolved_total",
				Help: "Total number of raw modifiers resolved to an affix tier",
			},
		),
		ModsDropped: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "craftassist_mods_dropped_total",
				Help: "Total number of raw modifiers dropped during resolution",
			},
			[]string{"reason"},
		),
		ProcessDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "craftassist_item_process_duration_seconds",
				Help:    "Duration of item processing in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
		),
		ReferenceFinding: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "craftassist_reference_findings_total",
				Help: "Consistency findings in the loaded reference data, by kind",
			},
			[]string{"kind"},
		),
	}
}

// ObserveItem records one processed item.
func (m *Metrics) ObserveItem(status string, d time.Duration) {
	if m == nil {
		return
	}
	m.ItemsProcessed.WithLabelValues(status).Inc()
	m.ProcessDuration.Observe(d.Seconds())
}

// ModResolved records a resolved modifier.
func (m *Metrics) ModResolved() {
	if m == nil {
		return
	}
	m.ModsResolved.Inc()
}

// ModDropped records a dropped modifier.
func (m *Metrics) ModDropped(reason string) {
	if m == nil {
		return
	}
	m.ModsDropped.WithLabelValues(reason).Inc()
}

// Finding records a reference data finding.
func (m *Metrics) Finding(kind string) {
	if m == nil {
		return
	}
	m.ReferenceFinding.WithLabelValues(kind).Inc()
}

// Handler serves the registry in Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
