package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds the Prometheus metrics for one acquisition cycle.
// The process is short-lived, so metrics are exported as a textfile
// for the node_exporter textfile collector instead of being served.
type Registry struct {
	*prometheus.Registry

	fetchTotal    *prometheus.CounterVec
	marketsFailed prometheus.Gauge
	quotesTotal   prometheus.Gauge
	cycleDuration prometheus.Histogram
}

// NewRegistry creates a registry with all cycle metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		Registry: reg,

		fetchTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "goldpulse_fetch_total",
				Help: "Market fetch attempts by outcome",
			},
			[]string{"market", "outcome"},
		),

		marketsFailed: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "goldpulse_markets_failed",
				Help: "Markets that produced no quote this cycle",
			},
		),

		quotesTotal: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "goldpulse_quotes_total",
				Help: "Raw quotes acquired this cycle",
			},
		),

		cycleDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "goldpulse_cycle_duration_seconds",
				Help:    "Acquisition cycle duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.5, 2, 8),
			},
		),
	}

	reg.MustRegister(r.fetchTotal, r.marketsFailed, r.quotesTotal, r.cycleDuration)
	return r
}

// RecordFetch counts one market fetch attempt.
func (r *Registry) RecordFetch(market string, ok bool) {
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	r.fetchTotal.WithLabelValues(market, outcome).Inc()
}

// RecordCycle records aggregate cycle results.
func (r *Registry) RecordCycle(quotes, failedMarkets int, seconds float64) {
	r.quotesTotal.Set(float64(quotes))
	r.marketsFailed.Set(float64(failedMarkets))
	r.cycleDuration.Observe(seconds)
}

// WriteTextfile exports all metrics to path in the Prometheus text
// format. Path empty means metrics are disabled.
func (r *Registry) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.Registry)
}
