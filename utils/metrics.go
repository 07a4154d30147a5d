package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
)

// RunMetrics collects per-run counters on a private registry so a batch run
// can dump them as a Prometheus textfile when it finishes.
type RunMetrics struct {
	registry *prometheus.Registry

	RecordsRead      prometheus.Counter
	RecordsMalformed prometheus.Counter
	RecordsValid     prometheus.Counter
	RecordsInvalid   *prometheus.CounterVec
	CatalogLookups   *prometheus.CounterVec
	TotalSales       prometheus.Gauge
}

// NewRunMetrics registers the run metrics on a fresh registry.
func NewRunMetrics() *RunMetrics {
	m := &RunMetrics{
		registry: prometheus.NewRegistry(),
		RecordsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sales_analytics",
			Name:      "records_read_total",
			Help:      "Data lines read from the input file, header excluded.",
		}),
		RecordsMalformed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sales_analytics",
			Name:      "records_malformed_total",
			Help:      "Lines dropped by the parser for a wrong field count.",
		}),
		RecordsValid: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sales_analytics",
			Name:      "records_valid_total",
			Help:      "Records that passed validation.",
		}),
		RecordsInvalid: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sales_analytics",
			Name:      "records_invalid_total",
			Help:      "Records rejected by validation, by failing rule.",
		}, []string{"rule"}),
		CatalogLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sales_analytics",
			Name:      "catalog_lookups_total",
			Help:      "Product catalog lookups, by outcome.",
		}, []string{"outcome"}),
		TotalSales: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sales_analytics",
			Name:      "total_sales",
			Help:      "Total sales over valid records.",
		}),
	}

	m.registry.MustRegister(
		m.RecordsRead,
		m.RecordsMalformed,
		m.RecordsValid,
		m.RecordsInvalid,
		m.CatalogLookups,
		m.TotalSales,
	)
	return m
}

// WriteTextfile writes the metrics in the Prometheus text format to path.
func (m *RunMetrics) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("metrics: create output dir: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("metrics: write %q: %w", path, err)
	}
	return nil
}
