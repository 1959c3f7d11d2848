// Package metrics records per-run Prometheus metrics for lifeexp.
//
// Each run owns its own registry. When a metrics file is configured the
// registry is written in the node_exporter textfile collector format.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Stage values for RowsTotal.
const (
	StageMelted       = "melted"
	StageMissingValue = "missing_value"
	StageInvalidYear  = "invalid_year"
	StageOtherRegion  = "other_region"
	StageKept         = "kept"
)

// Recorder holds the metrics of a single run.
type Recorder struct {
	registry *prometheus.Registry

	// RowsTotal counts rows per pipeline stage
	RowsTotal *prometheus.CounterVec

	// RunsTotal counts runs per operation and outcome
	RunsTotal *prometheus.CounterVec

	// RunDuration is the wall time of the last run
	RunDuration *prometheus.GaugeVec

	// LastSuccess is the unix time of the last successful run
	LastSuccess *prometheus.GaugeVec
}

// NewRecorder creates a Recorder backed by a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		RowsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lifeexp_rows_total",
				Help: "Rows seen per pipeline stage",
			},
			[]string{"country", "stage"},
		),
		RunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lifeexp_runs_total",
				Help: "Total number of runs",
			},
			[]string{"operation", "status"},
		),
		RunDuration: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "lifeexp_run_duration_seconds",
				Help: "Duration of the last run in seconds",
			},
			[]string{"operation"},
		),
		LastSuccess: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "lifeexp_last_success_timestamp_seconds",
				Help: "Unix time of the last successful run",
			},
			[]string{"operation"},
		),
	}
}

// Registry returns the per-run registry holding every lifeexp metric.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// ObserveRows adds n rows to the given stage.
func (r *Recorder) ObserveRows(country, stage string, n int) {
	if r == nil || n < 0 {
		return
	}
	r.RowsTotal.WithLabelValues(country, stage).Add(float64(n))
}

// ObserveRun records the outcome of one operation.
func (r *Recorder) ObserveRun(operation string, started, finished time.Time, err error) {
	if r == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	r.RunsTotal.WithLabelValues(operation, status).Inc()
	r.RunDuration.WithLabelValues(operation).Set(finished.Sub(started).Seconds())
	if err == nil {
		r.LastSuccess.WithLabelValues(operation).Set(float64(finished.Unix()))
	}
}

// WriteTextfile writes the registry to path in the textfile collector
// format. The write is atomic.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return nil
}
