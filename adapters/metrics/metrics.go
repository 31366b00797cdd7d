// Package metrics provides Prometheus metrics collection for identifier
// generation and validation.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "taxid"

// Collector holds all Prometheus metrics.
type Collector struct {
	// Generation metrics
	Generated       *prometheus.CounterVec
	Collisions      *prometheus.CounterVec
	PartitionMisses *prometheus.CounterVec
	WorkersActive   prometheus.Gauge

	// Output metrics
	Written     prometheus.Counter
	WriteErrors prometheus.Counter
	QueueDepth  prometheus.Gauge

	// Run metrics
	Runs        *prometheus.CounterVec
	RunDuration *prometheus.HistogramVec

	// Validation metrics
	Validations *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// NewWithRegistry creates a new metrics collector with a custom registry.
// Useful for testing to avoid global state.
func NewWithRegistry(reg *prometheus.Registry) *Collector {
	return newCollector(promauto.With(reg), reg)
}

func newCollector(factory promauto.Factory, gatherer prometheus.Gatherer) *Collector {
	return &Collector{
		Generated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "generated_total",
				Help:      "Total number of random identifiers drawn by generator workers",
			},
			[]string{"worker"},
		),
		Collisions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "collisions_total",
				Help:      "Total number of drawn identifiers discarded as duplicates",
			},
			[]string{"worker"},
		),
		PartitionMisses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "partition_misses_total",
				Help:      "Total number of drawn identifiers outside the worker's partition",
			},
			[]string{"worker"},
		),
		WorkersActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "workers_active",
				Help:      "Number of generator workers currently running",
			},
		),

		Written: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "written_total",
				Help:      "Total number of identifiers written to the sink",
			},
		),
		WriteErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "write_errors_total",
				Help:      "Total number of sink write or flush failures",
			},
		),
		QueueDepth: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "queue_depth",
				Help:      "Identifiers waiting in the writer channel",
			},
		),

		Runs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Total number of generation runs by mode and outcome",
			},
			[]string{"mode", "status"},
		),
		RunDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "run_duration_seconds",
				Help:      "Generation run duration in seconds",
				Buckets:   []float64{.01, .05, .1, .5, 1, 5, 10, 30, 60, 300, 900},
			},
			[]string{"mode"},
		),

		Validations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validations_total",
				Help:      "Total number of validated identifiers by result",
			},
			[]string{"result"},
		),

		gatherer: gatherer,
	}
}

// WriteTextfile writes all gathered metrics to path in the Prometheus text
// exposition format, for the node exporter textfile collector.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.gatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
