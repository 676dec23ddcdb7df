package observability

import (
	"errors"

	cap2geojson "github.com/World-Meteorological-Organization/cap2geojson"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// conversion service.
type Metrics struct {
	// Conversion metrics, shared by the HTTP API and the pipeline.
	ConversionsTotal   prometheus.Counter
	ConversionErrors   *prometheus.CounterVec // label: stage={malformed_xml,structure,geometry,other}
	ConversionDuration prometheus.Histogram

	// Pipeline metrics.
	DocumentsConsumed prometheus.Counter
	FeaturesProduced  prometheus.Counter
	PipelineRunning   prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		ConversionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cap2geojson",
			Name:      "conversions_total",
			Help:      "Total successful CAP to GeoJSON conversions.",
		}),
		ConversionErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cap2geojson",
			Name:      "conversion_errors_total",
			Help:      "Total conversion failures by failure stage.",
		}, []string{"stage"}),
		ConversionDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "cap2geojson",
			Name:      "conversion_duration_seconds",
			Help:      "Duration of a single CAP to GeoJSON conversion.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		DocumentsConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cap2geojson",
			Name:      "documents_consumed_total",
			Help:      "Total CAP documents read from the source topic.",
		}),
		FeaturesProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cap2geojson",
			Name:      "features_produced_total",
			Help:      "Total GeoJSON feature collections written to the sink topic.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "cap2geojson",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "cap2geojson",
			Name:      "batch_size",
			Help:      "Number of documents per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "cap2geojson",
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-transform-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
	}

	prometheus.MustRegister(
		m.ConversionsTotal,
		m.ConversionErrors,
		m.ConversionDuration,
		m.DocumentsConsumed,
		m.FeaturesProduced,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics with unregistered collectors to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		ConversionsTotal:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "cap2geojson", Name: "conversions_total"}),
		ConversionErrors:        prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "cap2geojson", Name: "conversion_errors_total"}, []string{"stage"}),
		ConversionDuration:      prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "cap2geojson", Name: "conversion_duration_seconds"}),
		DocumentsConsumed:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "cap2geojson", Name: "documents_consumed_total"}),
		FeaturesProduced:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "cap2geojson", Name: "features_produced_total"}),
		PipelineRunning:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "cap2geojson", Name: "pipeline_running"}),
		BatchSize:               prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "cap2geojson", Name: "batch_size"}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "cap2geojson", Name: "batch_processing_duration_seconds"}),
	}
}

// ConversionStage maps a conversion error to its metric stage label.
func ConversionStage(err error) string {
	switch {
	case errors.Is(err, cap2geojson.ErrMalformedXML):
		return "malformed_xml"
	case errors.Is(err, cap2geojson.ErrMissingElement):
		return "structure"
	case errors.Is(err, cap2geojson.ErrBadGeometry):
		return "geometry"
	default:
		return "other"
	}
}
