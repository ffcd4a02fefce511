package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "quakemap"

// Metrics holds the Prometheus counters, histograms, and gauges for render passes.
type Metrics struct {
	RenderPasses     prometheus.Counter
	RenderDuration   prometheus.Histogram
	LastRenderTime   prometheus.Gauge
	FeaturesRendered *prometheus.CounterVec // labels: layer={earthquakes,plates}
	FeaturesSkipped  *prometheus.CounterVec // labels: layer={earthquakes,plates}

	// Feed fetch metrics.
	FetchErrors   *prometheus.CounterVec   // labels: source={earthquakes,plates}
	FetchDuration *prometheus.HistogramVec // labels: source={earthquakes,plates}

	// Diagnostics and sink.
	Lookups          *prometheus.CounterVec // labels: outcome={found,not_found,malformed,error}
	MarkersPublished prometheus.Counter
	PublishErrors    prometheus.Counter
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RenderPasses,
		m.RenderDuration,
		m.LastRenderTime,
		m.FeaturesRendered,
		m.FeaturesSkipped,
		m.FetchErrors,
		m.FetchDuration,
		m.Lookups,
		m.MarkersPublished,
		m.PublishErrors,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics so tests can build as
// many as they like without "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RenderPasses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "render_passes_total",
			Help:      "Completed render passes.",
		}),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Duration of a complete fetch-style-compose render pass.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		LastRenderTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_render_timestamp_seconds",
			Help:      "Unix time of the most recent completed render pass.",
		}),
		FeaturesRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "features_rendered_total",
			Help:      "Features placed on an overlay, by layer.",
		}, []string{"layer"}),
		FeaturesSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "features_skipped_total",
			Help:      "Malformed features left off an overlay, by layer.",
		}, []string{"layer"}),
		FetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_errors_total",
			Help:      "Feed fetch failures by source.",
		}, []string{"source"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Feed fetch duration in seconds by source.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"source"}),
		Lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lookups_total",
			Help:      "Earthquake lookups by outcome.",
		}, []string{"outcome"}),
		MarkersPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "markers_published_total",
			Help:      "Styled markers written to the Kafka sink.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_errors_total",
			Help:      "Failed marker publications to the Kafka sink.",
		}),
	}
}
