package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the map-composition service.
type Metrics struct {
	registry *prometheus.Registry

	CompositionsTotal     prometheus.Counter
	LayersDroppedTotal    prometheus.Counter
	InspectionsTotal      prometheus.Counter
	PointQueryErrorsTotal prometheus.Counter
	ComposeDuration       prometheus.Histogram
}

// New creates and registers the collectors on a private registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	compositionsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geoviewer_compositions_total",
		Help: "Total number of map compositions served",
	})
	layersDroppedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geoviewer_layers_dropped_total",
		Help: "Total number of layers dropped for unsupported types",
	})
	inspectionsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geoviewer_inspections_total",
		Help: "Total number of click inspections handled",
	})
	pointQueryErrorsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "geoviewer_point_query_errors_total",
		Help: "Total number of failed tile-service point queries",
	})
	composeDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "geoviewer_compose_duration_seconds",
		Help:    "Time spent composing map views",
		Buckets: prometheus.DefBuckets,
	})

	registry.MustRegister(
		compositionsTotal,
		layersDroppedTotal,
		inspectionsTotal,
		pointQueryErrorsTotal,
		composeDuration,
	)

	return &Metrics{
		registry:              registry,
		CompositionsTotal:     compositionsTotal,
		LayersDroppedTotal:    layersDroppedTotal,
		InspectionsTotal:      inspectionsTotal,
		PointQueryErrorsTotal: pointQueryErrorsTotal,
		ComposeDuration:       composeDuration,
	}
}

// Handler exposes the registry for scraping.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
