package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the service.
type Metrics struct {
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
	HTTPInFlight     prometheus.Gauge
	UpstreamCalls    *prometheus.CounterVec
	UpstreamDuration *prometheus.HistogramVec
	RecipesCreated   prometheus.Counter
	RecipesDeleted   prometheus.Counter
	RecipesStored    prometheus.Gauge
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		HTTPRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "city_infos_http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "city_infos_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		HTTPInFlight: f.NewGauge(prometheus.GaugeOpts{
			Name: "city_infos_http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		}),
		UpstreamCalls: f.NewCounterVec(prometheus.CounterOpts{
			Name: "city_infos_upstream_calls_total",
			Help: "Total number of calls to the City/Weather API",
		}, []string{"endpoint", "outcome"}),
		UpstreamDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "city_infos_upstream_call_duration_seconds",
			Help:    "City/Weather API call latency in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		RecipesCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "city_infos_recipes_created_total",
			Help: "Total number of recipes created",
		}),
		RecipesDeleted: f.NewCounter(prometheus.CounterOpts{
			Name: "city_infos_recipes_deleted_total",
			Help: "Total number of recipes deleted",
		}),
		RecipesStored: f.NewGauge(prometheus.GaugeOpts{
			Name: "city_infos_recipes_stored",
			Help: "Number of recipes currently held in memory",
		}),
	}
}

// UpstreamCall implements upstream.Recorder.
func (m *Metrics) UpstreamCall(endpoint, outcome string, elapsed time.Duration) {
	m.UpstreamCalls.WithLabelValues(endpoint, outcome).Inc()
	m.UpstreamDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// RecipeCreated records a successful create.
func (m *Metrics) RecipeCreated() {
	m.RecipesCreated.Inc()
	m.RecipesStored.Inc()
}

// RecipeDeleted records a successful delete.
func (m *Metrics) RecipeDeleted() {
	m.RecipesDeleted.Inc()
	m.RecipesStored.Dec()
}
