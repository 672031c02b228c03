package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "gps_gateway"

// Backend call outcomes
const (
	OutcomeOK           = "ok"
	OutcomeEmpty        = "empty"
	OutcomeBackendError = "backend_error"
	OutcomeMalformed    = "malformed"
)

// Metrics holds Prometheus metrics for the gateway
type Metrics struct {
	RequestCounter  *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	BackendCalls    *prometheus.CounterVec
	BackendDuration *prometheus.HistogramVec
	BackendUp       prometheus.Gauge

	gatherer prometheus.Gatherer
}

// NewMetrics registers the gateway collectors on reg.
// Pass prometheus.NewRegistry() in tests to avoid duplicate registration on the default registry.
func NewMetrics(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestCounter: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of inbound HTTP requests",
			},
			[]string{"route", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "Inbound HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		BackendCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "backend_calls_total",
				Help:      "Total number of SOAP calls to the card backend by outcome",
			},
			[]string{"operation", "outcome"},
		),
		BackendDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "backend_call_duration_seconds",
				Help:      "SOAP call duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		BackendUp: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "backend_up",
				Help:      "1 if the last backend probe succeeded, 0 otherwise",
			},
		),
		gatherer: reg,
	}
}

// Handler serves the registry in the Prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
