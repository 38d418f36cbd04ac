package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder receives one observation per pipeline operation.
type Recorder interface {
	ObserveOperation(operation string, elapsed time.Duration, err error)
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// PrometheusRecorder exports operation counts and latencies.
type PrometheusRecorder struct {
	operationsTotal   *prometheus.CounterVec
	operationDuration *prometheus.HistogramVec
}

// NewPrometheusRecorder registers its collectors on reg. Registering twice
// on the same registry panics, as with any promauto collector.
func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	factory := promauto.With(reg)

	return &PrometheusRecorder{
		operationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "image_enhancer_operations_total",
				Help: "Total number of pipeline operations",
			},
			[]string{"operation", "status"},
		),
		operationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "image_enhancer_operation_duration_seconds",
				Help:    "Pipeline operation duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
			},
			[]string{"operation"},
		),
	}
}

func (r *PrometheusRecorder) ObserveOperation(operation string, elapsed time.Duration, err error) {
	status := StatusSuccess
	if err != nil {
		status = StatusError
	}

	r.operationsTotal.WithLabelValues(operation, status).Inc()
	r.operationDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

// WriteTextfile dumps everything gathered by g in the node_exporter textfile format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}

type nopRecorder struct{}

func (nopRecorder) ObserveOperation(string, time.Duration, error) {}

// Nop discards every observation.
func Nop() Recorder {
	return nopRecorder{}
}
