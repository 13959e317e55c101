package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "coinsignals"

// Recorder is the Prometheus implementation of repository.Metrics.
type Recorder struct {
	signalsTotal *prometheus.CounterVec
	errorsTotal  *prometheus.CounterVec
	lastPrice    *prometheus.GaugeVec
	latency      *prometheus.HistogramVec
}

// New registers on the default registry and panics on duplicate registration.
func New() *Recorder {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

func NewWithRegisterer(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		signalsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signals_total",
			Help:      "Ranked signals emitted, by type.",
		}, []string{"type"}),
		errorsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "Failures seen by use cases, by source.",
		}, []string{"type"}),
		lastPrice: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_price",
			Help:      "Last price of each signalled pair.",
		}, []string{"symbol"}),
		latency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Use case latency.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20},
		}, []string{"operation"}),
	}
}

func (r *Recorder) RecordSignals(kind string, n int) {
	if n > 0 {
		r.signalsTotal.WithLabelValues(kind).Add(float64(n))
	}
}

func (r *Recorder) RecordError(kind string) { r.errorsTotal.WithLabelValues(kind).Inc() }

func (r *Recorder) RecordLastPrice(symbol string, price float64) {
	r.lastPrice.WithLabelValues(symbol).Set(price)
}

func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}

// Nop discards every measurement.
type Nop struct{}

func (Nop) RecordSignals(string, int)       {}
func (Nop) RecordError(string)              {}
func (Nop) RecordLastPrice(string, float64) {}
func (Nop) RecordLatency(string, float64)   {}
