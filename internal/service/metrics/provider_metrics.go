package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	ProviderLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "coinsignals",
			Subsystem: "provider",
			Name:      "latency_seconds",
			Help:      "Latency of market data provider calls",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	ProviderErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "coinsignals",
			Subsystem: "provider",
			Name:      "errors_total",
			Help:      "Errors by market data provider endpoint",
		},
		[]string{"endpoint"},
	)

	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "coinsignals",
			Subsystem: "cache",
			Name:      "lookups_total",
			Help:      "Provider cache lookups by endpoint and result",
		},
		[]string{"endpoint", "result"},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(ProviderLatency, ProviderErrors, CacheLookups)
	})
}

// ObserveProvider records one provider call.
func ObserveProvider(endpoint string, start time.Time, err error) {
	ProviderLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		ProviderErrors.WithLabelValues(endpoint).Inc()
	}
}

// ObserveCache records a cache hit or miss.
func ObserveCache(endpoint string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookups.WithLabelValues(endpoint, result).Inc()
}
