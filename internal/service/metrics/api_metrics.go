package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	APILatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "macropulse",
			Subsystem: "api",
			Name:      "latency_seconds",
			Help:      "Latency of briefing endpoints",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	APIRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "macropulse",
			Subsystem: "api",
			Name:      "rejected_total",
			Help:      "Requests rejected by endpoint and reason",
		},
		[]string{"endpoint", "reason"},
	)
)

func Register() {
	once.Do(func() {
		prometheus.MustRegister(APILatency, APIRejected)
	})
}
