package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	fetchErrors    *prometheus.CounterVec
	fetchLatency   *prometheus.HistogramVec
	rulesFired     prometheus.Histogram
	reportsTotal   prometheus.Counter
	recessionScore prometheus.Gauge
	liquidityScore prometheus.Gauge
	sinkErrors     *prometheus.CounterVec
}

// New creates a recorder registered with the default registry.
func New() *Recorder {
	return NewWithRegisterer(prometheus.DefaultRegisterer)
}

// NewWithRegisterer creates a recorder registered with reg.
func NewWithRegisterer(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		fetchErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "macropulse_fetch_errors_total",
				Help: "Total number of failed upstream fetches",
			},
			[]string{"source"},
		),
		fetchLatency: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "macropulse_fetch_duration_seconds",
				Help:    "Duration of upstream fetches in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"source"},
		),
		rulesFired: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "macropulse_recession_rules_fired",
				Help:    "Number of recession rules fired per briefing",
				Buckets: prometheus.LinearBuckets(0, 1, 9),
			},
		),
		reportsTotal: f.NewCounter(
			prometheus.CounterOpts{
				Name: "macropulse_reports_generated_total",
				Help: "Total number of briefings generated",
			},
		),
		recessionScore: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "macropulse_recession_score",
				Help: "Recession risk score of the last briefing",
			},
		),
		liquidityScore: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "macropulse_liquidity_score",
				Help: "Liquidity regime score of the last briefing",
			},
		),
		sinkErrors: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "macropulse_sink_errors_total",
				Help: "Total number of failed briefing sink writes",
			},
			[]string{"sink"},
		),
	}
}

// RecordFetchError counts a failed fetch from source.
func (r *Recorder) RecordFetchError(source string) {
	r.fetchErrors.WithLabelValues(source).Inc()
}

// RecordFetchLatency records fetch latency in seconds.
func (r *Recorder) RecordFetchLatency(source string, seconds float64) {
	r.fetchLatency.WithLabelValues(source).Observe(seconds)
}

// RecordRulesFired records how many recession rules fired.
func (r *Recorder) RecordRulesFired(n int) {
	r.rulesFired.Observe(float64(n))
}

// RecordReport counts a generated briefing and keeps its scores.
func (r *Recorder) RecordReport(recessionScore, liquidityScore float64) {
	r.reportsTotal.Inc()
	r.recessionScore.Set(recessionScore)
	r.liquidityScore.Set(liquidityScore)
}

// RecordSinkError counts a failed sink write.
func (r *Recorder) RecordSinkError(sink string) {
	r.sinkErrors.WithLabelValues(sink).Inc()
}

// Nop discards everything. Used when metrics are disabled and in tests.
type Nop struct{}

func (Nop) RecordFetchError(string)            {}
func (Nop) RecordFetchLatency(string, float64) {}
func (Nop) RecordRulesFired(int)               {}
func (Nop) RecordReport(float64, float64)      {}
func (Nop) RecordSinkError(string)             {}
