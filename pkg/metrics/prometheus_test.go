package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewWithRegisterer(reg)

	r.RecordFetchError("fred")
	r.RecordFetchError("fred")
	r.RecordFetchError("news")
	r.RecordReport(-3, 1)
	r.RecordReport(-2, -1)
	r.RecordSinkError("kafka")

	assert.Equal(t, 2.0, testutil.ToFloat64(r.fetchErrors.WithLabelValues("fred")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.fetchErrors.WithLabelValues("news")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.reportsTotal))
	assert.Equal(t, -2.0, testutil.ToFloat64(r.recessionScore))
	assert.Equal(t, -1.0, testutil.ToFloat64(r.liquidityScore))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.sinkErrors.WithLabelValues("kafka")))
}

func TestRecordersOnSeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		NewWithRegisterer(prometheus.NewRegistry())
		NewWithRegisterer(prometheus.NewRegistry())
	})
}
