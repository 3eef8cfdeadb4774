package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"MacroPulse/internal/domain/models"
	xhttp "MacroPulse/pkg/http"
	"MacroPulse/pkg/logger"
	"MacroPulse/pkg/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chart(open, close string) string {
	return `{"chart":{"result":[{"indicators":{"quote":[{"open":[` + open + `],"close":[` + close + `]}]}}],"error":null}}`
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(xhttp.NewClient("yahoo", xhttp.WithRetry(0, 0), xhttp.WithBreaker(100, 0)), srv.URL, "1d", logger.Nop(), metrics.Nop{})
}

func TestQuoteComputesChangeFromOpen(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/^GSPC", r.URL.Path)
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		_, _ = w.Write([]byte(chart("100", "102.5")))
	})

	q, err := c.Quote(context.Background(), "^GSPC")
	require.NoError(t, err)
	assert.Equal(t, 102.5, q.Close)
	assert.InDelta(t, 2.5, q.ChangePct, 1e-9)
}

func TestQuoteSkipsNullTrailingBars(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(chart("50, null", "49, null")))
	})

	q, err := c.Quote(context.Background(), "^VIX")
	require.NoError(t, err)
	assert.Equal(t, 49.0, q.Close)
	assert.InDelta(t, -2.0, q.ChangePct, 1e-9)
}

func TestQuoteWithoutSessionData(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(chart("", "")))
	})
	_, err := c.Quote(context.Background(), "^N225")
	assert.Error(t, err)
}

func TestFetchSnapshotOmitsFailedInstruments(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "^VIX") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(chart("10", "11")))
	})

	snap := c.FetchSnapshot(context.Background())
	assert.Len(t, snap, len(models.Instruments)-1)

	_, ok := snap.Lookup(models.InstrumentVIX)
	assert.False(t, ok)

	q, ok := snap.Lookup(models.InstrumentSP500)
	require.True(t, ok)
	assert.InDelta(t, 10.0, q.ChangePct, 1e-9)
}
