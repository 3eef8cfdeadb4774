package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MacroPulse/internal/domain/models"
	"MacroPulse/internal/service/ratelimit"
	xhttp "MacroPulse/pkg/http"
	xlogger "MacroPulse/pkg/logger"
)

var genAt = time.Date(2024, 3, 4, 8, 30, 0, 0, time.UTC)

type fakeBriefer struct {
	calls int
}

func (f *fakeBriefer) briefing() *models.Briefing {
	b := &models.Briefing{GeneratedAt: genAt, Latest: map[models.IndicatorKey]float64{models.SOFR: 5.31}}
	b.Recession.Name = "recession_risk"
	b.Recession.Score = -1
	b.Recession.Label = models.RiskUnstable
	b.Recession.Reasons = []string{"curve inverted"}
	b.Liquidity.Name = "liquidity"
	b.Liquidity.Label = models.LabelInsufficientData
	b.RealRate.Name = "real_rate"
	b.RealRate.Label = models.LabelInsufficientData
	b.Cycle.Name = "business_cycle"
	b.Cycle.Label = models.LabelInsufficientData
	return b
}

func (f *fakeBriefer) Generate(context.Context) *models.Briefing {
	f.calls++
	return f.briefing()
}

func (f *fakeBriefer) GenerateReport(context.Context) string {
	f.calls++
	return "[2024/03/04 Market & Macro Briefing]\n"
}

func serve(h xhttp.Handler, target string) *httptest.ResponseRecorder {
	e := echo.New()
	h.RegisterRoutes(e)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.RemoteAddr = "192.0.2.10:5555"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestReportIsPlainText(t *testing.T) {
	h := NewBriefingHandler(xlogger.Nop(), &fakeBriefer{}, nil)

	rec := serve(h, "/report")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMETextPlain))
	assert.Equal(t, "[2024/03/04 Market & Macro Briefing]\n", rec.Body.String())
}

func TestReportRateLimited(t *testing.T) {
	fb := &fakeBriefer{}
	h := NewBriefingHandler(xlogger.Nop(), fb, ratelimit.New(1, 0.001))
	e := echo.New()
	h.RegisterRoutes(e)

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/report", nil)
		req.RemoteAddr = "192.0.2.10:5555"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, do().Code)
	rec := do()
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, 1, fb.calls)
	assert.Contains(t, rec.Body.String(), "ERR_RATE_LIMITED")
}

func TestSignalsJSON(t *testing.T) {
	h := NewBriefingHandler(xlogger.Nop(), &fakeBriefer{}, nil)

	rec := serve(h, "/api/signals")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "unstable", data["recession"].(map[string]interface{})["label"])
	assert.Equal(t, 5.31, data["latest"].(map[string]interface{})["sofr"])
}

func TestSignalsText(t *testing.T) {
	h := NewBriefingHandler(xlogger.Nop(), &fakeBriefer{}, nil)

	rec := serve(h, "/api/signals?format=text")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "[2024/03/04 Market & Macro Briefing]")
	assert.Contains(t, rec.Body.String(), "curve inverted")
}

func TestSignalsShareReportLimit(t *testing.T) {
	fb := &fakeBriefer{}
	h := NewBriefingHandler(xlogger.Nop(), fb, ratelimit.New(1, 0.001))
	e := echo.New()
	h.RegisterRoutes(e)

	for _, target := range []string{"/report", "/api/signals?format=text", "/api/signals"} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req.RemoteAddr = "192.0.2.20:5555"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if target == "/report" {
			assert.Equal(t, http.StatusOK, rec.Code)
			continue
		}
		assert.Equal(t, http.StatusTooManyRequests, rec.Code, target)
	}
	assert.Equal(t, 1, fb.calls)
}

func TestSignalsRejectsUnknownFormat(t *testing.T) {
	fb := &fakeBriefer{}
	h := NewBriefingHandler(xlogger.Nop(), fb, nil)

	rec := serve(h, "/api/signals?format=xml")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "ERR_ONEOF")
	assert.Zero(t, fb.calls)
}

type fakeArchive struct {
	rows  []models.VerdictRecord
	err   error
	name  string
	from  time.Time
	to    time.Time
	limit int
}

func (f *fakeArchive) Init(context.Context) error { return nil }
func (f *fakeArchive) StoreBatch(context.Context, []models.VerdictRecord) error { return nil }
func (f *fakeArchive) Health(context.Context) error { return f.err }
func (f *fakeArchive) Close() error { return nil }

func (f *fakeArchive) Query(_ context.Context, name string, from, to time.Time, limit int) ([]models.VerdictRecord, error) {
	f.name, f.from, f.to, f.limit = name, from, to, limit
	return f.rows, f.err
}

func TestVerdictsDefaults(t *testing.T) {
	arch := &fakeArchive{rows: []models.VerdictRecord{{GeneratedAt: genAt, Name: "liquidity", Label: "neutral", Reasons: []string{}}}}
	h := NewVerdictsHandler(xlogger.Nop(), arch)
	h.now = func() time.Time { return genAt }

	rec := serve(h, "/api/verdicts")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "", arch.name)
	assert.Equal(t, 100, arch.limit)
	assert.Equal(t, genAt.Add(-defaultHistoryWindow), arch.from)
	assert.Equal(t, genAt, arch.to)

	data := decode(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, 1.0, data["total"])
}

func TestVerdictsFilter(t *testing.T) {
	arch := &fakeArchive{}
	h := NewVerdictsHandler(xlogger.Nop(), arch)

	rec := serve(h, "/api/verdicts?name=recession_risk&from=2024-01-01&to=2024-01-31&limit=5")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "recession_risk", arch.name)
	assert.Equal(t, 5, arch.limit)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), arch.from)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond), arch.to)
}

func TestVerdictsWindowEndsAtTo(t *testing.T) {
	arch := &fakeArchive{}
	h := NewVerdictsHandler(xlogger.Nop(), arch)
	h.now = func() time.Time { return time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC) }

	rec := serve(h, "/api/verdicts?to=2026-01-31")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), arch.from)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC).Add(-time.Nanosecond), arch.to)
}

func TestVerdictsInvertedRangeNamesBothBounds(t *testing.T) {
	h := NewVerdictsHandler(xlogger.Nop(), &fakeArchive{})

	rec := serve(h, "/api/verdicts?from=2024-02-01&to=2024-01-01")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "from 2024-02-01T00:00:00Z is after to 2024-01-01T23:59:59Z")
}

func TestVerdictsValidation(t *testing.T) {
	h := NewVerdictsHandler(xlogger.Nop(), &fakeArchive{})

	assert.Equal(t, http.StatusBadRequest, serve(h, "/api/verdicts?name=momentum").Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, "/api/verdicts?limit=5000").Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, "/api/verdicts?from=03/01/2024").Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, "/api/verdicts?from=2024-02-01&to=2024-01-01").Code)
}

func TestVerdictsArchiveDown(t *testing.T) {
	h := NewVerdictsHandler(xlogger.Nop(), &fakeArchive{err: errors.New("connection refused")})

	rec := serve(h, "/api/verdicts")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "ERR_UNAVAILABLE")
}

func TestHealth(t *testing.T) {
	ok := NewHealthHandler(map[string]HealthCheck{
		"clickhouse": func(context.Context) error { return nil },
	})
	rec := serve(ok, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode(t, rec)["data"].(map[string]interface{})["clickhouse"])

	down := NewHealthHandler(map[string]HealthCheck{
		"clickhouse": func(context.Context) error { return nil },
		"redis":      func(context.Context) error { return errors.New("dial tcp: refused") },
	})
	rec = serve(down, "/healthz")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "dial tcp: refused", decode(t, rec)["data"].(map[string]interface{})["redis"])
}

func TestHealthWithoutChecks(t *testing.T) {
	rec := serve(NewHealthHandler(nil), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
}
