package api

import (
	"context"
	"time"

	"MacroPulse/internal/domain/models"
	"MacroPulse/internal/service/metrics"
	"MacroPulse/internal/service/ratelimit"
	"MacroPulse/internal/services/report"
	xhttp "MacroPulse/pkg/http"
	xlogger "MacroPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Briefer produces briefings on demand.
type Briefer interface {
	Generate(ctx context.Context) *models.Briefing
	GenerateReport(ctx context.Context) string
}

// BriefingHandler serves the text report and the JSON signal overview.
type BriefingHandler struct {
	logger  *xlogger.Logger
	briefer Briefer
	rl      *ratelimit.Limiter
}

// NewBriefingHandler creates the handler. A nil limiter disables rate limiting.
func NewBriefingHandler(logger *xlogger.Logger, briefer Briefer, rl *ratelimit.Limiter) *BriefingHandler {
	metrics.Register()
	return &BriefingHandler{logger: logger, briefer: briefer, rl: rl}
}

func (h *BriefingHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/report", h.Report)
	g := e.Group("/api")
	g.GET("/signals", h.Signals)
}

// Report returns the plain-text briefing with status 200 regardless of fired rules.
func (h *BriefingHandler) Report(c echo.Context) error {
	const endpoint = "report"
	start := time.Now()
	defer func() { metrics.APILatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	if !h.allow(c, endpoint) {
		return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("too many report requests"))
	}

	return xhttp.TextResponse(c, h.briefer.GenerateReport(c.Request().Context()))
}

// Signals returns every verdict, the plan and the latest indicator values.
func (h *BriefingHandler) Signals(c echo.Context) error {
	const endpoint = "signals"
	start := time.Now()
	defer func() { metrics.APILatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.SignalsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		metrics.APIRejected.WithLabelValues(endpoint, "invalid").Inc()
		return xhttp.BadRequestResponse(c, verr)
	}

	if !h.allow(c, endpoint) {
		return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("too many signal requests"))
	}

	b := h.briefer.Generate(c.Request().Context())
	if req.Format == "text" {
		return xhttp.TextResponse(c, report.Assemble(report.FromBriefing(b)))
	}
	return xhttp.SuccessResponse(c, b)
}

// allow spends one token of the client's budget, shared by every endpoint that generates a briefing.
func (h *BriefingHandler) allow(c echo.Context, endpoint string) bool {
	if h.rl == nil || h.rl.Allow(c.RealIP()) {
		return true
	}
	metrics.APIRejected.WithLabelValues(endpoint, "rate_limited").Inc()
	h.logger.Warn(endpoint+" rate_limited", xlogger.String("remote", c.RealIP()))
	return false
}
