package api

import (
	"time"

	"MacroPulse/internal/domain/models"
	drepo "MacroPulse/internal/domain/repository"
	"MacroPulse/internal/service/metrics"
	xhttp "MacroPulse/pkg/http"
	xlogger "MacroPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

const defaultHistoryWindow = 30 * 24 * time.Hour

// VerdictsHandler exposes archived verdicts.
type VerdictsHandler struct {
	logger  *xlogger.Logger
	archive drepo.Archive
	now     func() time.Time
}

func NewVerdictsHandler(logger *xlogger.Logger, archive drepo.Archive) *VerdictsHandler {
	metrics.Register()
	return &VerdictsHandler{logger: logger, archive: archive, now: time.Now}
}

func (h *VerdictsHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/api/verdicts", h.List)
}

// List returns archived verdicts newest first. The window defaults to the 30 days ending at to (or now).
func (h *VerdictsHandler) List(c echo.Context) error {
	const endpoint = "verdicts"
	start := time.Now()
	defer func() { metrics.APILatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds()) }()

	req := &models.VerdictsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		metrics.APIRejected.WithLabelValues(endpoint, "invalid").Inc()
		return xhttp.BadRequestResponse(c, verr)
	}

	tr := xhttp.ParseTimeRange(req.From, req.To, h.now(), defaultHistoryWindow)
	if req.To != "" {
		// inclusive end of day
		tr.To = tr.To.Add(24*time.Hour - time.Nanosecond)
	}
	if tr.From.After(tr.To) {
		return xhttp.AppErrorResponse(c, xhttp.BadRequestErrorf("from %s is after to %s", tr.From.Format(time.RFC3339), tr.To.Format(time.RFC3339)))
	}

	rows, err := h.archive.Query(c.Request().Context(), req.Name, tr.From, tr.To, req.Limit)
	if err != nil {
		h.logger.Error("verdicts query failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.ServiceUnavailableError("archive unavailable").WithError(err))
	}
	return xhttp.ListResponse(c, rows, int64(len(rows)))
}
