package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"sync"
	"time"

	applogger "MacroPulse/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

type httpMetrics struct {
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	inFlight prometheus.Gauge
}

var (
	sharedMetrics *httpMetrics
	metricsOnce   sync.Once
)

func registerHTTPMetrics() *httpMetrics {
	metricsOnce.Do(func() {
		m := &httpMetrics{
			requests: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "macropulse",
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Requests served, by route template and status code.",
			}, []string{"route", "method", "status"}),
			latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: "macropulse",
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Request latency. Report generation waits on upstream providers.",
				Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			}, []string{"route", "method", "class"}),
			inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: "macropulse",
				Subsystem: "http",
				Name:      "in_flight_requests",
				Help:      "Requests currently being served.",
			}),
		}
		prometheus.MustRegister(m.requests, m.latency, m.inFlight)
		sharedMetrics = m
	})
	return sharedMetrics
}

// Metrics records request metrics labelled by the echo route template.
// Requests slower than slowThreshold are logged as warnings.
func Metrics(l *applogger.Logger, slowThreshold time.Duration) echo.MiddlewareFunc {
	m := registerHTTPMetrics()

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			m.inFlight.Inc()
			defer m.inFlight.Dec()

			start := time.Now()
			err := next(c)
			elapsed := time.Since(start)

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method
			code := responseStatus(c, err)

			m.requests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
			m.latency.WithLabelValues(route, method, strconv.Itoa(code/100)+"xx").Observe(elapsed.Seconds())

			if l != nil && slowThreshold > 0 && elapsed >= slowThreshold {
				l.Warn("http request slow",
					applogger.String("route", route),
					applogger.String("method", method),
					applogger.Int("status", code),
					applogger.Duration("duration_ms", elapsed),
				)
			}
			return err
		}
	}
}

// responseStatus resolves the code an unhandled error will be written with.
func responseStatus(c echo.Context, err error) int {
	if err == nil || c.Response().Committed {
		return c.Response().Status
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}
