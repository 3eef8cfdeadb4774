package middleware

import (
	"time"

	"MacroPulse/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RequestLogging logs every request at debug level and failures at warn.
func RequestLogging(log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			fields := []logger.Field{
				logger.String("method", req.Method),
				logger.String("uri", req.RequestURI),
				logger.String("remote", c.RealIP()),
				logger.Int("status", c.Response().Status),
				logger.Duration("duration_ms", time.Since(start)),
			}
			if err != nil || c.Response().Status >= 400 {
				if err != nil {
					fields = append(fields, logger.Error(err))
				}
				log.Warn("http request", fields...)
				return nil
			}
			log.Debug("http request", fields...)
			return nil
		}
	}
}
