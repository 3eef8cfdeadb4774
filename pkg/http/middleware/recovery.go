package middleware

import (
	"MacroPulse/pkg/logger"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Recover turns handler panics into 500s and logs them with the stack.
func Recover(log *logger.Logger) echo.MiddlewareFunc {
	return echomw.RecoverWithConfig(echomw.RecoverConfig{
		StackSize: 8 << 10,
		LogErrorFunc: func(c echo.Context, err error, stack []byte) error {
			log.Error("panic recovered",
				logger.Error(err),
				logger.String("path", c.Path()),
				logger.String("stack", string(stack)),
			)
			return err
		},
	})
}
