package middleware

import (
	"time"

	applogger "CoinSignals/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RequestLogging writes one line per request. Handler errors are rendered here
// so the logged status is the one the client saw.
func RequestLogging(l *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}

			req, res := c.Request(), c.Response()
			l.Info("http request",
				applogger.String("request_id", GetRequestID(c)),
				applogger.String("method", req.Method),
				applogger.String("uri", req.RequestURI),
				applogger.String("remote", c.RealIP()),
				applogger.Int("status", res.Status),
				applogger.Duration("latency_ms", time.Since(start)),
			)
			return nil
		}
	}
}
