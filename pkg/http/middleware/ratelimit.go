package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Allower is a keyed token bucket.
type Allower interface {
	Allow(key string, capacity, refillPerSec float64) bool
}

// RateLimitConfig sets the per-client bucket size and refill rate.
type RateLimitConfig struct {
	Burst        float64
	RefillPerSec float64
	Skip         func(c echo.Context) bool
}

// RateLimit rejects requests with 429 once a client's bucket is empty.
// Clients are keyed by their real IP.
func RateLimit(l Allower, cfg RateLimitConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.Skip != nil && cfg.Skip(c) {
				return next(c)
			}
			if !l.Allow("ip:"+c.RealIP(), cfg.Burst, cfg.RefillPerSec) {
				c.Response().Header().Set("Retry-After", "1")
				return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
					"status":  http.StatusTooManyRequests,
					"message": http.StatusText(http.StatusTooManyRequests),
				})
			}
			return next(c)
		}
	}
}
