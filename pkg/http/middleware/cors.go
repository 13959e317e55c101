package middleware

import (
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
)

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	AllowOrigins []string
	AllowMethods []string
	AllowHeaders []string
	MaxAge       int // seconds a preflight response may be cached
}

// CORS answers preflight requests and decorates responses for allowed origins.
// Requests from other origins pass through without CORS headers.
func CORS(cfg CORSConfig) echo.MiddlewareFunc {
	wildcard := slices.Contains(cfg.AllowOrigins, "*")
	methods := strings.Join(cfg.AllowMethods, ", ")
	headers := strings.Join(cfg.AllowHeaders, ", ")
	maxAge := ""
	if cfg.MaxAge > 0 {
		maxAge = strconv.Itoa(cfg.MaxAge)
	}

	allowed := func(origin string) bool {
		return len(cfg.AllowOrigins) == 0 || wildcard || slices.Contains(cfg.AllowOrigins, origin)
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			origin := c.Request().Header.Get(echo.HeaderOrigin)
			if !allowed(origin) {
				return next(c)
			}

			h := c.Response().Header()
			h.Add(echo.HeaderVary, echo.HeaderOrigin)
			switch {
			case origin != "":
				h.Set(echo.HeaderAccessControlAllowOrigin, origin)
			case wildcard:
				h.Set(echo.HeaderAccessControlAllowOrigin, "*")
			}
			if methods != "" {
				h.Set(echo.HeaderAccessControlAllowMethods, methods)
			}
			if headers != "" {
				h.Set(echo.HeaderAccessControlAllowHeaders, headers)
			}

			if c.Request().Method != http.MethodOptions {
				return next(c)
			}
			if maxAge != "" {
				h.Set(echo.HeaderAccessControlMaxAge, maxAge)
			}
			return c.NoContent(http.StatusNoContent)
		}
	}
}
