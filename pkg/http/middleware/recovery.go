package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"

	applogger "CoinSignals/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Recover turns a handler panic into a logged 500. http.ErrAbortHandler is
// re-raised so net/http can drop the connection.
func Recover(l *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if e, ok := r.(error); ok && errors.Is(e, http.ErrAbortHandler) {
					panic(r)
				}
				l.Error("panic recovered",
					applogger.String("panic", fmt.Sprint(r)),
					applogger.String("request_id", GetRequestID(c)),
					applogger.String("route", routeLabel(c)),
					applogger.String("stack", string(debug.Stack())),
				)
				if c.Response().Committed {
					return
				}
				err = c.JSON(http.StatusInternalServerError, map[string]interface{}{
					"status":  http.StatusInternalServerError,
					"message": http.StatusText(http.StatusInternalServerError),
				})
			}()
			return next(c)
		}
	}
}
