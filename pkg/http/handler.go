package http

import "github.com/labstack/echo/v4"

// Handler registers a group of routes on the server.
type Handler interface {
	RegisterRoutes(e *echo.Echo)
}

// RoutesFunc lets a plain function act as a Handler.
type RoutesFunc func(e *echo.Echo)

func (f RoutesFunc) RegisterRoutes(e *echo.Echo) { f(e) }
