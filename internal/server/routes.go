package server

import (
	"storefront/internal/handler"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, session echo.MiddlewareFunc, productH *handler.ProductHandler, cartH *handler.CartHandler) {
	e.GET("/healthz", handler.Healthz)
	productH.RegisterRoutes(e)
	cartH.RegisterRoutes(e, session)
}
