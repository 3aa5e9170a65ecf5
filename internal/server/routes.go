package server

import (
	"shoppingcart/internal/handler"

	"github.com/labstack/echo/v4"
)

func RegisterRoutes(e *echo.Echo, jwtSecret string, cartH *handler.CartHandler, healthH *handler.HealthHandler) {
	healthH.RegisterRoutes(e)
	cartH.RegisterRoutes(e, jwtSecret)
}
