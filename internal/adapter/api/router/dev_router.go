package router

import (
	"github.com/labstack/echo/v4"

	"rivalioo/internal/adapter/api/handler"
)

// SetupDevRouter only registers in development with Firebase configured.
func SetupDevRouter(e *echo.Echo, environment string) {
	if environment != "development" {
		return
	}
	devTokenHandler := handler.GetDevTokenHandler()
	if devTokenHandler == nil {
		return
	}

	e.GET("/_dev/token", devTokenHandler.GenerateToken)
}
