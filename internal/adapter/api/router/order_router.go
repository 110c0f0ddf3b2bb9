package router

import (
	"github.com/labstack/echo/v4"

	"rivalioo/internal/adapter/api/handler"
	"rivalioo/internal/adapter/api/middleware"
)

func SetupOrderRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware) {
	orderHandler := handler.GetOrderHandler()
	profileHandler := handler.GetProfileHandler()

	orders := e.Group("/v1/orders")
	orders.Use(authMiddleware.Authenticate)

	orders.GET("/redemptions", orderHandler.ListRedemptions)
	orders.GET("/redemptions/:id", orderHandler.GetRedemption)

	e.GET("/v1/profile", profileHandler.GetProfile, authMiddleware.Authenticate)
}
