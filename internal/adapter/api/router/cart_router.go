package router

import (
	"github.com/labstack/echo/v4"

	"rivalioo/internal/adapter/api/handler"
	"rivalioo/internal/adapter/api/middleware"
	"rivalioo/internal/infrastructure/ratelimit"
)

// SetupCartRouter registers cart routes. Carts work signed in or with an
// X-Cart-Session header.
func SetupCartRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, limiter *ratelimit.RateLimiter) {
	cartHandler := handler.GetCartHandler()

	cart := e.Group("/v1/cart")
	cart.Use(authMiddleware.OptionalAuth)

	cart.GET("", cartHandler.GetCart)
	cart.GET("/total", cartHandler.GetTotal)

	mutate := middleware.RateLimit(limiter, ratelimit.ActionCartMutation)
	cart.POST("/items", cartHandler.AddProduct, mutate)
	cart.POST("/redemptions", cartHandler.AddRedemption, mutate)
	cart.DELETE("/items/:id", cartHandler.RemoveItem, mutate)
	cart.DELETE("", cartHandler.Clear, mutate)

	cart.POST("/drawer/open", cartHandler.OpenDrawer)
	cart.POST("/drawer/close", cartHandler.CloseDrawer)
	cart.POST("/drawer/toggle", cartHandler.ToggleDrawer)
}
