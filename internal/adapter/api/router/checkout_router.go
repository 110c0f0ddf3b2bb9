package router

import (
	"github.com/labstack/echo/v4"

	"rivalioo/internal/adapter/api/handler"
	"rivalioo/internal/adapter/api/middleware"
	"rivalioo/internal/infrastructure/ratelimit"
)

// SetupCheckoutRouter uses optional auth so the anonymous-checkout policy is
// decided by the use case, not the router.
func SetupCheckoutRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, limiter *ratelimit.RateLimiter) {
	checkoutHandler := handler.GetCheckoutHandler()

	e.POST("/v1/checkout", checkoutHandler.Checkout,
		authMiddleware.OptionalAuth,
		middleware.RateLimit(limiter, ratelimit.ActionCheckout),
	)
}
