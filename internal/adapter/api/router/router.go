package router

import (
	"github.com/labstack/echo/v4"

	"rivalioo/internal/adapter/api/handler"
	"rivalioo/internal/adapter/api/middleware"
	"rivalioo/internal/infrastructure/ratelimit"
)

func Setup(
	e *echo.Echo,
	authMiddleware *middleware.AuthMiddleware,
	limiter *ratelimit.RateLimiter,
	wsHandler *handler.WebSocketHandler,
	environment string,
) {
	SetupHealthRouter(e)
	SetupCatalogRouter(e)
	SetupCartRouter(e, authMiddleware, limiter)
	SetupCheckoutRouter(e, authMiddleware, limiter)
	SetupOrderRouter(e, authMiddleware)
	SetupStreamRouter(e, authMiddleware, limiter)
	SetupWebSocketRouter(e, authMiddleware, wsHandler)
	SetupDevRouter(e, environment)
}
