package router

import (
	"github.com/labstack/echo/v4"

	"rivalioo/internal/adapter/api/handler"
	"rivalioo/internal/adapter/api/middleware"
	"rivalioo/internal/infrastructure/ratelimit"
)

func SetupStreamRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, limiter *ratelimit.RateLimiter) {
	streamHandler := handler.GetStreamHandler()

	e.GET("/v1/streams", streamHandler.GetSnapshot)
	e.PUT("/v1/streams/selected", streamHandler.SelectVideo,
		authMiddleware.OptionalAuth,
		middleware.RateLimit(limiter, ratelimit.ActionStreamSelect),
	)
	e.GET("/v1/format/views", streamHandler.FormatViews)
}
