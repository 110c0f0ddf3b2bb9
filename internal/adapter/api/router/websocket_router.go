package router

import (
	"github.com/labstack/echo/v4"

	"rivalioo/internal/adapter/api/handler"
	"rivalioo/internal/adapter/api/middleware"
)

// SetupWebSocketRouter sets up the snapshot feed. Browsers cannot set headers
// on a websocket handshake, so a token in the query string is also accepted.
func SetupWebSocketRouter(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, wsHandler *handler.WebSocketHandler) {
	e.GET("/v1/streams/ws", wsHandler.HandleWebSocket, tokenFromQuery, authMiddleware.OptionalAuth)
}
