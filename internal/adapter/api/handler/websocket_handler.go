package handler

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	ws "rivalioo/internal/infrastructure/websocket"
	"rivalioo/internal/usecase"
	"rivalioo/pkg/logger"
)

type WebSocketHandler struct {
	wsManager     *ws.Manager
	streamUseCase *usecase.StreamStatsUseCase
}

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func NewWebSocketHandler(wsManager *ws.Manager, streamUseCase *usecase.StreamStatsUseCase) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:     wsManager,
		streamUseCase: streamUseCase,
	}
}

// HandleWebSocket streams snapshots to viewers. Signed-in viewers also mark
// the user online for as long as a connection is open.
func (h *WebSocketHandler) HandleWebSocket(c echo.Context) error {
	// Upgrade writes its own error response.
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Warn("Websocket upgrade failed: %v", err)
		return nil
	}

	client := &ws.Client{
		ID:     uuid.New().String(),
		UserID: getUserID(c),
		Conn:   conn,
		Send:   make(chan []byte, 256),
	}

	// The first frame is the current snapshot so viewers never wait a full
	// poll interval.
	if msg, err := json.Marshal(map[string]interface{}{
		"type": "stream_stats",
		"data": h.streamUseCase.Snapshot(),
	}); err == nil {
		client.Send <- msg
	}

	if !h.wsManager.Join(client) {
		logger.Warn("Websocket manager stopped, rejecting client %s", client.ID)
		conn.Close()
		return nil
	}

	go client.ReadPump(h.wsManager)
	go client.WritePump()

	return nil
}
