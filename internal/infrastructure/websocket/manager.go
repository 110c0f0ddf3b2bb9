package websocket

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"rivalioo/pkg/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 16
)

// Client represents a WebSocket connection client. UserID is empty for
// anonymous viewers.
type Client struct {
	ID     string
	UserID string
	Conn   *websocket.Conn
	Send   chan []byte
}

// PresenceHook is called when the first connection of a signed-in user
// opens or the last one closes.
type PresenceHook func(userID string, online bool)

// Manager manages all active WebSocket connections
type Manager struct {
	clients    map[string]*Client
	perUser    map[string]int
	Register   chan *Client
	Unregister chan *Client
	broadcast  chan []byte
	presence   PresenceHook
	done       chan struct{}
	mutex      sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]*Client),
		perUser:    make(map[string]int),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		broadcast:  make(chan []byte, sendBuffer),
		done:       make(chan struct{}),
	}
}

func (m *Manager) OnPresence(hook PresenceHook) {
	m.mutex.Lock()
	m.presence = hook
	m.mutex.Unlock()
}

// Start runs the manager's main loop in a goroutine
func (m *Manager) Start(ctx context.Context) {
	go func() {
		for {
			select {
			case client := <-m.Register:
				m.add(client)

			case client := <-m.Unregister:
				m.remove(client)

			case message := <-m.broadcast:
				m.fanOut(message)

			case <-ctx.Done():
				m.closeAll()
				close(m.done)
				return
			}
		}
	}()
}

// Join registers client with the running manager. It returns false once the
// manager has stopped.
func (m *Manager) Join(client *Client) bool {
	select {
	case m.Register <- client:
		return true
	case <-m.done:
		return false
	}
}

func (m *Manager) Leave(client *Client) {
	select {
	case m.Unregister <- client:
	case <-m.done:
	}
}

func (m *Manager) add(client *Client) {
	m.mutex.Lock()
	m.clients[client.ID] = client
	first := false
	if client.UserID != "" {
		m.perUser[client.UserID]++
		first = m.perUser[client.UserID] == 1
	}
	hook := m.presence
	m.mutex.Unlock()

	logger.Debug("Client registered: %s (user %q)", client.ID, client.UserID)
	if first && hook != nil {
		hook(client.UserID, true)
	}
}

func (m *Manager) remove(client *Client) {
	m.mutex.Lock()
	last := m.drop(client)
	hook := m.presence
	m.mutex.Unlock()

	logger.Debug("Client unregistered: %s", client.ID)
	if last && hook != nil {
		hook(client.UserID, false)
	}
}

// drop must be called with the mutex held. It reports whether this was the
// user's last connection.
func (m *Manager) drop(client *Client) bool {
	if _, ok := m.clients[client.ID]; !ok {
		return false
	}
	delete(m.clients, client.ID)
	close(client.Send)

	if client.UserID == "" {
		return false
	}
	m.perUser[client.UserID]--
	if m.perUser[client.UserID] <= 0 {
		delete(m.perUser, client.UserID)
		return true
	}
	return false
}

func (m *Manager) fanOut(message []byte) {
	var offline []string

	m.mutex.Lock()
	for _, client := range m.clients {
		select {
		case client.Send <- message:
		default:
			logger.Warn("Dropping slow websocket client %s", client.ID)
			if m.drop(client) {
				offline = append(offline, client.UserID)
			}
		}
	}
	hook := m.presence
	m.mutex.Unlock()

	if hook != nil {
		for _, userID := range offline {
			hook(userID, false)
		}
	}
}

func (m *Manager) closeAll() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	for _, client := range m.clients {
		m.drop(client)
	}
}

// Broadcast queues message for every connected client. It never blocks; when
// the queue is full the message is dropped.
func (m *Manager) Broadcast(message []byte) bool {
	select {
	case m.broadcast <- message:
		return true
	default:
		logger.Warn("Websocket broadcast queue full, dropping message")
		return false
	}
}

// SendToUser sends a message to every connection of a specific user
func (m *Manager) SendToUser(userID string, message []byte) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, client := range m.clients {
		if client.UserID != userID {
			continue
		}
		select {
		case client.Send <- message:
		default:
		}
	}
}

func (m *Manager) ClientCount() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.clients)
}

// ReadPump drains the connection so control frames are processed. Viewers
// never send data we act on.
func (c *Client) ReadPump(m *Manager) {
	defer func() {
		m.Leave(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(512)
	c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	c.Conn.SetPongHandler(func(string) error {
		return c.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn("Websocket read error for %s: %v", c.ID, err)
			}
			return
		}
	}
}

// WritePump sends messages to the WebSocket connection
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				logger.Warn("Websocket write error for %s: %v", c.ID, err)
				return
			}
		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
