package websocket

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"carbon-scribe/project-portal/boundary-importer/internal/notifications"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
	sendBuffer = 64
)

// Manager pushes import events to subscribed WebSocket clients
type Manager struct {
	hub      *Hub
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// Connection represents a WebSocket client connection
type Connection struct {
	ID          string
	Conn        *websocket.Conn
	Send        chan notifications.WebSocketMessage
	ConnectedAt time.Time
	UserAgent   string
	IPAddress   string
}

// Hub owns the connection set and fans broadcasts out to it
type Hub struct {
	connections map[*Connection]bool
	broadcast   chan notifications.WebSocketMessage
	register    chan *Connection
	unregister  chan *Connection
	stop        chan struct{}
	count       atomic.Int64
	logger      *zap.Logger
}

// NewManager creates a new WebSocket manager
func NewManager(logger *zap.Logger) *Manager {
	hub := &Hub{
		connections: make(map[*Connection]bool),
		broadcast:   make(chan notifications.WebSocketMessage, 256),
		register:    make(chan *Connection),
		unregister:  make(chan *Connection),
		stop:        make(chan struct{}),
		logger:      logger,
	}

	go hub.run()

	return &Manager{
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// HandleConnection upgrades the request and subscribes the client to import events
func (m *Manager) HandleConnection(w http.ResponseWriter, r *http.Request) (*Connection, error) {
	conn, err := m.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to upgrade connection: %w", err)
	}

	connection := &Connection{
		ID:          uuid.New().String(),
		Conn:        conn,
		Send:        make(chan notifications.WebSocketMessage, sendBuffer),
		ConnectedAt: time.Now(),
		UserAgent:   r.Header.Get("User-Agent"),
		IPAddress:   r.RemoteAddr,
	}

	select {
	case m.hub.register <- connection:
	case <-m.hub.stop:
		conn.Close()
		return nil, fmt.Errorf("websocket manager closed")
	}

	go m.readPump(connection)
	go m.writePump(connection)

	return connection, nil
}

// readPump drains client frames so control messages are processed
func (m *Manager) readPump(conn *Connection) {
	defer func() {
		select {
		case m.hub.unregister <- conn:
		case <-m.hub.stop:
		}
		conn.Conn.Close()
	}()

	conn.Conn.SetReadLimit(512)
	conn.Conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.Conn.SetPongHandler(func(string) error {
		conn.Conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := conn.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				m.logger.Debug("WebSocket read failed", zap.String("connection_id", conn.ID), zap.Error(err))
			}
			return
		}
	}
}

// writePump pumps messages from the hub to the WebSocket connection
func (m *Manager) writePump(conn *Connection) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-conn.Send:
			conn.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.Conn.WriteJSON(message); err != nil {
				return
			}

		case <-ticker.C:
			conn.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// run runs the hub in its own goroutine
func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			h.connections[conn] = true
			h.count.Store(int64(len(h.connections)))
			h.logger.Debug("Connection registered", zap.String("connection_id", conn.ID))

		case conn := <-h.unregister:
			if _, ok := h.connections[conn]; ok {
				delete(h.connections, conn)
				close(conn.Send)
				h.count.Store(int64(len(h.connections)))
				h.logger.Debug("Connection unregistered", zap.String("connection_id", conn.ID))
			}

		case message := <-h.broadcast:
			for conn := range h.connections {
				select {
				case conn.Send <- message:
				default:
					// slow consumer
					close(conn.Send)
					delete(h.connections, conn)
				}
			}
			h.count.Store(int64(len(h.connections)))

		case <-h.stop:
			for conn := range h.connections {
				close(conn.Send)
				delete(h.connections, conn)
			}
			h.count.Store(0)
			return
		}
	}
}

// Broadcast sends a message to all connected clients
func (m *Manager) Broadcast(message notifications.WebSocketMessage) error {
	select {
	case m.hub.broadcast <- message:
		return nil
	default:
		return fmt.Errorf("broadcast channel full")
	}
}

// Notify implements notifications.Notifier
func (m *Manager) Notify(ctx context.Context, event notifications.Event) {
	msg := notifications.WebSocketMessage{
		Type:      notifications.MessageTypeImport,
		Payload:   event,
		Timestamp: time.Now(),
	}
	if err := m.Broadcast(msg); err != nil {
		m.logger.Warn("Dropping import event", zap.String("title", event.Title), zap.Error(err))
	}
}

// GetConnectionCount returns the number of active connections
func (m *Manager) GetConnectionCount() int {
	return int(m.hub.count.Load())
}

// Close stops the hub and disconnects every client
func (m *Manager) Close() {
	close(m.hub.stop)
}
