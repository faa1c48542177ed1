package chat

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 16 * 1024
	sendBuffer     = 64
)

// Event is what the hub pushes to a connected user.
type Event struct {
	Type      string `json:"type"`
	BookingID int64  `json:"booking_id,omitempty"`
	Payload   any    `json:"payload,omitempty"`
}

type client struct {
	userID int64
	conn   *websocket.Conn
	send   chan []byte
	once   sync.Once
}

func (c *client) closeSend() {
	c.once.Do(func() { close(c.send) })
}

// Hub tracks one live connection per user. A new connection replaces the old one.
type Hub struct {
	clients map[int64]*client
	mutex   sync.RWMutex
}

func NewHub() *Hub {
	return &Hub{clients: make(map[int64]*client)}
}

func (h *Hub) register(c *client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if old, ok := h.clients[c.userID]; ok {
		old.closeSend()
	}
	h.clients[c.userID] = c
}

// unregister drops c only if it is still the user's current connection.
func (h *Hub) unregister(c *client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if cur, ok := h.clients[c.userID]; ok && cur == c {
		delete(h.clients, c.userID)
	}
	c.closeSend()
}

// SendToUser queues ev for userID. It reports false when the user is offline
// or their buffer is full; in the latter case the connection is dropped.
func (h *Hub) SendToUser(userID int64, ev Event) bool {
	data, err := json.Marshal(ev)
	if err != nil {
		return false
	}

	// send is only closed under the write lock, so holding the read lock
	// across the non-blocking send keeps the channel open.
	h.mutex.RLock()
	c, ok := h.clients[userID]
	if !ok {
		h.mutex.RUnlock()
		return false
	}
	select {
	case c.send <- data:
		h.mutex.RUnlock()
		return true
	default:
		h.mutex.RUnlock()
		h.unregister(c)
		return false
	}
}

func (h *Hub) IsOnline(userID int64) bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	_, ok := h.clients[userID]
	return ok
}

func (h *Hub) OnlineCount() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// Close disconnects everyone. Used on shutdown.
func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for id, c := range h.clients {
		c.closeSend()
		delete(h.clients, id)
	}
}

// Serve runs the connection until it closes. onEvent receives every frame the
// client sends, already decoded.
func (h *Hub) Serve(conn *websocket.Conn, userID int64, onEvent func(ClientEvent)) {
	c := &client{userID: userID, conn: conn, send: make(chan []byte, sendBuffer)}
	h.register(c)

	go c.writePump()
	c.readPump(onEvent)
	h.unregister(c)
}

func (c *client) readPump(onEvent func(ClientEvent)) {
	defer c.conn.Close()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var ev ClientEvent
		if err := c.conn.ReadJSON(&ev); err != nil {
			return
		}
		if onEvent != nil {
			onEvent(ev)
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
