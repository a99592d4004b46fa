package realtime

import (
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Connection wraps a websocket connection registered in a room. The write
// mutex serializes broadcasts with handler replies; gorilla allows only one
// concurrent writer per connection.
type Connection struct {
	conn    *websocket.Conn
	room    string
	writeMu sync.Mutex
}

// WriteJSON sends a JSON payload on this connection
func (c *Connection) WriteJSON(v interface{}) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(v)
}

// Hub tracks live websocket connections grouped by room and fans broadcasts
// out to every connection in a room.
type Hub struct {
	mu    sync.RWMutex
	rooms map[string]map[*Connection]struct{}
}

var hubInstance *Hub

// InitHub initializes the global hub instance
func InitHub() *Hub {
	hubInstance = NewHub()
	return hubInstance
}

// GetHub returns the global hub instance
func GetHub() *Hub {
	return hubInstance
}

// SetHub sets the global hub instance (primarily for testing)
func SetHub(h *Hub) {
	hubInstance = h
}

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{rooms: make(map[string]map[*Connection]struct{})}
}

// Add registers a connection in a room
func (h *Hub) Add(room string, conn *websocket.Conn) *Connection {
	c := &Connection{conn: conn, room: room}

	h.mu.Lock()
	if _, ok := h.rooms[room]; !ok {
		h.rooms[room] = make(map[*Connection]struct{})
	}
	h.rooms[room][c] = struct{}{}
	total := len(h.rooms[room])
	h.mu.Unlock()

	log.Printf("WS connected: room=%s (total=%d)", room, total)
	return c
}

// Remove unregisters and closes a connection. Safe to call on every exit
// path; removing twice is a no-op.
func (h *Hub) Remove(c *Connection) {
	h.mu.Lock()
	if conns, ok := h.rooms[c.room]; ok {
		if _, present := conns[c]; present {
			delete(conns, c)
			if len(conns) == 0 {
				delete(h.rooms, c.room)
			}
			log.Printf("WS disconnected: room=%s", c.room)
		}
	}
	h.mu.Unlock()
	_ = c.conn.Close()
}

// Broadcast sends a JSON payload to every connection in a room
func (h *Hub) Broadcast(room string, payload interface{}) {
	h.mu.RLock()
	conns := make([]*Connection, 0, len(h.rooms[room]))
	for c := range h.rooms[room] {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, c := range conns {
		if err := c.WriteJSON(payload); err != nil {
			log.Printf("failed WS send to room %s: %v", room, err)
			h.Remove(c)
		}
	}
}

// Heartbeat pings all connections periodically to keep them alive.
// Blocks; run it in its own goroutine.
func (h *Hub) Heartbeat(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		h.mu.RLock()
		conns := make([]*Connection, 0)
		for _, room := range h.rooms {
			for c := range room {
				conns = append(conns, c)
			}
		}
		h.mu.RUnlock()

		for _, c := range conns {
			c.writeMu.Lock()
			err := c.conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(time.Second))
			c.writeMu.Unlock()
			if err != nil {
				h.Remove(c)
			}
		}
	}
}
