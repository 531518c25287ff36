package hub

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/yeremiapane/restaurant-pos/utils"
)

const writeWait = 5 * time.Second

type Message struct {
	Event  string      `json:"event"`
	Data   interface{} `json:"data"`
	SentAt time.Time   `json:"sentAt"`
}

// client owns the only goroutine that writes to its connection.
type client struct {
	employeeID string
	send       chan []byte
}

// Hub keeps the renderer connections that want cache change notifications.
type Hub struct {
	clients map[*websocket.Conn]*client
	mutex   sync.Mutex
	buffer  int
}

func New() *Hub {
	return &Hub{
		clients: make(map[*websocket.Conn]*client),
		buffer:  64,
	}
}

func (h *Hub) Register(conn *websocket.Conn, employeeID string) {
	c := &client{employeeID: employeeID, send: make(chan []byte, h.buffer)}

	h.mutex.Lock()
	h.clients[conn] = c
	n := len(h.clients)
	h.mutex.Unlock()

	go h.writePump(conn, c)
	utils.InfoLogger.Printf("Websocket client registered (%d connected)", n)
}

func (h *Hub) writePump(conn *websocket.Conn, c *client) {
	for payload := range c.send {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			utils.ErrorLogger.Printf("Error sending to client %q: %v", c.employeeID, err)
			h.Unregister(conn)
			return
		}
	}
}

func (h *Hub) Unregister(conn *websocket.Conn) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.drop(conn)
}

// drop must be called with the mutex held.
func (h *Hub) drop(conn *websocket.Conn) {
	c, ok := h.clients[conn]
	if !ok {
		return
	}
	delete(h.clients, conn)
	close(c.send)
	conn.Close()
}

func (h *Hub) Count() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// Broadcast queues one event for every client and returns without waiting
// for the writes. A client whose queue is full is dropped.
func (h *Hub) Broadcast(event string, data interface{}) {
	payload, err := json.Marshal(Message{Event: event, Data: data, SentAt: time.Now()})
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling %s event: %v", event, err)
		return
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for conn, c := range h.clients {
		select {
		case c.send <- payload:
		default:
			utils.ErrorLogger.Printf("Client %q too slow, dropped on %s", c.employeeID, event)
			h.drop(conn)
		}
	}
}
