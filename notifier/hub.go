package notifier

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/campushub/lms-app/utils"
	"github.com/gorilla/websocket"
)

// writeWait bounds how long one stalled socket can hold the hub lock.
const writeWait = 5 * time.Second

type HubMessage struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub tracks open notification sockets per user so deliveries can push
// a badge update without waiting for the next count poll.
type Hub struct {
	mu      sync.Mutex
	clients map[uint]map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[uint]map[*websocket.Conn]bool),
	}
}

// Register adds a connection for the user.
func (h *Hub) Register(userID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[userID] == nil {
		h.clients[userID] = make(map[*websocket.Conn]bool)
	}
	h.clients[userID][conn] = true
}

// Unregister drops and closes a connection.
func (h *Hub) Unregister(userID uint, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.clients[userID]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.clients, userID)
		}
	}
	conn.Close()
}

// Push sends a message to every open socket of one user. Each write
// carries a deadline so a stalled client times out instead of wedging
// the hub; write errors only drop the broken connection.
func (h *Hub) Push(userID uint, msg HubMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		if utils.ErrorLogger != nil {
			utils.ErrorLogger.Printf("error marshaling hub message: %v", err)
		}
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients[userID] {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			delete(h.clients[userID], conn)
			conn.Close()
		}
	}
	if len(h.clients[userID]) == 0 {
		delete(h.clients, userID)
	}
}
