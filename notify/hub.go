package notify

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/furqanahmad03/e-store-api/store"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub pushes store notices to any websocket clients a session has open.
// Notices for sessions with no connected client are dropped; the HTTP
// responses carry them too.
type Hub struct {
	mu      sync.Mutex
	clients map[string]map[*websocket.Conn]bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]map[*websocket.Conn]bool)}
}

// Notify implements store.Notifier.
func (h *Hub) Notify(sessionID string, n store.Notice) {
	data, err := json.Marshal(n)
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients[sessionID] {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			conn.Close()
			delete(h.clients[sessionID], conn)
		}
	}
}

// Serve upgrades the request and keeps the connection registered until the
// client goes away.
func (h *Hub) Serve(c *gin.Context) {
	sessionID := c.GetString("session_id")
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	h.mu.Lock()
	if h.clients[sessionID] == nil {
		h.clients[sessionID] = make(map[*websocket.Conn]bool)
	}
	h.clients[sessionID][conn] = true
	h.mu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.mu.Lock()
	delete(h.clients[sessionID], conn)
	h.mu.Unlock()
}

// LogNotifier writes notices to the process log. Used when no websocket
// delivery is wanted, e.g. in local tooling.
type LogNotifier struct{}

func (LogNotifier) Notify(sessionID string, n store.Notice) {
	log.Printf("notice [%s] %s: %s", n.Level, sessionID, n.Message)
}
