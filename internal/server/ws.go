package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// StateHandler broadcasts the live interpretation state via WebSocket.
type StateHandler struct {
	source  StateSource
	clients map[*websocket.Conn]bool
	mu      sync.RWMutex
	stop    chan struct{}
	once    sync.Once
}

// NewStateHandler creates a new StateHandler with the given state source.
func NewStateHandler(source StateSource) *StateHandler {
	h := &StateHandler{
		source:  source,
		clients: make(map[*websocket.Conn]bool),
		stop:    make(chan struct{}),
	}
	go h.broadcast()
	return h
}

// Close stops the broadcast goroutine. Safe to call more than once.
func (h *StateHandler) Close() {
	h.once.Do(func() {
		close(h.stop)
	})
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *StateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	h.mu.Lock()
	h.clients[conn] = true
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// broadcast sends the interpretation state to all connected clients until
// the handler is closed.
func (h *StateHandler) broadcast() {
	ticker := time.NewTicker(66 * time.Millisecond) // ~15 FPS
	defer ticker.Stop()

	for {
		select {
		case <-h.stop:
			return
		case <-ticker.C:
		}

		h.mu.RLock()
		if len(h.clients) == 0 {
			h.mu.RUnlock()
			continue
		}
		h.mu.RUnlock()

		state := h.source.Snapshot()
		msg, _ := json.Marshal(map[string]any{
			"state":     state,
			"timestamp": time.Now().UnixMilli(),
		})

		h.mu.RLock()
		for conn := range h.clients {
			conn.WriteMessage(websocket.TextMessage, msg)
		}
		h.mu.RUnlock()
	}
}
