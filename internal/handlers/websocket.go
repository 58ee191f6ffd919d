package handlers

import (
	"context"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/Nandheswara/stock-analysis-sub000/internal/interfaces"
)

// WebSocketHandler pushes bus events to connected dashboard clients.
type WebSocketHandler struct {
	upgrader websocket.Upgrader
	logger   arbor.ILogger

	mu      sync.Mutex
	clients map[*websocket.Conn]bool

	// progressLimiter throttles refresh_progress pushes; a large sweep emits
	// one event per symbol and the browser only needs a few per second.
	progressLimiter *rate.Limiter
}

// NewWebSocketHandler creates the handler and subscribes it to the bus.
func NewWebSocketHandler(events interfaces.EventService, logger arbor.ILogger) *WebSocketHandler {
	h := &WebSocketHandler{
		upgrader: websocket.Upgrader{
			// The dashboard is served from the same origin in production and
			// from a dev server locally.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		logger:          logger,
		clients:         make(map[*websocket.Conn]bool),
		progressLimiter: rate.NewLimiter(rate.Limit(4), 1),
	}

	events.Subscribe(interfaces.EventStockUpdated, h.onEvent)
	events.Subscribe(interfaces.EventAlert, h.onEvent)
	events.Subscribe(interfaces.EventRefreshProgress, h.onProgress)

	return h
}

// ServeHTTP upgrades the connection and keeps it registered until the client
// goes away. Inbound messages are drained and discarded; the socket is
// push-only.
func (h *WebSocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	count := len(h.clients)
	h.mu.Unlock()

	h.logger.Debug().Int("clients", count).Msg("WebSocket client connected")

	go h.drain(conn)
}

// ClientCount returns the number of connected clients.
func (h *WebSocketHandler) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects all clients.
func (h *WebSocketHandler) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.clients {
		conn.Close()
	}
	h.clients = make(map[*websocket.Conn]bool)
}

func (h *WebSocketHandler) onEvent(_ context.Context, event interfaces.Event) {
	h.broadcast(event)
}

func (h *WebSocketHandler) onProgress(_ context.Context, event interfaces.Event) {
	if !h.progressLimiter.Allow() {
		return
	}
	h.broadcast(event)
}

func (h *WebSocketHandler) broadcast(event interfaces.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.clients {
		if err := conn.WriteJSON(event); err != nil {
			h.logger.Debug().Err(err).Msg("WebSocket write failed, dropping client")
			conn.Close()
			delete(h.clients, conn)
		}
	}
}

// drain reads and discards inbound frames so pings are handled and closed
// connections are detected.
func (h *WebSocketHandler) drain(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.mu.Lock()
			if h.clients[conn] {
				conn.Close()
				delete(h.clients, conn)
			}
			h.mu.Unlock()
			return
		}
	}
}
