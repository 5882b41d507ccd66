package handlers

import (
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/georeconexion/campo-api/maprender"
)

// WebSocket upgrader
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // the dashboard is served from varying field-node hosts
	},
}

// LiveHub tracks connected supervisor dashboards and pushes overlay
// replacements to them on every store mutation
type LiveHub struct {
	clients map[string]*websocket.Conn
	mutex   sync.Mutex
}

// NewLiveHub creates an empty hub
func NewLiveHub() *LiveHub {
	return &LiveHub{
		clients: make(map[string]*websocket.Conn),
	}
}

// HandleLiveWebSocket upgrades the connection and registers the client
func (h *LiveHub) HandleLiveWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zap.S().Errorw("websocket upgrade error", "error", err)
		return
	}

	clientID := uuid.New().String()
	h.mutex.Lock()
	h.clients[clientID] = conn
	h.mutex.Unlock()
	zap.S().Infow("live map client connected", "client", clientID)

	conn.SetCloseHandler(func(code int, text string) error {
		h.mutex.Lock()
		delete(h.clients, clientID)
		h.mutex.Unlock()
		zap.S().Infow("live map client disconnected", "client", clientID)
		return nil
	})

	// Keep connection alive
	for {
		if _, _, err := conn.NextReader(); err != nil {
			h.mutex.Lock()
			delete(h.clients, clientID)
			h.mutex.Unlock()
			conn.Close()
			break
		}
	}
}

// ClientCount reports how many dashboards are connected
func (h *LiveHub) ClientCount() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.clients)
}

// BroadcastOverlay pushes a full overlay replacement to every connected
// dashboard, dropping clients whose connection has gone away
func (h *LiveHub) BroadcastOverlay(overlay maprender.Overlay) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	for clientID, conn := range h.clients {
		err := conn.WriteJSON(map[string]interface{}{
			"event": "overlay_replaced",
			"data":  overlay,
		})
		if err != nil {
			zap.S().Warnw("failed to push overlay, dropping client", "client", clientID, "error", err)
			delete(h.clients, clientID)
			conn.Close()
		}
	}
}
