package notify

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/jaiwin14/JobnexusAI/internal/config"
	apperrors "github.com/jaiwin14/JobnexusAI/internal/errors"
)

// Message is one websocket frame sent to an analysis client.
type Message struct {
	Type         string `json:"type"`
	ConnectionID string `json:"connectionId,omitempty"`
	Step         string `json:"step,omitempty"`
	Status       string `json:"status,omitempty"`
	Data         any    `json:"data,omitempty"`
	Error        string `json:"error,omitempty"`
}

// Frame types.
const (
	TypeConnected        = "connected"
	TypeStepUpdate       = "stepUpdate"
	TypeAnalysisComplete = "analysisComplete"
	TypeAnalysisError    = "analysisError"
)

type connection struct {
	id     string
	apiKey string
	ws     *websocket.Conn
	send   chan Message
	done   chan struct{}
	once   sync.Once
}

func (c *connection) close() {
	c.once.Do(func() {
		close(c.done)
		_ = c.ws.Close()
	})
}

// Hub tracks live websocket connections by ID. Each connection is bound to
// the API key that opened it; publishes under a different key are refused.
type Hub struct {
	cfg      *config.WebSocketConfig
	upgrader websocket.Upgrader
	logger   *apperrors.Logger

	mu    sync.RWMutex
	conns map[string]*connection
}

// NewHub creates a hub enforcing the configured origin allowlist.
func NewHub(cfg *config.WebSocketConfig, logger *apperrors.Logger) *Hub {
	h := &Hub{
		cfg:    cfg,
		logger: logger,
		conns:  make(map[string]*connection),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  cfg.ReadBufferSize,
		WriteBufferSize: cfg.WriteBufferSize,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

func (h *Hub) checkOrigin(r *http.Request) bool {
	if len(h.cfg.AllowedOrigins) == 0 {
		return true
	}
	origin := r.Header.Get("Origin")
	for _, allowed := range h.cfg.AllowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// HandleConnection upgrades the request and registers the connection under
// the caller's API key. The first frame delivers the connection ID clients
// pass to analysis requests. Blocks until the connection closes.
func (h *Hub) HandleConnection(w http.ResponseWriter, r *http.Request, apiKey string) {
	ws, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("WebSocket upgrade failed", "error", err.Error())
		return
	}

	conn := &connection{
		id:     uuid.NewString(),
		apiKey: apiKey,
		ws:     ws,
		send:   make(chan Message, h.cfg.SendBufferSize),
		done:   make(chan struct{}),
	}

	h.mu.Lock()
	h.conns[conn.id] = conn
	h.mu.Unlock()

	h.logger.Debug("WebSocket connection established", "connection_id", conn.id)

	conn.send <- Message{Type: TypeConnected, ConnectionID: conn.id}

	go h.writePump(conn)
	h.readPump(conn)

	h.mu.Lock()
	delete(h.conns, conn.id)
	h.mu.Unlock()

	h.logger.Debug("WebSocket connection closed", "connection_id", conn.id)
}

// readPump consumes client frames until the peer disconnects. Clients send
// nothing meaningful; reading just surfaces the close.
func (h *Hub) readPump(conn *connection) {
	defer conn.close()
	for {
		if _, _, err := conn.ws.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(conn *connection) {
	ticker := time.NewTicker(h.cfg.PingInterval)
	defer ticker.Stop()
	defer conn.close()

	for {
		select {
		case msg := <-conn.send:
			_ = conn.ws.SetWriteDeadline(time.Now().Add(h.cfg.WriteTimeout))
			if err := conn.ws.WriteJSON(msg); err != nil {
				h.logger.Debug("WebSocket write failed",
					"connection_id", conn.id,
					"error", err.Error())
				return
			}
		case <-ticker.C:
			_ = conn.ws.SetWriteDeadline(time.Now().Add(h.cfg.WriteTimeout))
			if err := conn.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-conn.done:
			return
		}
	}
}

// Publish delivers a message to one connection. The apiKey must match the
// key the connection was opened with; an unknown ID or a key mismatch is an
// error so callers cannot stream progress into another client's session.
func (h *Hub) Publish(connectionID, apiKey string, msg Message) error {
	h.mu.RLock()
	conn, ok := h.conns[connectionID]
	h.mu.RUnlock()

	if !ok {
		return apperrors.NewValidationError(apperrors.ErrCodeInvalidRequest,
			"Unknown websocket connection", nil).
			WithContext("connection_id", connectionID)
	}
	if conn.apiKey != apiKey {
		return apperrors.NewValidationError(apperrors.ErrCodeInvalidRequest,
			"WebSocket connection belongs to a different API key", nil).
			WithContext("connection_id", connectionID)
	}

	select {
	case conn.send <- msg:
		return nil
	default:
		// Slow consumer; drop the connection rather than block analysis.
		h.logger.Warn("WebSocket send buffer full, dropping connection",
			"connection_id", connectionID)
		conn.close()
		return apperrors.NewNetworkError(apperrors.ErrCodeServiceUnavailable,
			"WebSocket client is not keeping up", nil)
	}
}

// Has reports whether a connection ID is registered under the given API key.
func (h *Hub) Has(connectionID, apiKey string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	conn, ok := h.conns[connectionID]
	return ok && conn.apiKey == apiKey
}

// ConnectionCount returns the number of live connections.
func (h *Hub) ConnectionCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns)
}

// Close tears down every live connection.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, conn := range h.conns {
		conn.close()
		delete(h.conns, id)
	}
}
