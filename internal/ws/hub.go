package ws

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"unimate/internal/models"
	"unimate/internal/observability"
)

const routingKey = "ws_events.messages"

type client struct {
	conn *websocket.Conn
	info ConnInfo
	mu   sync.Mutex
}

func (c *client) write(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

// Hub keeps the open message feeds of each profile. A profile may have
// several connections (tabs, devices).
type Hub struct {
	rooms  map[string]map[*websocket.Conn]*client
	mu     sync.RWMutex
	logger *zap.Logger
}

// NewHub creates an empty hub.
func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{rooms: make(map[string]map[*websocket.Conn]*client), logger: logger}
}

// AddClient registers conn in the room of profileID.
func (h *Hub) AddClient(profileID string, conn *websocket.Conn, info ConnInfo) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.rooms[profileID]; !ok {
		h.rooms[profileID] = make(map[*websocket.Conn]*client)
	}
	h.rooms[profileID][conn] = &client{conn: conn, info: info}
}

// RemoveClient drops conn from the room of profileID.
func (h *Hub) RemoveClient(profileID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if conns, ok := h.rooms[profileID]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.rooms, profileID)
		}
	}
}

// Connections returns the number of open feeds of profileID.
func (h *Hub) Connections(profileID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[profileID])
}

// BroadcastMessage pushes a new message to every feed of profileID.
func (h *Hub) BroadcastMessage(profileID string, msg models.Message) {
	h.broadcast(profileID, models.MessageEvent{Type: "message", Message: &msg})
}

// BroadcastRead tells profileID that peerID has read their messages.
func (h *Hub) BroadcastRead(profileID, peerID string, rows int64) {
	h.broadcast(profileID, models.MessageEvent{Type: "read", PeerID: peerID, ReadRows: rows})
}

func (h *Hub) broadcast(profileID string, event models.MessageEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		h.logger.Error("marshal websocket event", zap.Error(err))
		return
	}

	h.mu.RLock()
	clients := make([]*client, 0, len(h.rooms[profileID]))
	for _, c := range h.rooms[profileID] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		if err := c.write(payload); err != nil {
			h.drop(profileID, c, err)
		}
	}
}

// drop unregisters a broken feed before closing it, so the read loop can
// tell that the failure was already reported.
func (h *Hub) drop(profileID string, c *client, err error) {
	h.logger.Warn("websocket write error", zap.String("profile_id", profileID), zap.String("conn_id", c.info.ConnID), zap.Error(err))
	h.RemoveClient(profileID, c.conn)
	c.conn.Close()
	h.publishWSError(c.info, err)
}

func (h *Hub) has(profileID string, conn *websocket.Conn) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, ok := h.rooms[profileID][conn]
	return ok
}

func (h *Hub) publishWSError(info ConnInfo, err error) {
	_ = observability.PublishEvent(context.Background(), routingKey, observability.EventEnvelope{
		EventType: "ws_events",
		EventName: "ws_error",
		Headers:   observability.BuildHeaders(info.RequestID, info.TraceID),
		Payload:   info.payload("ws_error", err.Error()),
	})
	observability.IncWSEvent("ws_error")
}
