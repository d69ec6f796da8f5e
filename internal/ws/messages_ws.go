package ws

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"unimate/internal/observability"
	"unimate/internal/session"
)

// MessagesHandler serves the per-profile message feed.
type MessagesHandler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewMessagesHandler constructs a MessagesHandler. Cross-origin upgrades are
// only accepted from allowedOrigins.
func NewMessagesHandler(hub *Hub, allowedOrigins []string, logger *zap.Logger) *MessagesHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MessagesHandler{
		hub:      hub,
		upgrader: websocket.Upgrader{CheckOrigin: originChecker(allowedOrigins)},
		logger:   logger,
	}
}

// Handle upgrades the request of an onboarded profile and registers it.
func (h *MessagesHandler) Handle(c *gin.Context) {
	profileID := session.FromContext(c).ProfileID()
	if profileID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "profile required"})
		return
	}

	ctx, span := otel.Tracer("unimate/ws").Start(c.Request.Context(), "ws.handshake")
	defer span.End()
	c.Request = c.Request.WithContext(ctx)

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	info := ConnInfo{
		ConnID:      uuid.NewString(),
		ProfileID:   profileID,
		DeviceID:    observability.DeviceIDFromRequest(c.Request),
		IP:          observability.IPFromRequest(c.Request),
		RequestID:   observability.RequestIDFromRequest(c.Request),
		TraceID:     span.SpanContext().TraceID().String(),
		ConnectedAt: time.Now(),
	}
	h.hub.AddClient(profileID, conn, info)

	observability.IncWSActive()
	observability.IncWSEvent("ws_connect")
	h.publish(ctx, info, "ws_connect", "")

	// Detached from the request: the handler returns once the upgrade is done.
	go h.readLoop(context.WithoutCancel(ctx), conn, info)
}

func (h *MessagesHandler) readLoop(ctx context.Context, conn *websocket.Conn, info ConnInfo) {
	var closeReason string
	defer func() {
		h.hub.RemoveClient(info.ProfileID, conn)
		observability.DecWSActive()
		observability.IncWSEvent("ws_disconnect")
		h.publish(ctx, info, "ws_disconnect", closeReason)
		conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			closeReason = err.Error()
			dropped := !h.hub.has(info.ProfileID, conn)
			if !dropped && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				observability.IncWSEvent("ws_error")
				h.publish(ctx, info, "ws_error", closeReason)
			}
			return
		}
	}
}

func (h *MessagesHandler) publish(ctx context.Context, info ConnInfo, event, reason string) {
	_ = observability.PublishEvent(ctx, routingKey, observability.EventEnvelope{
		EventType: "ws_events",
		EventName: event,
		Headers:   observability.BuildHeaders(info.RequestID, info.TraceID),
		Payload:   info.payload(event, reason),
	})
}
