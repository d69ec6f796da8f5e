package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"unimate/internal/models"
	"unimate/internal/repositories"
	"unimate/internal/session"
)

// MessageNotifier pushes realtime updates; *ws.Hub implements it.
type MessageNotifier interface {
	BroadcastMessage(profileID string, msg models.Message)
	BroadcastRead(profileID, peerID string, rows int64)
}

// MessageHandler manages direct message endpoints.
type MessageHandler struct {
	messages      repositories.MessageRepository
	conversations ConversationLister
	notifier      MessageNotifier
	logger        *zap.Logger
}

// NewMessageHandler builds a MessageHandler. notifier may be nil.
func NewMessageHandler(messages repositories.MessageRepository, conversations ConversationLister, notifier MessageNotifier, logger *zap.Logger) *MessageHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MessageHandler{messages: messages, conversations: conversations, notifier: notifier, logger: logger}
}

// ListConversations returns one summary per conversation row of the caller.
func (h *MessageHandler) ListConversations(c *gin.Context) {
	profileID := session.FromContext(c).ProfileID()
	c.JSON(http.StatusOK, gin.H{"conversations": h.conversations.List(c.Request.Context(), profileID)})
}

// SendMessage stores a message and pushes it to the receiver.
func (h *MessageHandler) SendMessage(c *gin.Context) {
	var req struct {
		ReceiverID string `json:"receiver_id" binding:"required"`
		Content    string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !validIDs(req.ReceiverID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid receiver id"})
		return
	}

	me := session.FromContext(c).ProfileID()
	if req.ReceiverID == me {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot message yourself"})
		return
	}

	msg, err := h.messages.CreateMessage(c.Request.Context(), me, req.ReceiverID, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrEmptyMessage):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		case errors.Is(err, repositories.ErrUnknownReference):
			c.JSON(http.StatusNotFound, gin.H{"error": "receiver not found"})
			return
		}
		h.logger.Error("create message", zap.String("sender_id", me), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not send message"})
		return
	}

	if h.notifier != nil {
		h.notifier.BroadcastMessage(req.ReceiverID, msg)
	}
	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

// MarkRead marks every message from peer_id to the caller as read.
func (h *MessageHandler) MarkRead(c *gin.Context) {
	peerID := c.Param("peer_id")
	if !validIDs(peerID) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid peer id"})
		return
	}
	me := session.FromContext(c).ProfileID()

	rows, err := h.messages.MarkRead(c.Request.Context(), me, peerID)
	if err != nil {
		h.logger.Error("mark read", zap.String("receiver_id", me), zap.String("sender_id", peerID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not mark messages read"})
		return
	}

	if rows > 0 && h.notifier != nil {
		h.notifier.BroadcastRead(peerID, me, rows)
	}
	c.JSON(http.StatusOK, gin.H{"updated": rows})
}
