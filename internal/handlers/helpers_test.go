package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"unimate/internal/models"
	"unimate/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func strPtr(s string) *string { return &s }

func onboardedSession(id string, role models.Role) *session.Session {
	return &session.Session{
		Token: "tok-" + id,
		User:  &models.User{ID: id, Email: id + "@example.com"},
		Profile: &models.Profile{
			ID:        id,
			Role:      role,
			Username:  strPtr(id),
			FirstName: "Awa",
			LastName:  "Ba",
		},
	}
}

func withSession(s *session.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		session.Attach(c, s)
		c.Next()
	}
}

type stubConversations struct {
	summaries []models.ConversationSummary
	calls     []string
}

func (s *stubConversations) List(_ context.Context, profileID string) []models.ConversationSummary {
	s.calls = append(s.calls, profileID)
	return s.summaries
}

type recordedEvent struct {
	profileID string
	msg       models.Message
	peerID    string
	rows      int64
}

type recordingNotifier struct {
	messages []recordedEvent
	reads    []recordedEvent
}

func (n *recordingNotifier) BroadcastMessage(profileID string, msg models.Message) {
	n.messages = append(n.messages, recordedEvent{profileID: profileID, msg: msg})
}

func (n *recordingNotifier) BroadcastRead(profileID, peerID string, rows int64) {
	n.reads = append(n.reads, recordedEvent{profileID: profileID, peerID: peerID, rows: rows})
}
