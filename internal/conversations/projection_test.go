package conversations

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"unimate/internal/models"
)

func row(sender, receiver string, isRead bool) models.ConversationRow {
	return models.ConversationRow{
		SenderID:          sender,
		ReceiverID:        receiver,
		SenderFirstName:   "Sender",
		SenderLastName:    sender,
		SenderAvatarURL:   sender + ".png",
		ReceiverFirstName: "Receiver",
		ReceiverLastName:  receiver,
		ReceiverAvatarURL: receiver + ".png",
		Content:           "hello",
		CreatedAt:         time.Date(2026, 10, 19, 16, 7, 0, 0, time.UTC),
		IsRead:            isRead,
	}
}

func TestProjectPeerIsAlwaysTheCounterpart(t *testing.T) {
	for _, isRead := range []bool{false, true} {
		sent := Project(row("P", "Q", isRead), "P", time.UTC)
		received := Project(row("Q", "P", isRead), "P", time.UTC)

		assert.Equal(t, "Q", sent.PeerID)
		assert.Equal(t, "Q", received.PeerID)
		assert.NotEqual(t, "P", sent.PeerID)
		assert.NotEqual(t, "P", received.PeerID)
	}
}

func TestProjectTakesPeerDetailsFromOtherSide(t *testing.T) {
	sent := Project(row("P", "Q", true), "P", time.UTC)
	assert.Equal(t, "Receiver Q", sent.PeerName)
	assert.Equal(t, "Q.png", sent.PeerAvatar)

	received := Project(row("Q", "P", true), "P", time.UTC)
	assert.Equal(t, "Sender Q", received.PeerName)
	assert.Equal(t, "Q.png", received.PeerAvatar)
	assert.Equal(t, "hello", received.LastMessage)
}

func TestProjectUnreadOnlyForUnreadReceivedMessages(t *testing.T) {
	tests := []struct {
		name     string
		row      models.ConversationRow
		expected int
	}{
		{"received unread", row("Q", "P", false), 1},
		{"received read", row("Q", "P", true), 0},
		{"sent unread", row("P", "Q", false), 0},
		{"sent read", row("P", "Q", true), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Project(tt.row, "P", time.UTC).Unread)
		})
	}
}

func TestProjectFormatsTimeInLocation(t *testing.T) {
	paris := time.FixedZone("CEST", 2*60*60)

	assert.Equal(t, "16:07", Project(row("Q", "P", true), "P", time.UTC).Time)
	assert.Equal(t, "18:07", Project(row("Q", "P", true), "P", paris).Time)
	assert.Equal(t, "16:07", Project(row("Q", "P", true), "P", nil).Time)
}

func TestProjectAllKeepsOneSummaryPerRow(t *testing.T) {
	rows := []models.ConversationRow{row("Q", "P", false), row("P", "Q", true), row("R", "P", true)}

	summaries := ProjectAll(rows, "P", time.UTC)

	assert.Len(t, summaries, 3)
	assert.Equal(t, []string{"Q", "Q", "R"}, []string{summaries[0].PeerID, summaries[1].PeerID, summaries[2].PeerID})
	assert.NotNil(t, ProjectAll(nil, "P", time.UTC))
}
