// Package conversations turns conversation_list rows into inbox summaries.
package conversations

import (
	"time"

	"unimate/internal/models"
)

// TimeLayout is the hour:minute label shown next to the last message.
const TimeLayout = "15:04"

// Project builds the summary of one row as seen by viewerID. The peer is
// whichever side of the row the viewer is not on.
func Project(row models.ConversationRow, viewerID string, loc *time.Location) models.ConversationSummary {
	if loc == nil {
		loc = time.UTC
	}
	isSender := row.SenderID == viewerID

	summary := models.ConversationSummary{
		LastMessage: row.Content,
		Time:        row.CreatedAt.In(loc).Format(TimeLayout),
	}
	if isSender {
		summary.PeerID = row.ReceiverID
		summary.PeerName = models.FullName(row.ReceiverFirstName, row.ReceiverLastName)
		summary.PeerAvatar = row.ReceiverAvatarURL
	} else {
		summary.PeerID = row.SenderID
		summary.PeerName = models.FullName(row.SenderFirstName, row.SenderLastName)
		summary.PeerAvatar = row.SenderAvatarURL
	}
	if !row.IsRead && !isSender {
		summary.Unread = 1
	}
	return summary
}

// ProjectAll projects every row in order. Several rows with the same peer
// yield several summaries.
func ProjectAll(rows []models.ConversationRow, viewerID string, loc *time.Location) []models.ConversationSummary {
	summaries := make([]models.ConversationSummary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, Project(row, viewerID, loc))
	}
	return summaries
}
