package models

import "time"

// ConversationRow is one row of the conversation_list view: a message joined
// with both participants' profiles.
type ConversationRow struct {
	SenderID          string    `db:"sender_id"`
	ReceiverID        string    `db:"receiver_id"`
	SenderFirstName   string    `db:"sender_first_name"`
	SenderLastName    string    `db:"sender_last_name"`
	SenderAvatarURL   string    `db:"sender_avatar_url"`
	ReceiverFirstName string    `db:"receiver_first_name"`
	ReceiverLastName  string    `db:"receiver_last_name"`
	ReceiverAvatarURL string    `db:"receiver_avatar_url"`
	Content           string    `db:"content"`
	CreatedAt         time.Time `db:"created_at"`
	IsRead            bool      `db:"is_read"`
}

// ConversationSummary is the per-peer digest shown in the inbox.
type ConversationSummary struct {
	PeerID      string `json:"peer_id" yaml:"peer_id"`
	PeerName    string `json:"peer_name" yaml:"peer_name"`
	PeerAvatar  string `json:"peer_avatar" yaml:"peer_avatar"`
	LastMessage string `json:"last_message" yaml:"last_message"`
	Time        string `json:"time" yaml:"time"`
	Unread      int    `json:"unread" yaml:"unread"`
}
