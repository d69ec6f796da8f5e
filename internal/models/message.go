package models

import "time"

// Message is a direct message between two profiles.
type Message struct {
	ID         string    `db:"id" json:"id"`
	SenderID   string    `db:"sender_id" json:"sender_id"`
	ReceiverID string    `db:"receiver_id" json:"receiver_id"`
	Content    string    `db:"content" json:"content"`
	IsRead     bool      `db:"is_read" json:"is_read"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// MessageEvent is pushed through websockets.
type MessageEvent struct {
	Type     string   `json:"type"`
	Message  *Message `json:"message,omitempty"`
	PeerID   string   `json:"peer_id,omitempty"`
	ReadRows int64    `json:"read_rows,omitempty"`
}
