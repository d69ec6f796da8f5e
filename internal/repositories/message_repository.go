package repositories

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"

	"unimate/internal/models"
)

var ErrEmptyMessage = errors.New("message content is empty")

// MessageRepository defines interactions for direct messages.
type MessageRepository interface {
	CreateMessage(ctx context.Context, senderID, receiverID, content string) (models.Message, error)
	MarkRead(ctx context.Context, receiverID, senderID string) (int64, error)
}

// MessageRepo is a sqlx-backed repository.
type MessageRepo struct {
	db *sqlx.DB
}

// NewMessageRepo constructs MessageRepo.
func NewMessageRepo(db *sqlx.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// CreateMessage stores a message from sender to receiver.
func (r *MessageRepo) CreateMessage(ctx context.Context, senderID, receiverID, content string) (models.Message, error) {
	if content == "" {
		return models.Message{}, ErrEmptyMessage
	}
	var msg models.Message
	err := r.db.QueryRowxContext(ctx, `INSERT INTO messages (sender_id, receiver_id, content) VALUES ($1, $2, $3) RETURNING id, sender_id, receiver_id, content, is_read, created_at`, senderID, receiverID, content).
		StructScan(&msg)
	if hasCode(err, foreignKeyViolation) {
		return models.Message{}, ErrUnknownReference
	}
	return msg, err
}

// MarkRead flags every unread message from sender to receiver as read and
// returns how many rows changed.
func (r *MessageRepo) MarkRead(ctx context.Context, receiverID, senderID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE messages SET is_read = TRUE WHERE receiver_id=$1 AND sender_id=$2 AND is_read = FALSE`, receiverID, senderID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
