package repositories

import (
	"context"

	"github.com/jmoiron/sqlx"

	"unimate/internal/models"
)

// ConversationRepository reads the conversation_list view.
type ConversationRepository interface {
	ListConversationRows(ctx context.Context, profileID string) ([]models.ConversationRow, error)
}

// ConversationRepo is a sqlx implementation of ConversationRepository.
type ConversationRepo struct {
	db *sqlx.DB
}

// NewConversationRepo constructs a ConversationRepo.
func NewConversationRepo(db *sqlx.DB) *ConversationRepo {
	return &ConversationRepo{db: db}
}

// ListConversationRows returns every message row the profile sent or
// received, newest first.
func (r *ConversationRepo) ListConversationRows(ctx context.Context, profileID string) ([]models.ConversationRow, error) {
	query := `SELECT sender_id, receiver_id,
        COALESCE(sender_first_name, '') AS sender_first_name, COALESCE(sender_last_name, '') AS sender_last_name,
        COALESCE(sender_avatar_url, '') AS sender_avatar_url,
        COALESCE(receiver_first_name, '') AS receiver_first_name, COALESCE(receiver_last_name, '') AS receiver_last_name,
        COALESCE(receiver_avatar_url, '') AS receiver_avatar_url,
        content, created_at, is_read
        FROM conversation_list
        WHERE sender_id = $1 OR receiver_id = $1
        ORDER BY created_at DESC`
	var rows []models.ConversationRow
	err := r.db.SelectContext(ctx, &rows, query, profileID)
	return rows, err
}
