package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// Connect opens the BaaS Postgres database. With bootstrap set, the tables
// and the conversation_list view are created when missing; hosted projects
// own their schema and leave it off.
func Connect(ctx context.Context, dsn string, bootstrap bool, logger *zap.Logger) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	if bootstrap {
		if err := Bootstrap(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("bootstrap schema: %w", err)
		}
		logger.Info("database schema bootstrapped")
	}

	return db, nil
}

// Schema is the minimal schema the service reads and writes.
var Schema = []string{
	`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
	`CREATE TABLE IF NOT EXISTS profiles (
            id UUID PRIMARY KEY,
            role TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('user', 'admin')),
            username TEXT UNIQUE,
            first_name TEXT,
            last_name TEXT,
            avatar_url TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );`,
	`CREATE TABLE IF NOT EXISTS listings (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            host_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
            title TEXT NOT NULL,
            price NUMERIC(12, 2) NOT NULL DEFAULT 0,
            location TEXT,
            housing_rules JSONB,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );`,
	`CREATE TABLE IF NOT EXISTS contracts (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            host_id UUID NOT NULL REFERENCES profiles(id),
            student_id UUID NOT NULL REFERENCES profiles(id),
            listing_id UUID NOT NULL REFERENCES listings(id),
            terms JSONB NOT NULL,
            status TEXT NOT NULL DEFAULT 'pending'
                CHECK (status IN ('pending', 'signed', 'active', 'completed', 'cancelled')),
            signed_at TIMESTAMPTZ,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );`,
	`CREATE TABLE IF NOT EXISTS messages (
            id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
            sender_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
            receiver_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
            content TEXT NOT NULL,
            is_read BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );`,
	`CREATE INDEX IF NOT EXISTS messages_participants_idx ON messages (sender_id, receiver_id, created_at DESC);`,
	`CREATE OR REPLACE VIEW conversation_list AS
        SELECT m.sender_id,
               m.receiver_id,
               s.first_name AS sender_first_name,
               s.last_name AS sender_last_name,
               s.avatar_url AS sender_avatar_url,
               r.first_name AS receiver_first_name,
               r.last_name AS receiver_last_name,
               r.avatar_url AS receiver_avatar_url,
               m.content,
               m.created_at,
               m.is_read
        FROM messages m
        JOIN profiles s ON s.id = m.sender_id
        JOIN profiles r ON r.id = m.receiver_id;`,
}

// Bootstrap applies Schema in order.
func Bootstrap(ctx context.Context, db *sqlx.DB) error {
	for _, stmt := range Schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
