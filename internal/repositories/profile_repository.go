package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"unimate/internal/models"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrUsernameTaken   = errors.New("username already taken")
)

// ProfileRepository reads and completes application profiles.
type ProfileRepository interface {
	GetProfile(ctx context.Context, id string) (models.Profile, error)
	CompleteProfile(ctx context.Context, id string, update models.ProfileUpdate) (models.Profile, error)
}

// ProfileRepo is a sqlx implementation of ProfileRepository.
type ProfileRepo struct {
	db *sqlx.DB
}

// NewProfileRepo constructs a ProfileRepo.
func NewProfileRepo(db *sqlx.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

const profileColumns = `id, role, username, COALESCE(first_name, '') AS first_name,
        COALESCE(last_name, '') AS last_name, COALESCE(avatar_url, '') AS avatar_url`

// GetProfile fetches a profile by id.
func (r *ProfileRepo) GetProfile(ctx context.Context, id string) (models.Profile, error) {
	var profile models.Profile
	err := r.db.GetContext(ctx, &profile, `SELECT `+profileColumns+` FROM profiles WHERE id=$1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Profile{}, ErrProfileNotFound
	}
	return profile, err
}

// CompleteProfile stores the onboarding fields. The profile row is created
// when the auth trigger has not done it yet.
func (r *ProfileRepo) CompleteProfile(ctx context.Context, id string, update models.ProfileUpdate) (models.Profile, error) {
	query := `INSERT INTO profiles (id, username, first_name, last_name, avatar_url)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (id) DO UPDATE SET username = EXCLUDED.username, first_name = EXCLUDED.first_name,
            last_name = EXCLUDED.last_name, avatar_url = EXCLUDED.avatar_url, updated_at = NOW()
        RETURNING ` + profileColumns

	var profile models.Profile
	err := r.db.GetContext(ctx, &profile, query, id, update.Username, update.FirstName, update.LastName, update.AvatarURL)
	if err != nil {
		if hasCode(err, uniqueViolation) {
			return models.Profile{}, ErrUsernameTaken
		}
		return models.Profile{}, err
	}
	return profile, nil
}
