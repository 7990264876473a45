package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"phishguard-lab/internal/domain/models"
)

// ProfileRepository handles user profile persistence
type ProfileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

// Get retrieves a profile by user ID. Unknown users get the default
// profile rather than an error.
func (r *ProfileRepository) Get(ctx context.Context, userID string) (models.UserProfile, error) {
	query := `
		SELECT user_id, risk_tolerance, industry, learning_enabled, updated_at
		FROM user_profiles
		WHERE user_id = $1`

	var p models.UserProfile
	err := r.pool.QueryRow(ctx, query, userID).Scan(
		&p.UserID, &p.RiskTolerance, &p.Industry, &p.LearningEnabled, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		p = models.DefaultProfile()
		p.UserID = userID
		return p, nil
	}
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to get profile: %w", err)
	}

	return p, nil
}

// Upsert creates or updates a user profile
func (r *ProfileRepository) Upsert(ctx context.Context, p models.UserProfile) (models.UserProfile, error) {
	p.UpdatedAt = time.Now().UTC()

	query := `
		INSERT INTO user_profiles (user_id, risk_tolerance, industry, learning_enabled, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE SET
			risk_tolerance = EXCLUDED.risk_tolerance,
			industry = EXCLUDED.industry,
			learning_enabled = EXCLUDED.learning_enabled,
			updated_at = EXCLUDED.updated_at
		RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query,
		p.UserID, p.RiskTolerance, p.Industry, p.LearningEnabled, p.UpdatedAt,
	).Scan(&p.UpdatedAt)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to upsert profile: %w", err)
	}

	return p, nil
}

// Delete removes a user profile
func (r *ProfileRepository) Delete(ctx context.Context, userID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM user_profiles WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	return nil
}
