package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"phishguard-lab/internal/domain/models"
)

// HistoryRepository handles durable threat event persistence.
// The in-memory ring remains the source for the live API; this table
// keeps events beyond the in-memory capacity for offline review.
type HistoryRepository struct {
	pool *pgxpool.Pool
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(pool *pgxpool.Pool) *HistoryRepository {
	return &HistoryRepository{pool: pool}
}

// Record inserts a threat event
func (r *HistoryRepository) Record(ctx context.Context, e models.ThreatEvent) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}

	query := `
		INSERT INTO threat_events (id, level, score, signals, domains, text_snippet, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		e.ID, e.Level, e.Score, e.Signals, e.Domains, e.Text, e.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to record threat event: %w", err)
	}
	return nil
}

// Recent returns the newest threat events, up to limit
func (r *HistoryRepository) Recent(ctx context.Context, limit int) ([]models.ThreatEvent, error) {
	query := `
		SELECT id, level, score, signals, domains, text_snippet, occurred_at
		FROM threat_events
		ORDER BY occurred_at DESC
		LIMIT $1`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list threat events: %w", err)
	}
	defer rows.Close()

	var events []models.ThreatEvent
	for rows.Next() {
		var e models.ThreatEvent
		if err := rows.Scan(&e.ID, &e.Level, &e.Score, &e.Signals, &e.Domains, &e.Text, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan threat event: %w", err)
		}
		events = append(events, e)
	}

	return events, rows.Err()
}

// Clear deletes all recorded threat events
func (r *HistoryRepository) Clear(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM threat_events`)
	if err != nil {
		return fmt.Errorf("failed to clear threat events: %w", err)
	}
	return nil
}

// CountByLevel returns event counts grouped by risk level
func (r *HistoryRepository) CountByLevel(ctx context.Context) (map[models.RiskLevel]int64, error) {
	rows, err := r.pool.Query(ctx, `SELECT level, COUNT(*) FROM threat_events GROUP BY level`)
	if err != nil {
		return nil, fmt.Errorf("failed to count threat events: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.RiskLevel]int64)
	for rows.Next() {
		var level models.RiskLevel
		var count int64
		if err := rows.Scan(&level, &count); err != nil {
			return nil, fmt.Errorf("failed to scan count: %w", err)
		}
		counts[level] = count
	}

	return counts, rows.Err()
}
