package infra_postgres_queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/spotilove/core/internal/model"
)

var ErrEntryNotFound = errors.New("queue entry not found")

type Driver struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Driver {
	return &Driver{db: db}
}

type suggestionDB struct {
	UserID          uuid.UUID `db:"user_id"`
	SuggestedUserID uuid.UUID `db:"suggested_user_id"`
	Score           float64   `db:"score"`
	Position        int       `db:"position"`
	CreatedAt       time.Time `db:"created_at"`
}

func (s *suggestionDB) toDomain() model.Suggestion {
	return model.Suggestion{
		UserID:          s.UserID,
		SuggestedUserID: s.SuggestedUserID,
		Score:           s.Score,
		Position:        s.Position,
		CreatedAt:       s.CreatedAt,
	}
}

// Load returns the owner's queue at or above minScore, ordered by score
// descending with position as the stable tie-break.
func (d *Driver) Load(ctx context.Context, ownerID uuid.UUID, minScore float64) ([]model.Suggestion, error) {
	query := `
		SELECT user_id, suggested_user_id, score, position, created_at
		FROM suggestion_queue
		WHERE user_id = $1 AND score >= $2
		ORDER BY score DESC, position ASC
	`

	var rows []suggestionDB
	if err := d.db.SelectContext(ctx, &rows, query, ownerID, minScore); err != nil {
		return nil, fmt.Errorf("failed to load queue: %w", err)
	}

	entries := make([]model.Suggestion, len(rows))
	for i, row := range rows {
		entries[i] = row.toDomain()
	}
	return entries, nil
}

// InsertIfAbsent persists entries, counting how many actually landed. The
// composite primary key is the admission rule: a pair already present is
// skipped silently, which makes concurrent refills for the same owner
// idempotent rather than mutually exclusive.
func (d *Driver) InsertIfAbsent(ctx context.Context, entries []model.Suggestion) (int, error) {
	if len(entries) == 0 {
		return 0, nil
	}

	tx, err := d.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO suggestion_queue (user_id, suggested_user_id, score, position, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id, suggested_user_id) DO NOTHING
	`

	inserted := 0
	for _, e := range entries {
		result, err := tx.ExecContext(ctx, query, e.UserID, e.SuggestedUserID, e.Score, e.Position, e.CreatedAt)
		if err != nil {
			return 0, fmt.Errorf("failed to insert queue entry: %w", err)
		}
		n, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to get rows affected: %w", err)
		}
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return inserted, nil
}

func (d *Driver) Remove(ctx context.Context, ownerID, suggestedID uuid.UUID) error {
	query := `DELETE FROM suggestion_queue WHERE user_id = $1 AND suggested_user_id = $2`

	if _, err := d.db.ExecContext(ctx, query, ownerID, suggestedID); err != nil {
		return fmt.Errorf("failed to remove queue entry: %w", err)
	}
	return nil
}

// UpdateScore rewrites the score in place, same row, same identity.
// ErrEntryNotFound signals the entry was decided on before enrichment
// finished; callers treat it as a skip, not a failure.
func (d *Driver) UpdateScore(ctx context.Context, ownerID, suggestedID uuid.UUID, score float64) error {
	query := `UPDATE suggestion_queue SET score = $3 WHERE user_id = $1 AND suggested_user_id = $2`

	result, err := d.db.ExecContext(ctx, query, ownerID, suggestedID, score)
	if err != nil {
		return fmt.Errorf("failed to update score: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// MaxPosition reports the highest assigned position, -1 on an empty queue,
// so new batches continue from max+1 without colliding with prior ones.
func (d *Driver) MaxPosition(ctx context.Context, ownerID uuid.UUID) (int, error) {
	query := `SELECT COALESCE(MAX(position), -1) FROM suggestion_queue WHERE user_id = $1`

	var position int
	if err := d.db.GetContext(ctx, &position, query, ownerID); err != nil {
		return 0, fmt.Errorf("failed to get max position: %w", err)
	}
	return position, nil
}
