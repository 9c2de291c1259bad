package infra_postgres_swipe

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/spotilove/core/internal/model"
)

type Driver struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) *Driver {
	return &Driver{db: db}
}

type swipeDB struct {
	FromUserID uuid.UUID `db:"from_user_id"`
	ToUserID   uuid.UUID `db:"to_user_id"`
	IsLike     bool      `db:"is_like"`
	CreatedAt  time.Time `db:"created_at"`
}

// Upsert records a decision, replacing the direction when the pair was
// already swiped on. A user may change their mind; the pair stays decided.
func (d *Driver) Upsert(ctx context.Context, s model.Swipe) error {
	query := `
		INSERT INTO swipes (from_user_id, to_user_id, is_like, created_at)
		VALUES (:from_user_id, :to_user_id, :is_like, :created_at)
		ON CONFLICT (from_user_id, to_user_id) DO UPDATE SET
			is_like = EXCLUDED.is_like,
			created_at = EXCLUDED.created_at
	`

	row := swipeDB{
		FromUserID: s.FromUserID,
		ToUserID:   s.ToUserID,
		IsLike:     s.IsLike,
		CreatedAt:  s.CreatedAt,
	}
	if _, err := d.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("failed to upsert swipe: %w", err)
	}
	return nil
}

// HasLike reports whether from has an active like toward to.
func (d *Driver) HasLike(ctx context.Context, fromID, toID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM swipes
			WHERE from_user_id = $1 AND to_user_id = $2 AND is_like
		)
	`

	var exists bool
	if err := d.db.GetContext(ctx, &exists, query, fromID, toID); err != nil {
		return false, fmt.Errorf("failed to check like: %w", err)
	}
	return exists, nil
}

// SwipedIDs returns every user the given user has decided on, in either
// direction of outcome. Decided pairs never re-enter the queue.
func (d *Driver) SwipedIDs(ctx context.Context, fromID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT to_user_id FROM swipes WHERE from_user_id = $1`

	var ids []uuid.UUID
	if err := d.db.SelectContext(ctx, &ids, query, fromID); err != nil {
		return nil, fmt.Errorf("failed to load swiped ids: %w", err)
	}
	return ids, nil
}

// MutualMatchIDs derives matches at read time: both directions liked.
// No stored flag, nothing to keep in sync.
func (d *Driver) MutualMatchIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT s1.to_user_id
		FROM swipes s1
		JOIN swipes s2
			ON s2.from_user_id = s1.to_user_id AND s2.to_user_id = s1.from_user_id
		WHERE s1.from_user_id = $1 AND s1.is_like AND s2.is_like
	`

	var ids []uuid.UUID
	if err := d.db.SelectContext(ctx, &ids, query, userID); err != nil {
		return nil, fmt.Errorf("failed to load matches: %w", err)
	}
	return ids, nil
}

func (d *Driver) Stats(ctx context.Context, userID uuid.UUID) (model.SwipeStats, error) {
	query := `
		SELECT
			COUNT(*) AS total,
			COUNT(*) FILTER (WHERE is_like) AS likes,
			COUNT(*) FILTER (WHERE NOT is_like) AS passes,
			(
				SELECT COUNT(*)
				FROM swipes s1
				JOIN swipes s2
					ON s2.from_user_id = s1.to_user_id AND s2.to_user_id = s1.from_user_id
				WHERE s1.from_user_id = $1 AND s1.is_like AND s2.is_like
			) AS matches
		FROM swipes
		WHERE from_user_id = $1
	`

	var row struct {
		Total   int `db:"total"`
		Likes   int `db:"likes"`
		Passes  int `db:"passes"`
		Matches int `db:"matches"`
	}
	if err := d.db.GetContext(ctx, &row, query, userID); err != nil {
		return model.SwipeStats{}, fmt.Errorf("failed to load stats: %w", err)
	}

	stats := model.SwipeStats{
		TotalSwipes: row.Total,
		Likes:       row.Likes,
		Passes:      row.Passes,
		Matches:     row.Matches,
	}
	if stats.TotalSwipes > 0 {
		stats.LikeRate = float64(stats.Likes) / float64(stats.TotalSwipes)
	}
	return stats, nil
}
