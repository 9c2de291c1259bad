package infra_postgres_chat

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

type messageDB struct {
	ID         uuid.UUID  `db:"id"`
	FromUserID uuid.UUID  `db:"from_user_id"`
	ToUserID   uuid.UUID  `db:"to_user_id"`
	Content    string     `db:"content"`
	SentAt     time.Time  `db:"sent_at"`
	ReadAt     *time.Time `db:"read_at"`
	IsRead     bool       `db:"is_read"`
}

func (m *messageDB) toDomain() model.Message {
	return model.Message{
		ID:         m.ID,
		FromUserID: m.FromUserID,
		ToUserID:   m.ToUserID,
		Content:    m.Content,
		SentAt:     m.SentAt,
		ReadAt:     m.ReadAt,
		IsRead:     m.IsRead,
	}
}

func (d *Driver) Store(ctx context.Context, m model.Message) error {
	query := `
		INSERT INTO messages (id, from_user_id, to_user_id, content, sent_at, is_read)
		VALUES (:id, :from_user_id, :to_user_id, :content, :sent_at, :is_read)
	`

	row := messageDB{
		ID:         m.ID,
		FromUserID: m.FromUserID,
		ToUserID:   m.ToUserID,
		Content:    m.Content,
		SentAt:     m.SentAt,
		IsRead:     m.IsRead,
	}
	if _, err := d.db.NamedExecContext(ctx, query, row); err != nil {
		return fmt.Errorf("failed to store message: %w", err)
	}
	return nil
}

// Conversation returns both directions of a pair's messages, oldest first.
func (d *Driver) Conversation(ctx context.Context, userID, peerID uuid.UUID) ([]model.Message, error) {
	query := `
		SELECT id, from_user_id, to_user_id, content, sent_at, read_at, is_read
		FROM messages
		WHERE (from_user_id = $1 AND to_user_id = $2)
		   OR (from_user_id = $2 AND to_user_id = $1)
		ORDER BY sent_at ASC
	`

	var rows []messageDB
	if err := d.db.SelectContext(ctx, &rows, query, userID, peerID); err != nil {
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}

	messages := make([]model.Message, len(rows))
	for i, row := range rows {
		messages[i] = row.toDomain()
	}
	return messages, nil
}

// MarkRead marks everything the peer sent to the user as read.
func (d *Driver) MarkRead(ctx context.Context, userID, peerID uuid.UUID) error {
	query := `
		UPDATE messages
		SET is_read = true, read_at = $3
		WHERE from_user_id = $2 AND to_user_id = $1 AND NOT is_read
	`

	if _, err := d.db.ExecContext(ctx, query, userID, peerID, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to mark messages read: %w", err)
	}
	return nil
}

func (d *Driver) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	query := `SELECT COUNT(*) FROM messages WHERE to_user_id = $1 AND NOT is_read`

	var count int
	if err := d.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("failed to count unread: %w", err)
	}
	return count, nil
}
