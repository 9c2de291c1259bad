package model

import (
	"time"

	"github.com/google/uuid"
)

type Message struct {
	ID         uuid.UUID
	FromUserID uuid.UUID
	ToUserID   uuid.UUID
	Content    string
	SentAt     time.Time
	ReadAt     *time.Time
	IsRead     bool
}
