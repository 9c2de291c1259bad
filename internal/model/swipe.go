package model

import (
	"time"

	"github.com/google/uuid"
)

// Swipe is a recorded decision. A pair that has any swipe never re-enters the
// from-user's suggestion queue, regardless of direction.
type Swipe struct {
	FromUserID uuid.UUID
	ToUserID   uuid.UUID
	IsLike     bool
	CreatedAt  time.Time
}

// A match is a derived property of two mutual likes. It is never stored.

type SwipeStats struct {
	TotalSwipes int
	Likes       int
	Passes      int
	Matches     int
	LikeRate    float64
}
