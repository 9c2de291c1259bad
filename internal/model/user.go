package model

import (
	"time"

	"github.com/google/uuid"
)

// Orientation value that matches any gender.
const OrientationBoth = "both"

type User struct {
	ID           uuid.UUID
	Name         string
	Age          int
	Gender       string
	Orientation  string
	Email        string
	PasswordHash string
	Bio          string
	Location     string
	CreatedAt    time.Time
	LastLoginAt  *time.Time

	Profile *MusicProfile
	Images  []string
}

// MusicProfile is replaced wholesale on update or external sync,
// never merged field by field.
type MusicProfile struct {
	UserID  uuid.UUID
	Genres  []string
	Artists []string
	Songs   []string
}

func (p *MusicProfile) IsEmpty() bool {
	return p == nil || (len(p.Genres) == 0 && len(p.Artists) == 0 && len(p.Songs) == 0)
}

type UserImage struct {
	ID       uuid.UUID
	UserID   uuid.UUID
	ImageURL string
}

// Candidate is a profiled user eligible for scoring against a queue owner.
type Candidate struct {
	User    User
	Profile MusicProfile
}
