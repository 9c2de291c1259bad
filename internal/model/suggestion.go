package model

import (
	"time"

	"github.com/google/uuid"
)

// Suggestion is one pending queue entry. The (UserID, SuggestedUserID) pair is
// its identity; the storage layer enforces uniqueness on it.
type Suggestion struct {
	UserID          uuid.UUID
	SuggestedUserID uuid.UUID
	Score           float64
	Position        int
	CreatedAt       time.Time
}

// SuggestionBatch pairs a queue owner with candidates selected for background
// re-scoring by the external signal.
type SuggestionBatch struct {
	UserID       uuid.UUID
	CandidateIDs []uuid.UUID
}
