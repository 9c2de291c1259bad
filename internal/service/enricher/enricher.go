// Package enricher refines queued suggestion scores in the background.
// The serving path hands it batches of freshly queued candidates and keeps
// going: a full job channel drops the batch instead of blocking a request.
package enricher

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/spotilove/core/internal/config"
	infra_postgres_queue "github.com/spotilove/core/internal/infra/postgres/queue"
	"github.com/spotilove/core/internal/model"
)

type ProfileLoader interface {
	LoadByID(ctx context.Context, id uuid.UUID) (model.User, error)
}

type ScoreUpdater interface {
	UpdateScore(ctx context.Context, ownerID, suggestedID uuid.UUID, score float64) error
}

type RemoteScorer interface {
	CompatibilityScore(ctx context.Context, a, b model.MusicProfile) (int, error)
}

type Option func(*Enricher)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Enricher) {
		e.logger = logger
	}
}

type Enricher struct {
	users  ProfileLoader
	queue  ScoreUpdater
	remote RemoteScorer

	jobs        chan model.SuggestionBatch
	limiter     *rate.Limiter
	callTimeout time.Duration
	logger      *slog.Logger
}

// New builds a worker around its own repository handles. The serving path
// and the worker must not share a DB session: pass repositories built on a
// dedicated connection pool.
func New(cfg config.Enricher, users ProfileLoader, queue ScoreUpdater, remote RemoteScorer, opts ...Option) *Enricher {
	e := &Enricher{
		users:       users,
		queue:       queue,
		remote:      remote,
		jobs:        make(chan model.SuggestionBatch, cfg.QueueSize),
		limiter:     rate.NewLimiter(rate.Every(cfg.CallDelay), 1),
		callTimeout: cfg.CallTimeout,
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Submit queues a batch for enrichment without blocking. It reports whether
// the batch was accepted.
func (e *Enricher) Submit(batch model.SuggestionBatch) bool {
	select {
	case e.jobs <- batch:
		return true
	default:
		e.logger.Warn("enrichment channel full, dropping batch",
			"user_id", batch.UserID,
			"candidates", len(batch.CandidateIDs))
		return false
	}
}

// Run drains the job channel until ctx is cancelled.
func (e *Enricher) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case batch := <-e.jobs:
			e.process(ctx, batch)
		}
	}
}

func (e *Enricher) process(ctx context.Context, batch model.SuggestionBatch) {
	owner, err := e.users.LoadByID(ctx, batch.UserID)
	if err != nil {
		e.logger.Warn("enrichment skipped: cannot load owner", "user_id", batch.UserID, "error", err)
		return
	}
	if owner.Profile == nil || owner.Profile.IsEmpty() {
		e.logger.Warn("enrichment skipped: owner has no taste profile", "user_id", batch.UserID)
		return
	}

	for _, candidateID := range batch.CandidateIDs {
		if err := e.limiter.Wait(ctx); err != nil {
			return
		}
		e.enrichOne(ctx, owner, candidateID)
	}
}

func (e *Enricher) enrichOne(ctx context.Context, owner model.User, candidateID uuid.UUID) {
	candidate, err := e.users.LoadByID(ctx, candidateID)
	if err != nil {
		e.logger.Warn("enrichment skipped for candidate", "candidate_id", candidateID, "error", err)
		return
	}
	if candidate.Profile == nil || candidate.Profile.IsEmpty() {
		return
	}

	callCtx, cancel := context.WithTimeout(ctx, e.callTimeout)
	score, err := e.remote.CompatibilityScore(callCtx, *owner.Profile, *candidate.Profile)
	cancel()
	if err != nil {
		e.logger.Warn("remote scoring failed, keeping local score",
			"user_id", owner.ID,
			"candidate_id", candidateID,
			"error", err)
		return
	}

	err = e.queue.UpdateScore(ctx, owner.ID, candidateID, float64(score))
	switch {
	case errors.Is(err, infra_postgres_queue.ErrEntryNotFound):
	case err != nil:
		e.logger.Error("failed to persist enriched score",
			"user_id", owner.ID,
			"candidate_id", candidateID,
			"error", err)
	}
}
