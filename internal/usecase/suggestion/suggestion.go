package usecase_suggestion

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	infra_postgres_user "github.com/spotilove/core/internal/infra/postgres/user"
	"github.com/spotilove/core/internal/model"
)

var (
	ErrUserNotFound   = errors.New("no such user")
	ErrProfileMissing = errors.New("user has no music profile")
	ErrInternal       = errors.New("internal error")
)

const (
	defaultCount = 10
	maxCount     = 50

	// Queue entries below this score are invisible to the serving path.
	relevanceFloor = 50.0

	// A queue shorter than count*refillMultiplier triggers a refill.
	refillMultiplier = 2

	// A refill scores up to count*batchMultiplier fresh candidates, capped.
	batchMultiplier = 3
	maxBatch        = 50

	// Only locally promising candidates are worth an external call.
	enrichFloor = 60.0
	enrichCap   = 10
)

//go:generate mockery --name=UserRepository --output=./mocks/user_repository --filename=user_repository.go
type UserRepository interface {
	LoadByID(ctx context.Context, id uuid.UUID) (model.User, error)
	LoadByIDs(ctx context.Context, ids []uuid.UUID) ([]model.User, error)
	FetchCandidates(ctx context.Context, ownerID uuid.UUID, exclude []uuid.UUID, batchSize int) ([]model.Candidate, error)
	CountCandidates(ctx context.Context, ownerID uuid.UUID) (int, error)
}

//go:generate mockery --name=QueueRepository --output=./mocks/queue_repository --filename=queue_repository.go
type QueueRepository interface {
	Load(ctx context.Context, ownerID uuid.UUID, minScore float64) ([]model.Suggestion, error)
	InsertIfAbsent(ctx context.Context, entries []model.Suggestion) (int, error)
	MaxPosition(ctx context.Context, ownerID uuid.UUID) (int, error)
}

//go:generate mockery --name=SwipeRepository --output=./mocks/swipe_repository --filename=swipe_repository.go
type SwipeRepository interface {
	SwipedIDs(ctx context.Context, fromID uuid.UUID) ([]uuid.UUID, error)
}

//go:generate mockery --name=Scorer --output=./mocks/scorer --filename=scorer.go
type Scorer interface {
	Score(a, b model.User) float64
}

//go:generate mockery --name=EnrichmentScheduler --output=./mocks/enrichment_scheduler --filename=enrichment_scheduler.go
type EnrichmentScheduler interface {
	Submit(batch model.SuggestionBatch) bool
}

type Status string

const (
	StatusReturned  Status = "returned"
	StatusExhausted Status = "exhausted"
)

// Entry is one served suggestion: the candidate joined with its queue state.
type Entry struct {
	User     model.User
	Score    float64
	Position int
}

type Result struct {
	Status    Status
	Entries   []Entry
	QueueSize int
}

type Usecase struct {
	UserRepository  UserRepository
	QueueRepository QueueRepository
	SwipeRepository SwipeRepository
	Scorer          Scorer
	Enricher        EnrichmentScheduler
}

func New(
	UserRepository UserRepository,
	QueueRepository QueueRepository,
	SwipeRepository SwipeRepository,
	Scorer Scorer,
	Enricher EnrichmentScheduler,
) *Usecase {
	return &Usecase{
		UserRepository:  UserRepository,
		QueueRepository: QueueRepository,
		SwipeRepository: SwipeRepository,
		Scorer:          Scorer,
		Enricher:        Enricher,
	}
}

// Suggest serves the top entries of the owner's ranked queue, refilling it
// first when it runs shallow. count outside [1, 50] falls back to defaults.
func (u *Usecase) Suggest(ctx context.Context, ownerID uuid.UUID, count int) (Result, error) {
	count = clampCount(count)

	owner, err := u.UserRepository.LoadByID(ctx, ownerID)
	if err != nil {
		if errors.Is(err, infra_postgres_user.ErrUserNotFound) {
			return Result{}, ErrUserNotFound
		}
		return Result{}, errors.Join(ErrInternal, err)
	}
	if owner.Profile.IsEmpty() {
		return Result{}, ErrProfileMissing
	}

	queue, err := u.QueueRepository.Load(ctx, ownerID, relevanceFloor)
	if err != nil {
		return Result{}, errors.Join(ErrInternal, err)
	}

	if len(queue) < count*refillMultiplier {
		queue, err = u.refill(ctx, owner, count, queue)
		if err != nil {
			return Result{}, err
		}
	}

	if len(queue) == 0 {
		return Result{Status: StatusExhausted}, nil
	}

	top := queue
	if len(top) > count {
		top = top[:count]
	}

	entries, err := u.joinUsers(ctx, top)
	if err != nil {
		return Result{}, err
	}
	if len(entries) == 0 {
		return Result{Status: StatusExhausted}, nil
	}

	return Result{
		Status:    StatusReturned,
		Entries:   entries,
		QueueSize: len(queue),
	}, nil
}

type scoredCandidate struct {
	id    uuid.UUID
	score float64
}

func (u *Usecase) refill(ctx context.Context, owner model.User, count int, queue []model.Suggestion) ([]model.Suggestion, error) {
	swiped, err := u.SwipeRepository.SwipedIDs(ctx, owner.ID)
	if err != nil {
		return nil, errors.Join(ErrInternal, err)
	}
	exclude := excludeSet(queue, swiped)

	total, err := u.UserRepository.CountCandidates(ctx, owner.ID)
	if err != nil {
		return nil, errors.Join(ErrInternal, err)
	}
	if total <= len(exclude) {
		return queue, nil
	}

	batch := count * batchMultiplier
	if batch > maxBatch {
		batch = maxBatch
	}

	candidates, err := u.UserRepository.FetchCandidates(ctx, owner.ID, exclude, batch)
	if err != nil {
		return nil, errors.Join(ErrInternal, err)
	}
	if len(candidates) == 0 {
		return queue, nil
	}

	scored := u.scoreAll(owner, candidates)
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	maxPos, err := u.QueueRepository.MaxPosition(ctx, owner.ID)
	if err != nil {
		return nil, errors.Join(ErrInternal, err)
	}

	now := time.Now().UTC()
	entries := make([]model.Suggestion, 0, len(scored))
	for i, sc := range scored {
		entries = append(entries, model.Suggestion{
			UserID:          owner.ID,
			SuggestedUserID: sc.id,
			Score:           sc.score,
			Position:        maxPos + 1 + i,
			CreatedAt:       now,
		})
	}

	inserted, err := u.QueueRepository.InsertIfAbsent(ctx, entries)
	if err != nil {
		return nil, errors.Join(ErrInternal, err)
	}
	if inserted > 0 {
		u.scheduleEnrichment(owner.ID, scored)
	}

	refreshed, err := u.QueueRepository.Load(ctx, owner.ID, relevanceFloor)
	if err != nil {
		return nil, errors.Join(ErrInternal, err)
	}

	return refreshed, nil
}

func (u *Usecase) scoreAll(owner model.User, candidates []model.Candidate) []scoredCandidate {
	scored := make([]scoredCandidate, len(candidates))

	var wg sync.WaitGroup
	for i, cand := range candidates {
		wg.Add(1)
		go func(i int, cand model.Candidate) {
			defer wg.Done()
			scored[i] = scoredCandidate{
				id:    cand.User.ID,
				score: u.Scorer.Score(owner, cand.User),
			}
		}(i, cand)
	}
	wg.Wait()

	return scored
}

// scheduleEnrichment hands the strongest fresh candidates to the background
// worker. scored must be sorted by score descending.
func (u *Usecase) scheduleEnrichment(ownerID uuid.UUID, scored []scoredCandidate) {
	ids := make([]uuid.UUID, 0, enrichCap)
	for _, sc := range scored {
		if sc.score < enrichFloor {
			break
		}
		ids = append(ids, sc.id)
		if len(ids) == enrichCap {
			break
		}
	}
	if len(ids) == 0 {
		return
	}

	u.Enricher.Submit(model.SuggestionBatch{UserID: ownerID, CandidateIDs: ids})
}

// joinUsers resolves queue entries into full users, preserving queue order.
// Entries whose user vanished or lost their profile are silently skipped.
func (u *Usecase) joinUsers(ctx context.Context, top []model.Suggestion) ([]Entry, error) {
	ids := make([]uuid.UUID, 0, len(top))
	for _, s := range top {
		ids = append(ids, s.SuggestedUserID)
	}

	users, err := u.UserRepository.LoadByIDs(ctx, ids)
	if err != nil {
		return nil, errors.Join(ErrInternal, err)
	}

	byID := make(map[uuid.UUID]model.User, len(users))
	for _, usr := range users {
		byID[usr.ID] = usr
	}

	entries := make([]Entry, 0, len(top))
	for _, s := range top {
		usr, ok := byID[s.SuggestedUserID]
		if !ok || usr.Profile.IsEmpty() {
			continue
		}
		entries = append(entries, Entry{
			User:     usr,
			Score:    s.Score,
			Position: s.Position,
		})
	}

	return entries, nil
}

func clampCount(count int) int {
	if count == 0 {
		return defaultCount
	}
	if count < 1 {
		return 1
	}
	if count > maxCount {
		return maxCount
	}

	return count
}

func excludeSet(queue []model.Suggestion, swiped []uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(queue)+len(swiped))
	out := make([]uuid.UUID, 0, len(queue)+len(swiped))

	for _, s := range queue {
		if _, ok := seen[s.SuggestedUserID]; ok {
			continue
		}
		seen[s.SuggestedUserID] = struct{}{}
		out = append(out, s.SuggestedUserID)
	}
	for _, id := range swiped {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}
