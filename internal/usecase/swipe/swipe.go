package usecase_swipe

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	infra_postgres_user "github.com/spotilove/core/internal/infra/postgres/user"
	"github.com/spotilove/core/internal/model"
)

var (
	ErrSelfReference = errors.New("cannot swipe on yourself")
	ErrUserNotFound  = errors.New("no such user")
	ErrInternal      = errors.New("internal error")
)

//go:generate mockery --name=SwipeRepository --output=./mocks/swipe_repository --filename=swipe_repository.go
type SwipeRepository interface {
	Upsert(ctx context.Context, s model.Swipe) error
	HasLike(ctx context.Context, fromID, toID uuid.UUID) (bool, error)
	MutualMatchIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	Stats(ctx context.Context, userID uuid.UUID) (model.SwipeStats, error)
}

//go:generate mockery --name=QueueRepository --output=./mocks/queue_repository --filename=queue_repository.go
type QueueRepository interface {
	Remove(ctx context.Context, ownerID, suggestedID uuid.UUID) error
}

//go:generate mockery --name=UserRepository --output=./mocks/user_repository --filename=user_repository.go
type UserRepository interface {
	LoadByID(ctx context.Context, id uuid.UUID) (model.User, error)
	LoadByIDs(ctx context.Context, ids []uuid.UUID) ([]model.User, error)
}

type Usecase struct {
	SwipeRepository SwipeRepository
	QueueRepository QueueRepository
	UserRepository  UserRepository
}

func New(
	SwipeRepository SwipeRepository,
	QueueRepository QueueRepository,
	UserRepository UserRepository,
) *Usecase {
	return &Usecase{
		SwipeRepository: SwipeRepository,
		QueueRepository: QueueRepository,
		UserRepository:  UserRepository,
	}
}

// Record persists a swipe decision and drops the target from the swiper's
// queue. A repeated swipe on the same pair overwrites the previous decision.
// It reports whether the like completed a mutual match.
func (u *Usecase) Record(ctx context.Context, fromID, toID uuid.UUID, isLike bool) (bool, error) {
	if fromID == toID {
		return false, ErrSelfReference
	}

	if _, err := u.UserRepository.LoadByID(ctx, toID); err != nil {
		if errors.Is(err, infra_postgres_user.ErrUserNotFound) {
			return false, ErrUserNotFound
		}
		return false, errors.Join(ErrInternal, err)
	}

	swipe := model.Swipe{
		FromUserID: fromID,
		ToUserID:   toID,
		IsLike:     isLike,
		CreatedAt:  time.Now().UTC(),
	}
	if err := u.SwipeRepository.Upsert(ctx, swipe); err != nil {
		return false, errors.Join(ErrInternal, err)
	}

	if err := u.QueueRepository.Remove(ctx, fromID, toID); err != nil {
		return false, errors.Join(ErrInternal, err)
	}

	if !isLike {
		return false, nil
	}

	matched, err := u.SwipeRepository.HasLike(ctx, toID, fromID)
	if err != nil {
		return false, errors.Join(ErrInternal, err)
	}

	return matched, nil
}

// Matches derives the mutual-like set at read time. Nothing is stored for a
// match, so unmatching is as simple as one side changing their swipe.
func (u *Usecase) Matches(ctx context.Context, userID uuid.UUID) ([]model.User, error) {
	ids, err := u.SwipeRepository.MutualMatchIDs(ctx, userID)
	if err != nil {
		return nil, errors.Join(ErrInternal, err)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	users, err := u.UserRepository.LoadByIDs(ctx, ids)
	if err != nil {
		return nil, errors.Join(ErrInternal, err)
	}

	return users, nil
}

func (u *Usecase) Stats(ctx context.Context, userID uuid.UUID) (model.SwipeStats, error) {
	stats, err := u.SwipeRepository.Stats(ctx, userID)
	if err != nil {
		return model.SwipeStats{}, errors.Join(ErrInternal, err)
	}

	return stats, nil
}
