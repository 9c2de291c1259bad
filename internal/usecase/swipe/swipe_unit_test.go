//go:build !integration
// +build !integration

package usecase_swipe

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	infra_postgres_user "github.com/spotilove/core/internal/infra/postgres/user"
	"github.com/spotilove/core/internal/model"
	swipe_mocks "github.com/spotilove/core/internal/usecase/swipe/mocks"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
)

type SwipeUnitSuite struct {
	suite.Suite
}

type resources struct {
	usecase *Usecase
	swipes  *swipe_mocks.SwipeRepository
	queue   *swipe_mocks.QueueRepository
	users   *swipe_mocks.UserRepository
	ctx     context.Context
}

func initResources(t provider.T) *resources {
	swipes := swipe_mocks.NewSwipeRepository(t)
	queue := swipe_mocks.NewQueueRepository(t)
	users := swipe_mocks.NewUserRepository(t)

	return &resources{
		usecase: New(swipes, queue, users),
		swipes:  swipes,
		queue:   queue,
		users:   users,
		ctx:     context.Background(),
	}
}

func TestSwipeUnitSuite(t *testing.T) {
	t.Parallel()
	suite.RunSuite(t, new(SwipeUnitSuite))
}

func (s *SwipeUnitSuite) TestRecord(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		isLike        bool
		setupMocks    func(r *resources, fromID, toID uuid.UUID)
		expectMatched bool
		expectedErr   error
	}{
		{
			name:   "Should record like and report match on mutual like",
			isLike: true,
			setupMocks: func(r *resources, fromID, toID uuid.UUID) {
				r.users.On("LoadByID", r.ctx, toID).Return(model.User{ID: toID}, nil).Once()
				r.swipes.On("Upsert", r.ctx, mock.MatchedBy(func(sw model.Swipe) bool {
					return sw.FromUserID == fromID && sw.ToUserID == toID && sw.IsLike
				})).Return(nil).Once()
				r.queue.On("Remove", r.ctx, fromID, toID).Return(nil).Once()
				r.swipes.On("HasLike", r.ctx, toID, fromID).Return(true, nil).Once()
			},
			expectMatched: true,
		},
		{
			name:   "Should record like without match when not reciprocated",
			isLike: true,
			setupMocks: func(r *resources, fromID, toID uuid.UUID) {
				r.users.On("LoadByID", r.ctx, toID).Return(model.User{ID: toID}, nil).Once()
				r.swipes.On("Upsert", r.ctx, mock.Anything).Return(nil).Once()
				r.queue.On("Remove", r.ctx, fromID, toID).Return(nil).Once()
				r.swipes.On("HasLike", r.ctx, toID, fromID).Return(false, nil).Once()
			},
			expectMatched: false,
		},
		{
			name:   "Should record pass without reciprocity check",
			isLike: false,
			setupMocks: func(r *resources, fromID, toID uuid.UUID) {
				r.users.On("LoadByID", r.ctx, toID).Return(model.User{ID: toID}, nil).Once()
				r.swipes.On("Upsert", r.ctx, mock.MatchedBy(func(sw model.Swipe) bool {
					return !sw.IsLike
				})).Return(nil).Once()
				r.queue.On("Remove", r.ctx, fromID, toID).Return(nil).Once()
			},
			expectMatched: false,
		},
		{
			name:   "Should reject unknown target",
			isLike: true,
			setupMocks: func(r *resources, fromID, toID uuid.UUID) {
				r.users.On("LoadByID", r.ctx, toID).
					Return(model.User{}, infra_postgres_user.ErrUserNotFound).Once()
			},
			expectedErr: ErrUserNotFound,
		},
		{
			name:   "Should wrap storage failures",
			isLike: true,
			setupMocks: func(r *resources, fromID, toID uuid.UUID) {
				r.users.On("LoadByID", r.ctx, toID).Return(model.User{ID: toID}, nil).Once()
				r.swipes.On("Upsert", r.ctx, mock.Anything).
					Return(errors.New("connection reset")).Once()
			},
			expectedErr: ErrInternal,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t provider.T) {
			r := initResources(t)
			fromID, toID := uuid.New(), uuid.New()
			tc.setupMocks(r, fromID, toID)

			matched, err := r.usecase.Record(r.ctx, fromID, toID, tc.isLike)

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expectMatched, matched)
		})
	}
}

func (s *SwipeUnitSuite) TestRecordRejectsSelfSwipe(t provider.T) {
	t.Parallel()

	r := initResources(t)
	id := uuid.New()

	_, err := r.usecase.Record(r.ctx, id, id, true)

	assert.ErrorIs(t, err, ErrSelfReference)
}

func (s *SwipeUnitSuite) TestMatchesAreDerivedAtReadTime(t provider.T) {
	t.Parallel()

	r := initResources(t)
	userID := uuid.New()
	peerA := model.User{ID: uuid.New(), Name: "A"}
	peerB := model.User{ID: uuid.New(), Name: "B"}

	r.swipes.On("MutualMatchIDs", r.ctx, userID).
		Return([]uuid.UUID{peerA.ID, peerB.ID}, nil).Once()
	r.users.On("LoadByIDs", r.ctx, []uuid.UUID{peerA.ID, peerB.ID}).
		Return([]model.User{peerA, peerB}, nil).Once()

	matches, err := r.usecase.Matches(r.ctx, userID)

	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func (s *SwipeUnitSuite) TestMatchesEmptyWithoutMutualLikes(t provider.T) {
	t.Parallel()

	r := initResources(t)
	userID := uuid.New()

	r.swipes.On("MutualMatchIDs", r.ctx, userID).Return(nil, nil).Once()

	matches, err := r.usecase.Matches(r.ctx, userID)

	require.NoError(t, err)
	assert.Empty(t, matches)
}

func (s *SwipeUnitSuite) TestStats(t provider.T) {
	t.Parallel()

	r := initResources(t)
	userID := uuid.New()
	expected := model.SwipeStats{TotalSwipes: 20, Likes: 12, Passes: 8, Matches: 3, LikeRate: 0.6}

	r.swipes.On("Stats", r.ctx, userID).Return(expected, nil).Once()

	stats, err := r.usecase.Stats(r.ctx, userID)

	require.NoError(t, err)
	assert.Equal(t, expected, stats)
}
