//go:build !integration
// +build !integration

package usecase_suggestion

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	infra_postgres_user "github.com/spotilove/core/internal/infra/postgres/user"
	"github.com/spotilove/core/internal/model"
	suggestion_mocks "github.com/spotilove/core/internal/usecase/suggestion/mocks"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
)

type SuggestionUnitSuite struct {
	suite.Suite
}

type resources struct {
	usecase  *Usecase
	users    *suggestion_mocks.UserRepository
	queue    *suggestion_mocks.QueueRepository
	swipes   *suggestion_mocks.SwipeRepository
	scorer   *suggestion_mocks.Scorer
	enricher *suggestion_mocks.EnrichmentScheduler
	ctx      context.Context
}

func initResources(t provider.T) *resources {
	users := suggestion_mocks.NewUserRepository(t)
	queue := suggestion_mocks.NewQueueRepository(t)
	swipes := suggestion_mocks.NewSwipeRepository(t)
	scorer := suggestion_mocks.NewScorer(t)
	enricher := suggestion_mocks.NewEnrichmentScheduler(t)

	return &resources{
		usecase:  New(users, queue, swipes, scorer, enricher),
		users:    users,
		queue:    queue,
		swipes:   swipes,
		scorer:   scorer,
		enricher: enricher,
		ctx:      context.Background(),
	}
}

type userBuilder struct {
	u model.User
}

func newUserBuilder() *userBuilder {
	id := uuid.New()
	return &userBuilder{
		u: model.User{
			ID:          id,
			Name:        "Test User",
			Age:         25,
			Gender:      "female",
			Orientation: model.OrientationBoth,
			Email:       "test@spotilove.dev",
			Profile: &model.MusicProfile{
				UserID:  id,
				Genres:  []string{"indie", "rock"},
				Artists: []string{"Radiohead"},
				Songs:   []string{"Creep"},
			},
		},
	}
}

func (b *userBuilder) withID(id uuid.UUID) *userBuilder {
	b.u.ID = id
	b.u.Profile.UserID = id
	return b
}

func (b *userBuilder) withoutProfile() *userBuilder {
	b.u.Profile = nil
	return b
}

func (b *userBuilder) build() model.User {
	return b.u
}

func (b *userBuilder) buildCandidate() model.Candidate {
	return model.Candidate{User: b.u, Profile: *b.u.Profile}
}

func suggestionFor(owner, suggested uuid.UUID, score float64, position int) model.Suggestion {
	return model.Suggestion{
		UserID:          owner,
		SuggestedUserID: suggested,
		Score:           score,
		Position:        position,
	}
}

func TestSuggestionUnitSuite(t *testing.T) {
	t.Parallel()
	suite.RunSuite(t, new(SuggestionUnitSuite))
}

func (s *SuggestionUnitSuite) TestServesTopOfDeepQueueWithoutRefill(t provider.T) {
	t.Parallel()

	r := initResources(t)
	owner := newUserBuilder().build()

	ranked := make([]model.Suggestion, 0, 4)
	rankedUsers := make([]model.User, 0, 4)
	for i := 0; i < 4; i++ {
		u := newUserBuilder().build()
		ranked = append(ranked, suggestionFor(owner.ID, u.ID, 90.0-float64(i), i))
		rankedUsers = append(rankedUsers, u)
	}

	r.users.On("LoadByID", r.ctx, owner.ID).Return(owner, nil).Once()
	r.queue.On("Load", r.ctx, owner.ID, relevanceFloor).Return(ranked, nil).Once()
	r.users.On("LoadByIDs", r.ctx, []uuid.UUID{ranked[0].SuggestedUserID, ranked[1].SuggestedUserID}).
		Return(rankedUsers[:2], nil).Once()

	res, err := r.usecase.Suggest(r.ctx, owner.ID, 2)

	require.NoError(t, err)
	assert.Equal(t, StatusReturned, res.Status)
	assert.Equal(t, 4, res.QueueSize)
	require.Len(t, res.Entries, 2)
	assert.Equal(t, rankedUsers[0].ID, res.Entries[0].User.ID)
	assert.Equal(t, 90.0, res.Entries[0].Score)
	assert.Equal(t, rankedUsers[1].ID, res.Entries[1].User.ID)
}

func (s *SuggestionUnitSuite) TestRefillScoresRanksAndSchedulesEnrichment(t provider.T) {
	t.Parallel()

	r := initResources(t)
	owner := newUserBuilder().build()
	swipedAway := uuid.New()

	candA := newUserBuilder().buildCandidate()
	candB := newUserBuilder().buildCandidate()
	candC := newUserBuilder().buildCandidate()

	r.users.On("LoadByID", r.ctx, owner.ID).Return(owner, nil).Once()
	r.queue.On("Load", r.ctx, owner.ID, relevanceFloor).Return(nil, nil).Once()
	r.swipes.On("SwipedIDs", r.ctx, owner.ID).Return([]uuid.UUID{swipedAway}, nil).Once()
	r.users.On("CountCandidates", r.ctx, owner.ID).Return(10, nil).Once()
	r.users.On("FetchCandidates", r.ctx, owner.ID, []uuid.UUID{swipedAway}, 6).
		Return([]model.Candidate{candA, candB, candC}, nil).Once()

	r.scorer.On("Score", owner, candA.User).Return(80.0).Once()
	r.scorer.On("Score", owner, candB.User).Return(55.0).Once()
	r.scorer.On("Score", owner, candC.User).Return(95.0).Once()

	r.queue.On("MaxPosition", r.ctx, owner.ID).Return(4, nil).Once()

	var inserted []model.Suggestion
	r.queue.On("InsertIfAbsent", r.ctx, mock.Anything).
		Run(func(args mock.Arguments) {
			inserted = args.Get(1).([]model.Suggestion)
		}).
		Return(3, nil).Once()

	r.enricher.On("Submit", model.SuggestionBatch{
		UserID:       owner.ID,
		CandidateIDs: []uuid.UUID{candC.User.ID, candA.User.ID},
	}).Return(true).Once()

	refreshed := []model.Suggestion{
		suggestionFor(owner.ID, candC.User.ID, 95.0, 5),
		suggestionFor(owner.ID, candA.User.ID, 80.0, 6),
		suggestionFor(owner.ID, candB.User.ID, 55.0, 7),
	}
	r.queue.On("Load", r.ctx, owner.ID, relevanceFloor).Return(refreshed, nil).Once()
	r.users.On("LoadByIDs", r.ctx, []uuid.UUID{candC.User.ID, candA.User.ID}).
		Return([]model.User{candC.User, candA.User}, nil).Once()

	res, err := r.usecase.Suggest(r.ctx, owner.ID, 2)

	require.NoError(t, err)
	assert.Equal(t, StatusReturned, res.Status)
	require.Len(t, res.Entries, 2)
	assert.Equal(t, candC.User.ID, res.Entries[0].User.ID)
	assert.Equal(t, candA.User.ID, res.Entries[1].User.ID)

	require.Len(t, inserted, 3)
	assert.Equal(t, candC.User.ID, inserted[0].SuggestedUserID)
	assert.Equal(t, 95.0, inserted[0].Score)
	assert.Equal(t, 5, inserted[0].Position)
	assert.Equal(t, candA.User.ID, inserted[1].SuggestedUserID)
	assert.Equal(t, 6, inserted[1].Position)
	assert.Equal(t, candB.User.ID, inserted[2].SuggestedUserID)
	assert.Equal(t, 7, inserted[2].Position)
}

func (s *SuggestionUnitSuite) TestEnrichmentCapAndFloor(t provider.T) {
	t.Parallel()

	r := initResources(t)
	owner := newUserBuilder().build()

	candidates := make([]model.Candidate, 0, 12)
	scores := make(map[uuid.UUID]float64, 12)
	for i := 0; i < 12; i++ {
		c := newUserBuilder().buildCandidate()
		candidates = append(candidates, c)
		// Descending scores, all above the floor except the last one.
		score := 95.0 - float64(i)
		if i == 11 {
			score = 40.0
		}
		scores[c.User.ID] = score
	}

	r.users.On("LoadByID", r.ctx, owner.ID).Return(owner, nil).Once()
	r.queue.On("Load", r.ctx, owner.ID, relevanceFloor).Return(nil, nil).Once()
	r.swipes.On("SwipedIDs", r.ctx, owner.ID).Return(nil, nil).Once()
	r.users.On("CountCandidates", r.ctx, owner.ID).Return(100, nil).Once()
	r.users.On("FetchCandidates", r.ctx, owner.ID, []uuid.UUID{}, 30).
		Return(candidates, nil).Once()

	r.scorer.On("Score", mock.Anything, mock.Anything).
		Return(func(a model.User, b model.User) float64 {
			return scores[b.ID]
		})

	r.queue.On("MaxPosition", r.ctx, owner.ID).Return(-1, nil).Once()
	r.queue.On("InsertIfAbsent", r.ctx, mock.Anything).Return(12, nil).Once()

	var submitted model.SuggestionBatch
	r.enricher.On("Submit", mock.Anything).
		Run(func(args mock.Arguments) {
			submitted = args.Get(0).(model.SuggestionBatch)
		}).
		Return(true).Once()

	r.queue.On("Load", r.ctx, owner.ID, relevanceFloor).Return(nil, nil).Once()

	res, err := r.usecase.Suggest(r.ctx, owner.ID, 10)

	require.NoError(t, err)
	assert.Equal(t, StatusExhausted, res.Status)
	assert.Len(t, submitted.CandidateIDs, enrichCap)
	for _, id := range submitted.CandidateIDs {
		assert.GreaterOrEqual(t, scores[id], enrichFloor)
	}
}

func (s *SuggestionUnitSuite) TestExhaustedWhenNothingLeftToScore(t provider.T) {
	t.Parallel()

	r := initResources(t)
	owner := newUserBuilder().build()
	swiped := []uuid.UUID{uuid.New(), uuid.New()}

	r.users.On("LoadByID", r.ctx, owner.ID).Return(owner, nil).Once()
	r.queue.On("Load", r.ctx, owner.ID, relevanceFloor).Return(nil, nil).Once()
	r.swipes.On("SwipedIDs", r.ctx, owner.ID).Return(swiped, nil).Once()
	r.users.On("CountCandidates", r.ctx, owner.ID).Return(2, nil).Once()

	res, err := r.usecase.Suggest(r.ctx, owner.ID, 10)

	require.NoError(t, err)
	assert.Equal(t, StatusExhausted, res.Status)
	assert.Empty(t, res.Entries)
}

func (s *SuggestionUnitSuite) TestProfileGate(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		setupMocks  func(r *resources, ownerID uuid.UUID)
		expectedErr error
	}{
		{
			name: "Should reject owner without profile",
			setupMocks: func(r *resources, ownerID uuid.UUID) {
				owner := newUserBuilder().withID(ownerID).build()
				owner.Profile = nil
				r.users.On("LoadByID", r.ctx, ownerID).Return(owner, nil).Once()
			},
			expectedErr: ErrProfileMissing,
		},
		{
			name: "Should reject owner with empty profile",
			setupMocks: func(r *resources, ownerID uuid.UUID) {
				owner := newUserBuilder().withID(ownerID).build()
				owner.Profile = &model.MusicProfile{UserID: ownerID}
				r.users.On("LoadByID", r.ctx, ownerID).Return(owner, nil).Once()
			},
			expectedErr: ErrProfileMissing,
		},
		{
			name: "Should report unknown owner",
			setupMocks: func(r *resources, ownerID uuid.UUID) {
				r.users.On("LoadByID", r.ctx, ownerID).
					Return(model.User{}, infra_postgres_user.ErrUserNotFound).Once()
			},
			expectedErr: ErrUserNotFound,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t provider.T) {
			r := initResources(t)
			ownerID := uuid.New()
			tc.setupMocks(r, ownerID)

			_, err := r.usecase.Suggest(r.ctx, ownerID, 10)

			assert.ErrorIs(t, err, tc.expectedErr)
		})
	}
}

func (s *SuggestionUnitSuite) TestSkipsVanishedUsersInServedPage(t provider.T) {
	t.Parallel()

	r := initResources(t)
	owner := newUserBuilder().build()
	kept := newUserBuilder().build()
	vanished := uuid.New()

	// Deep enough that count=2 triggers no refill.
	ranked := []model.Suggestion{
		suggestionFor(owner.ID, vanished, 92.0, 0),
		suggestionFor(owner.ID, kept.ID, 88.0, 1),
		suggestionFor(owner.ID, uuid.New(), 70.0, 2),
		suggestionFor(owner.ID, uuid.New(), 65.0, 3),
	}

	r.users.On("LoadByID", r.ctx, owner.ID).Return(owner, nil).Once()
	r.queue.On("Load", r.ctx, owner.ID, relevanceFloor).Return(ranked, nil).Once()
	r.users.On("LoadByIDs", r.ctx, []uuid.UUID{vanished, kept.ID}).
		Return([]model.User{kept}, nil).Once()

	res, err := r.usecase.Suggest(r.ctx, owner.ID, 2)

	require.NoError(t, err)
	assert.Equal(t, StatusReturned, res.Status)
	require.Len(t, res.Entries, 1)
	assert.Equal(t, kept.ID, res.Entries[0].User.ID)
}

func (s *SuggestionUnitSuite) TestCountClamping(t provider.T) {
	t.Parallel()

	assert.Equal(t, defaultCount, clampCount(0))
	assert.Equal(t, 1, clampCount(-3))
	assert.Equal(t, maxCount, clampCount(500))
	assert.Equal(t, 7, clampCount(7))
}
