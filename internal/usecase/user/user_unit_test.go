//go:build !integration
// +build !integration

package usecase_user

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	infra_postgres_user "github.com/spotilove/core/internal/infra/postgres/user"
	"github.com/spotilove/core/internal/model"
	user_mocks "github.com/spotilove/core/internal/usecase/user/mocks"

	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
)

type UserUnitSuite struct {
	suite.Suite
}

type resources struct {
	usecase *Usecase
	users   *user_mocks.UserRepository
	photos  *user_mocks.PhotoStorage
	ctx     context.Context
}

func initResources(t provider.T) *resources {
	users := user_mocks.NewUserRepository(t)
	photos := user_mocks.NewPhotoStorage(t)

	return &resources{
		usecase: New(users, photos),
		users:   users,
		photos:  photos,
		ctx:     context.Background(),
	}
}

func validRegisterParams() RegisterParams {
	return RegisterParams{
		Name:        "Test User",
		Age:         27,
		Gender:      "female",
		Orientation: model.OrientationBoth,
		Email:       "test@spotilove.dev",
		Password:    "secret",
		Bio:         "loves shoegaze",
		Location:    "Berlin",
		Profile: model.MusicProfile{
			Genres:  []string{"indie"},
			Artists: []string{"Slowdive"},
			Songs:   []string{"Alison"},
		},
	}
}

func TestUserUnitSuite(t *testing.T) {
	t.Parallel()
	suite.RunSuite(t, new(UserUnitSuite))
}

func (s *UserUnitSuite) TestRegister(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name        string
		params      func() RegisterParams
		setupMocks  func(r *resources)
		expectedErr error
	}{
		{
			name:   "Should register user with hashed password and bound profile",
			params: validRegisterParams,
			setupMocks: func(r *resources) {
				r.users.On("Store", r.ctx, mock.MatchedBy(func(u model.User) bool {
					hashOK := bcrypt.CompareHashAndPassword(
						[]byte(u.PasswordHash), []byte("secret")) == nil
					return hashOK && u.Profile != nil && u.Profile.UserID == u.ID
				})).Return(nil).Once()
			},
		},
		{
			name: "Should reject empty music profile",
			params: func() RegisterParams {
				p := validRegisterParams()
				p.Profile = model.MusicProfile{}
				return p
			},
			setupMocks:  func(r *resources) {},
			expectedErr: ErrEmptyProfile,
		},
		{
			name:   "Should surface duplicate email",
			params: validRegisterParams,
			setupMocks: func(r *resources) {
				r.users.On("Store", r.ctx, mock.Anything).
					Return(infra_postgres_user.ErrDuplicateEmail).Once()
			},
			expectedErr: ErrDuplicateEmail,
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t provider.T) {
			r := initResources(t)
			tc.setupMocks(r)

			user, err := r.usecase.Register(r.ctx, tc.params())

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, user.ID)
			assert.NotEqual(t, "secret", user.PasswordHash)
		})
	}
}

func (s *UserUnitSuite) TestReplaceMusicProfileRejectsEmpty(t provider.T) {
	t.Parallel()

	r := initResources(t)

	err := r.usecase.ReplaceMusicProfile(r.ctx, model.MusicProfile{UserID: uuid.New()})

	assert.ErrorIs(t, err, ErrEmptyProfile)
}

func (s *UserUnitSuite) TestUploadPhotoLinksPresignedURL(t provider.T) {
	t.Parallel()

	r := initResources(t)
	userID := uuid.New()
	content := []byte("jpeg-bytes")

	r.users.On("LoadByID", r.ctx, userID).Return(model.User{ID: userID}, nil).Once()
	r.photos.On("Save", r.ctx, mock.MatchedBy(func(p *model.Photo) bool {
		return p.UserID == userID.String() && p.Filename == "me.jpg"
	}), (*string)(nil)).Return("photo/"+userID.String()+"/me.jpg", nil).Once()
	r.photos.On("GeneratePresignedURL", r.ctx, "photo/"+userID.String()+"/me.jpg", presignTTL).
		Return("https://media.local/photo/me.jpg", nil).Once()
	r.users.On("AddImage", r.ctx, mock.MatchedBy(func(img model.UserImage) bool {
		return img.UserID == userID && img.ImageURL == "https://media.local/photo/me.jpg"
	})).Return(nil).Once()

	url, err := r.usecase.UploadPhoto(r.ctx, userID, "me.jpg", content)

	require.NoError(t, err)
	assert.Equal(t, "https://media.local/photo/me.jpg", url)
}

func (s *UserUnitSuite) TestUploadPhotoForUnknownUser(t provider.T) {
	t.Parallel()

	r := initResources(t)
	userID := uuid.New()

	r.users.On("LoadByID", r.ctx, userID).
		Return(model.User{}, infra_postgres_user.ErrUserNotFound).Once()

	_, err := r.usecase.UploadPhoto(r.ctx, userID, "me.jpg", nil)

	assert.ErrorIs(t, err, ErrUserNotFound)
}

func (s *UserUnitSuite) TestPopulateDemoUsers(t provider.T) {
	t.Parallel()

	r := initResources(t)

	r.users.On("Store", r.ctx, mock.MatchedBy(func(u model.User) bool {
		return u.Profile != nil && !u.Profile.IsEmpty()
	})).Return(nil).Times(5)

	created, err := r.usecase.PopulateDemoUsers(r.ctx, 5)

	require.NoError(t, err)
	assert.Equal(t, 5, created)
}

func (s *UserUnitSuite) TestClearUsers(t provider.T) {
	t.Parallel()

	r := initResources(t)
	r.users.On("DeleteAll", r.ctx).Return(42, nil).Once()

	deleted, err := r.usecase.ClearUsers(r.ctx)

	require.NoError(t, err)
	assert.Equal(t, 42, deleted)
}
