package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	infra_postgres_user "github.com/spotilove/core/internal/infra/postgres/user"
	"github.com/spotilove/core/internal/model"
)

type fakeSessionCache struct {
	values map[string]string
	err    error
}

func newFakeSessionCache() *fakeSessionCache {
	return &fakeSessionCache{values: make(map[string]string)}
}

func (f *fakeSessionCache) Set(key, value string, _ time.Duration) error {
	if f.err != nil {
		return f.err
	}
	f.values[key] = value
	return nil
}

func (f *fakeSessionCache) Get(key string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.values[key], nil
}

func (f *fakeSessionCache) Delete(key string) error {
	if f.err != nil {
		return f.err
	}
	delete(f.values, key)
	return nil
}

type fakeUserLoader struct {
	user        model.User
	loadErr     error
	lastTouched uuid.UUID
}

func (f *fakeUserLoader) LoadByEmail(_ context.Context, _ string) (model.User, error) {
	if f.loadErr != nil {
		return model.User{}, f.loadErr
	}
	return f.user, nil
}

func (f *fakeUserLoader) TouchLastLogin(_ context.Context, id uuid.UUID) error {
	f.lastTouched = id
	return nil
}

func hashOf(t provider.T, password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

type AuthUnitSuite struct {
	suite.Suite
}

func TestAuthUnitSuite(t *testing.T) {
	t.Parallel()
	suite.RunSuite(t, new(AuthUnitSuite))
}

func (s *AuthUnitSuite) TestLoginIssuesResolvableToken(t provider.T) {
	t.Parallel()

	userID := uuid.New()
	loader := &fakeUserLoader{user: model.User{
		ID:           userID,
		Email:        "a@spotilove.dev",
		PasswordHash: hashOf(t, "secret"),
	}}
	cache := newFakeSessionCache()
	svc := New(loader, cache, time.Hour)

	token, user, err := svc.Login(context.Background(), "a@spotilove.dev", "secret")

	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, userID, user.ID)
	assert.Equal(t, userID, loader.lastTouched)

	resolved, err := svc.Resolve(token)
	require.NoError(t, err)
	assert.Equal(t, userID, resolved)
}

func (s *AuthUnitSuite) TestLoginFailures(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		loader   *fakeUserLoader
		password string
	}{
		{
			name:     "Should reject unknown email",
			loader:   &fakeUserLoader{loadErr: infra_postgres_user.ErrUserNotFound},
			password: "whatever",
		},
		{
			name: "Should reject wrong password",
			loader: &fakeUserLoader{user: model.User{
				ID:           uuid.New(),
				PasswordHash: "$2a$04$invalidhashinvalidhashinvalidhashinvalidhashinvalid",
			}},
			password: "wrong",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t provider.T) {
			svc := New(tc.loader, newFakeSessionCache(), time.Hour)

			_, _, err := svc.Login(context.Background(), "a@spotilove.dev", tc.password)

			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func (s *AuthUnitSuite) TestLogoutInvalidatesToken(t provider.T) {
	t.Parallel()

	userID := uuid.New()
	loader := &fakeUserLoader{user: model.User{
		ID:           userID,
		PasswordHash: hashOf(t, "secret"),
	}}
	cache := newFakeSessionCache()
	svc := New(loader, cache, time.Hour)

	token, _, err := svc.Login(context.Background(), "a@spotilove.dev", "secret")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(token))

	_, err = svc.Resolve(token)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func (s *AuthUnitSuite) TestResolveWrapsCacheFailure(t provider.T) {
	t.Parallel()

	cache := newFakeSessionCache()
	cache.err = errors.New("redis down")
	svc := New(&fakeUserLoader{}, cache, time.Hour)

	_, err := svc.Resolve("some-token")

	assert.ErrorIs(t, err, ErrInternal)
}
