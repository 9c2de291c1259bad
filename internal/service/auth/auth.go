// Package auth issues and resolves opaque session tokens backed by redis.
package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	infra_postgres_user "github.com/spotilove/core/internal/infra/postgres/user"
	"github.com/spotilove/core/internal/model"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrSessionNotFound    = errors.New("session not found")
	ErrInternal           = errors.New("internal error")
)

type SessionCache interface {
	Set(key string, value string, ttl time.Duration) error
	Get(key string) (string, error)
	Delete(key string) error
}

type UserLoader interface {
	LoadByEmail(ctx context.Context, email string) (model.User, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID) error
}

type Service struct {
	users    UserLoader
	sessions SessionCache
	ttl      time.Duration
}

func New(users UserLoader, sessions SessionCache, ttl time.Duration) *Service {
	return &Service{
		users:    users,
		sessions: sessions,
		ttl:      ttl,
	}
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Login verifies credentials and issues a fresh session token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (string, model.User, error) {
	user, err := s.users.LoadByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, infra_postgres_user.ErrUserNotFound) {
			return "", model.User{}, ErrInvalidCredentials
		}
		return "", model.User{}, errors.Join(ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", model.User{}, ErrInvalidCredentials
	}

	token := uuid.NewString()
	if err := s.sessions.Set(token, user.ID.String(), s.ttl); err != nil {
		return "", model.User{}, errors.Join(ErrInternal, err)
	}

	if err := s.users.TouchLastLogin(ctx, user.ID); err != nil {
		return "", model.User{}, errors.Join(ErrInternal, err)
	}

	return token, user, nil
}

func (s *Service) Logout(token string) error {
	if err := s.sessions.Delete(token); err != nil {
		return errors.Join(ErrInternal, err)
	}
	return nil
}

// Resolve maps a session token back to the user it was issued for.
func (s *Service) Resolve(token string) (uuid.UUID, error) {
	val, err := s.sessions.Get(token)
	if err != nil {
		return uuid.Nil, errors.Join(ErrInternal, err)
	}
	if val == "" {
		return uuid.Nil, ErrSessionNotFound
	}

	id, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, errors.Join(ErrInternal, err)
	}

	return id, nil
}
