package usecase_chat

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/spotilove/core/internal/model"
)

var (
	ErrNotMatched    = errors.New("users are not matched")
	ErrEmptyMessage  = errors.New("message content is empty")
	ErrSelfReference = errors.New("cannot message yourself")
	ErrInternal      = errors.New("internal error")
)

//go:generate mockery --name=MessageRepository --output=./mocks/message_repository --filename=message_repository.go
type MessageRepository interface {
	Store(ctx context.Context, m model.Message) error
	Conversation(ctx context.Context, userID, peerID uuid.UUID) ([]model.Message, error)
	MarkRead(ctx context.Context, userID, peerID uuid.UUID) error
	UnreadCount(ctx context.Context, userID uuid.UUID) (int, error)
}

//go:generate mockery --name=MatchChecker --output=./mocks/match_checker --filename=match_checker.go
type MatchChecker interface {
	HasLike(ctx context.Context, fromID, toID uuid.UUID) (bool, error)
}

// Notifier pushes a stored message to the recipient's live connection, if
// any. Delivery is best effort.
//
//go:generate mockery --name=Notifier --output=./mocks/notifier --filename=notifier.go
type Notifier interface {
	Deliver(m model.Message)
}

type Usecase struct {
	MessageRepository MessageRepository
	MatchChecker      MatchChecker
	Notifier          Notifier
}

func New(
	MessageRepository MessageRepository,
	MatchChecker MatchChecker,
	Notifier Notifier,
) *Usecase {
	return &Usecase{
		MessageRepository: MessageRepository,
		MatchChecker:      MatchChecker,
		Notifier:          Notifier,
	}
}

// Send stores a message between matched users and pushes it to the recipient.
// Messaging is gated on the match still existing at send time.
func (u *Usecase) Send(ctx context.Context, fromID, toID uuid.UUID, content string) (model.Message, error) {
	if fromID == toID {
		return model.Message{}, ErrSelfReference
	}
	if strings.TrimSpace(content) == "" {
		return model.Message{}, ErrEmptyMessage
	}

	matched, err := u.isMatched(ctx, fromID, toID)
	if err != nil {
		return model.Message{}, err
	}
	if !matched {
		return model.Message{}, ErrNotMatched
	}

	msg := model.Message{
		ID:         uuid.New(),
		FromUserID: fromID,
		ToUserID:   toID,
		Content:    content,
		SentAt:     time.Now().UTC(),
	}
	if err := u.MessageRepository.Store(ctx, msg); err != nil {
		return model.Message{}, errors.Join(ErrInternal, err)
	}

	u.Notifier.Deliver(msg)

	return msg, nil
}

// Conversation returns the full exchange with a peer, oldest first, and
// marks the peer's messages as read.
func (u *Usecase) Conversation(ctx context.Context, userID, peerID uuid.UUID) ([]model.Message, error) {
	messages, err := u.MessageRepository.Conversation(ctx, userID, peerID)
	if err != nil {
		return nil, errors.Join(ErrInternal, err)
	}

	if err := u.MessageRepository.MarkRead(ctx, userID, peerID); err != nil {
		return nil, errors.Join(ErrInternal, err)
	}

	return messages, nil
}

func (u *Usecase) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	count, err := u.MessageRepository.UnreadCount(ctx, userID)
	if err != nil {
		return 0, errors.Join(ErrInternal, err)
	}
	return count, nil
}

func (u *Usecase) isMatched(ctx context.Context, a, b uuid.UUID) (bool, error) {
	forward, err := u.MatchChecker.HasLike(ctx, a, b)
	if err != nil {
		return false, errors.Join(ErrInternal, err)
	}
	if !forward {
		return false, nil
	}

	backward, err := u.MatchChecker.HasLike(ctx, b, a)
	if err != nil {
		return false, errors.Join(ErrInternal, err)
	}

	return backward, nil
}
