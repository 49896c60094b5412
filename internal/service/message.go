package service

import (
	"context"
	"errors"
	"time"

	"github.com/dinoai/dinoai-go/internal/model"
	"github.com/dinoai/dinoai-go/internal/repository"
)

var (
	ErrContentRequired   = errors.New("content is required")
	ErrInvalidSenderType = errors.New("senderType must be \"user\" or \"bot\"")
	ErrCorrectionOnUser  = errors.New("correctedContent is only valid on bot messages")
)

// MessageStore is the message persistence surface.
// *repository.MessageRepository satisfies it.
type MessageStore interface {
	Create(ctx context.Context, msg *model.Message) error
	ListBySession(ctx context.Context, sessionID int64) ([]model.Message, error)
	ListRecentContentByUser(ctx context.Context, userID int64, limit int) ([]string, error)
}

// MessageService handles the per-session message log. Access is authorized
// through the ownership chain: message -> session -> user.
type MessageService struct {
	users    UserStore
	sessions SessionStore
	messages MessageStore
}

// NewMessageService creates a new MessageService.
func NewMessageService(users UserStore, sessions SessionStore, messages MessageStore) *MessageService {
	return &MessageService{users: users, sessions: sessions, messages: messages}
}

// ListBySession returns the chronological message log of a session the
// caller owns.
func (s *MessageService) ListBySession(ctx context.Context, callerUsername string, sessionID int64) ([]model.Message, error) {
	if err := s.assertSessionOwner(ctx, callerUsername, sessionID); err != nil {
		return nil, err
	}
	return s.messages.ListBySession(ctx, sessionID)
}

// Append adds a message to a session the caller owns. The session
// reference is fixed at creation.
func (s *MessageService) Append(ctx context.Context, callerUsername string, req model.CreateMessageRequest) (*model.Message, error) {
	if req.Content == "" {
		return nil, ErrContentRequired
	}
	if req.SenderType != model.SenderUser && req.SenderType != model.SenderBot {
		return nil, ErrInvalidSenderType
	}
	if req.SenderType == model.SenderUser && req.CorrectedContent != nil {
		return nil, ErrCorrectionOnUser
	}

	if err := s.assertSessionOwner(ctx, callerUsername, req.SessionID); err != nil {
		return nil, err
	}

	msg := &model.Message{
		SessionID:        req.SessionID,
		SenderType:       req.SenderType,
		Content:          req.Content,
		CorrectedContent: req.CorrectedContent,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}

	return msg, nil
}

func (s *MessageService) assertSessionOwner(ctx context.Context, callerUsername string, sessionID int64) error {
	caller, err := s.users.GetByUsername(ctx, callerUsername)
	if err != nil {
		return translateUserErr(err)
	}

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return ErrSessionNotFound
		}
		return err
	}

	if session.UserID != caller.ID {
		return ErrForbidden
	}
	return nil
}
