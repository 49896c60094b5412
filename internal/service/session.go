package service

import (
	"context"
	"errors"
	"time"

	"github.com/dinoai/dinoai-go/internal/model"
	"github.com/dinoai/dinoai-go/internal/repository"
)

var (
	// ErrForbidden means the caller is authenticated but does not own the
	// resource. Handlers map it to 403, never to 401.
	ErrForbidden       = errors.New("resource owned by another user")
	ErrSessionNotFound = errors.New("chat session not found")
	ErrTopicRequired   = errors.New("languageUsed and sessionTopic are required")
)

// SessionStore is the session persistence surface.
// *repository.SessionRepository satisfies it.
type SessionStore interface {
	Create(ctx context.Context, session *model.ChatSession) error
	GetByID(ctx context.Context, id int64) (*model.ChatSession, error)
	ListByUser(ctx context.Context, userID int64) ([]model.ChatSession, error)
	SetEndTime(ctx context.Context, id int64, endTime time.Time) error
	SetFeedback(ctx context.Context, id int64, feedback string) error
	DeleteCascade(ctx context.Context, id int64) error
}

// SessionService handles the chat session lifecycle. Every operation
// resolves the caller from the token subject and checks ownership against
// the stored owner; identifiers from the request are hints only.
type SessionService struct {
	users    UserStore
	sessions SessionStore
}

// NewSessionService creates a new SessionService.
func NewSessionService(users UserStore, sessions SessionStore) *SessionService {
	return &SessionService{users: users, sessions: sessions}
}

// Start creates a new active session owned by the caller. The requested
// owner must be the caller themselves.
func (s *SessionService) Start(ctx context.Context, callerUsername string, ownerID int64, languageUsed, topic string) (*model.ChatSession, error) {
	if languageUsed == "" || topic == "" {
		return nil, ErrTopicRequired
	}

	caller, err := s.resolveCaller(ctx, callerUsername)
	if err != nil {
		return nil, err
	}
	if caller.ID != ownerID {
		return nil, ErrForbidden
	}

	session := &model.ChatSession{
		UserID:       caller.ID,
		StartTime:    time.Now().UTC(),
		LanguageUsed: languageUsed,
		SessionTopic: topic,
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

// End marks a session as ended. Ending an already-ended session just
// overwrites the end timestamp.
func (s *SessionService) End(ctx context.Context, callerUsername string, sessionID int64) (*model.ChatSession, error) {
	session, err := s.ownedSession(ctx, callerUsername, sessionID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.sessions.SetEndTime(ctx, session.ID, now); err != nil {
		return nil, err
	}
	session.EndTime = &now

	return session, nil
}

// AttachFeedback sets or overwrites the session's feedback summary. Valid
// in both the active and ended states.
func (s *SessionService) AttachFeedback(ctx context.Context, callerUsername string, sessionID int64, feedback string) (*model.ChatSession, error) {
	session, err := s.ownedSession(ctx, callerUsername, sessionID)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.SetFeedback(ctx, session.ID, feedback); err != nil {
		return nil, err
	}
	session.FeedbackSummary = &feedback

	return session, nil
}

// Get returns a session the caller owns.
func (s *SessionService) Get(ctx context.Context, callerUsername string, sessionID int64) (*model.ChatSession, error) {
	return s.ownedSession(ctx, callerUsername, sessionID)
}

// ListByUser returns all sessions of the given owner, who must be the
// caller.
func (s *SessionService) ListByUser(ctx context.Context, callerUsername string, ownerID int64) ([]model.ChatSession, error) {
	caller, err := s.resolveCaller(ctx, callerUsername)
	if err != nil {
		return nil, err
	}
	if caller.ID != ownerID {
		return nil, ErrForbidden
	}

	return s.sessions.ListByUser(ctx, ownerID)
}

// Delete removes a session the caller owns together with all of its
// messages.
func (s *SessionService) Delete(ctx context.Context, callerUsername string, sessionID int64) error {
	session, err := s.ownedSession(ctx, callerUsername, sessionID)
	if err != nil {
		return err
	}

	if err := s.sessions.DeleteCascade(ctx, session.ID); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return ErrSessionNotFound
		}
		return err
	}
	return nil
}

// ownedSession fetches a session and asserts the caller owns it. Not-found
// is reported before ownership so callers cannot probe foreign IDs apart
// from learning they exist, matching the 404-then-403 order of the API.
func (s *SessionService) ownedSession(ctx context.Context, callerUsername string, sessionID int64) (*model.ChatSession, error) {
	caller, err := s.resolveCaller(ctx, callerUsername)
	if err != nil {
		return nil, err
	}

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if session.UserID != caller.ID {
		return nil, ErrForbidden
	}

	return session, nil
}

func (s *SessionService) resolveCaller(ctx context.Context, username string) (*model.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, translateUserErr(err)
	}
	return user, nil
}
