package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/dinoai/dinoai-go/internal/model"
	"github.com/dinoai/dinoai-go/internal/repository"
)

// In-memory stores used across the service tests.

type fakeUserStore struct {
	users  map[int64]*model.User
	nextID int64

	// Optional links for mirroring the SQL store's cascading delete.
	sessions *fakeSessionStore
	vocab    *fakeVocabularyStore
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[int64]*model.User)}
}

func (f *fakeUserStore) Create(ctx context.Context, user *model.User) error {
	for _, u := range f.users {
		if u.Username == user.Username {
			return repository.ErrDuplicateUsername
		}
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserStore) Update(ctx context.Context, user *model.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return repository.ErrUserNotFound
	}
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserStore) TouchLastLogin(ctx context.Context, id int64) error {
	u, ok := f.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	now := time.Now()
	u.LastLogin = &now
	return nil
}

func (f *fakeUserStore) Delete(ctx context.Context, id int64) error {
	if _, ok := f.users[id]; !ok {
		return repository.ErrUserNotFound
	}
	if f.sessions != nil {
		for sid, s := range f.sessions.sessions {
			if s.UserID == id {
				f.sessions.DeleteCascade(ctx, sid)
			}
		}
	}
	if f.vocab != nil {
		for key, set := range f.vocab.sets {
			if set.UserID == id {
				delete(f.vocab.sets, key)
			}
		}
	}
	delete(f.users, id)
	return nil
}

type fakeSessionStore struct {
	sessions map[int64]*model.ChatSession
	messages *fakeMessageStore
	nextID   int64
}

func newFakeSessionStore(messages *fakeMessageStore) *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[int64]*model.ChatSession), messages: messages}
}

func (f *fakeSessionStore) Create(ctx context.Context, session *model.ChatSession) error {
	f.nextID++
	session.ID = f.nextID
	cp := *session
	f.sessions[session.ID] = &cp
	return nil
}

func (f *fakeSessionStore) GetByID(ctx context.Context, id int64) (*model.ChatSession, error) {
	s, ok := f.sessions[id]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSessionStore) ListByUser(ctx context.Context, userID int64) ([]model.ChatSession, error) {
	var out []model.ChatSession
	for _, s := range f.sessions {
		if s.UserID == userID {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeSessionStore) SetEndTime(ctx context.Context, id int64, endTime time.Time) error {
	s, ok := f.sessions[id]
	if !ok {
		return repository.ErrSessionNotFound
	}
	s.EndTime = &endTime
	return nil
}

func (f *fakeSessionStore) SetFeedback(ctx context.Context, id int64, feedback string) error {
	s, ok := f.sessions[id]
	if !ok {
		return repository.ErrSessionNotFound
	}
	s.FeedbackSummary = &feedback
	return nil
}

func (f *fakeSessionStore) DeleteCascade(ctx context.Context, id int64) error {
	if _, ok := f.sessions[id]; !ok {
		return repository.ErrSessionNotFound
	}
	delete(f.sessions, id)
	if f.messages != nil {
		var kept []model.Message
		for _, m := range f.messages.msgs {
			if m.SessionID != id {
				kept = append(kept, m)
			}
		}
		f.messages.msgs = kept
	}
	return nil
}

type fakeMessageStore struct {
	msgs   []model.Message
	owners map[int64]int64 // sessionID -> userID, for history queries
	nextID int64
}

func newFakeMessageStore() *fakeMessageStore {
	return &fakeMessageStore{owners: make(map[int64]int64)}
}

func (f *fakeMessageStore) Create(ctx context.Context, msg *model.Message) error {
	f.nextID++
	msg.ID = f.nextID
	msg.CreatedAt = time.Now()
	f.msgs = append(f.msgs, *msg)
	return nil
}

func (f *fakeMessageStore) ListBySession(ctx context.Context, sessionID int64) ([]model.Message, error) {
	var out []model.Message
	for _, m := range f.msgs {
		if m.SessionID == sessionID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeMessageStore) ListRecentContentByUser(ctx context.Context, userID int64, limit int) ([]string, error) {
	var out []string
	for i := len(f.msgs) - 1; i >= 0 && len(out) < limit; i-- {
		m := f.msgs[i]
		if f.owners[m.SessionID] != userID {
			continue
		}
		// The SQL store filters with TRIM(content) <> ''.
		if strings.TrimSpace(m.Content) == "" {
			continue
		}
		out = append(out, m.Content)
	}
	return out, nil
}

type fakeVocabularyStore struct {
	sets   map[string]*model.VocabularySet // key userID|date
	nextID int64
}

func newFakeVocabularyStore() *fakeVocabularyStore {
	return &fakeVocabularyStore{sets: make(map[string]*model.VocabularySet)}
}

func vocabKey(userID int64, date string) string {
	return date + "|" + strconv.FormatInt(userID, 10)
}

func (f *fakeVocabularyStore) Upsert(ctx context.Context, userID int64, date string, payload []byte) error {
	key := vocabKey(userID, date)
	if existing, ok := f.sets[key]; ok {
		existing.Payload = append([]byte(nil), payload...)
		return nil
	}
	f.nextID++
	f.sets[key] = &model.VocabularySet{
		ID:      f.nextID,
		UserID:  userID,
		Date:    date,
		Payload: append([]byte(nil), payload...),
	}
	return nil
}

func (f *fakeVocabularyStore) GetByUserAndDate(ctx context.Context, userID int64, date string) (*model.VocabularySet, error) {
	s, ok := f.sets[vocabKey(userID, date)]
	if !ok {
		return nil, repository.ErrVocabularyNotFound
	}
	cp := *s
	return &cp, nil
}

// fakeGenerator returns a canned reply or error.
type fakeGenerator struct {
	reply string
	err   error
	calls int
}

func (f *fakeGenerator) Generate(ctx context.Context, promptText string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

var errGenDown = errors.New("backend down")
