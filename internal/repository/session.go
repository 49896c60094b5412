package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dinoai/dinoai-go/internal/model"
)

var ErrSessionNotFound = errors.New("chat session not found")

const sessionColumns = `id, user_id, start_time, end_time, language_used, session_topic, feedback_summary`

// SessionRepository handles chat session persistence operations.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository creates a new SessionRepository.
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new session and sets the generated ID on the struct.
func (r *SessionRepository) Create(ctx context.Context, session *model.ChatSession) error {
	query := `INSERT INTO chat_sessions (user_id, start_time, language_used, session_topic)
		VALUES (?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		session.UserID, session.StartTime, session.LanguageUsed, session.SessionTopic,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	session.ID = id
	return nil
}

// GetByID retrieves a session by ID.
func (r *SessionRepository) GetByID(ctx context.Context, id int64) (*model.ChatSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM chat_sessions WHERE id = ?`

	session := &model.ChatSession{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&session.ID, &session.UserID, &session.StartTime, &session.EndTime,
		&session.LanguageUsed, &session.SessionTopic, &session.FeedbackSummary,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	return session, nil
}

// ListByUser retrieves all sessions owned by a user, newest first.
func (r *SessionRepository) ListByUser(ctx context.Context, userID int64) ([]model.ChatSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM chat_sessions WHERE user_id = ? ORDER BY start_time DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []model.ChatSession
	for rows.Next() {
		var s model.ChatSession
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.StartTime, &s.EndTime,
			&s.LanguageUsed, &s.SessionTopic, &s.FeedbackSummary,
		); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}

// SetEndTime marks a session as ended. Re-ending simply overwrites the
// previous end timestamp.
func (r *SessionRepository) SetEndTime(ctx context.Context, id int64, endTime time.Time) error {
	_, err := r.db.ExecContext(ctx, `UPDATE chat_sessions SET end_time = ? WHERE id = ?`, endTime, id)
	return err
}

// SetFeedback attaches or overwrites the feedback summary of a session.
func (r *SessionRepository) SetFeedback(ctx context.Context, id int64, feedback string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE chat_sessions SET feedback_summary = ? WHERE id = ?`, feedback, id)
	return err
}

// DeleteCascade removes a session and all of its messages in one
// transaction, messages first, so a failure mid-way never leaves orphaned
// messages behind.
func (r *SessionRepository) DeleteCascade(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM messages WHERE session_id = ?`, id); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM chat_sessions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSessionNotFound
	}

	return tx.Commit()
}
