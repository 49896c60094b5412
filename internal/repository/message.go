package repository

import (
	"context"
	"database/sql"

	"github.com/dinoai/dinoai-go/internal/model"
)

// MessageRepository handles message persistence operations. Messages are
// append-only; there is no update path.
type MessageRepository struct {
	db *sql.DB
}

// NewMessageRepository creates a new MessageRepository.
func NewMessageRepository(db *sql.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create appends a message to its session and sets the generated ID.
func (r *MessageRepository) Create(ctx context.Context, msg *model.Message) error {
	query := `INSERT INTO messages (session_id, sender_type, content, corrected_content, created_at)
		VALUES (?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		msg.SessionID, msg.SenderType, msg.Content, msg.CorrectedContent, msg.CreatedAt,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	msg.ID = id
	return nil
}

// ListBySession retrieves all messages of a session in chronological order.
func (r *MessageRepository) ListBySession(ctx context.Context, sessionID int64) ([]model.Message, error) {
	query := `SELECT id, session_id, sender_type, content, corrected_content, created_at
		FROM messages WHERE session_id = ? ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(
			&m.ID, &m.SessionID, &m.SenderType, &m.Content, &m.CorrectedContent, &m.CreatedAt,
		); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}

	return messages, rows.Err()
}

// ListRecentContentByUser returns the content of the newest messages across
// all of a user's sessions, newest first, skipping blank content. Feeds the
// daily vocabulary pipeline.
func (r *MessageRepository) ListRecentContentByUser(ctx context.Context, userID int64, limit int) ([]string, error) {
	query := `SELECT m.content
		FROM messages m
		JOIN chat_sessions s ON s.id = m.session_id
		WHERE s.user_id = ? AND TRIM(m.content) <> ''
		ORDER BY m.created_at DESC, m.id DESC
		LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contents []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		contents = append(contents, c)
	}

	return contents, rows.Err()
}
