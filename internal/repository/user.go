package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/dinoai/dinoai-go/internal/model"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already exists")
)

const userColumns = `id, username, email, password_hash, learning_language, native_language, created_at, last_login`

// UserRepository handles user persistence operations.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and sets the generated ID on the user struct.
// The unique constraints on username and email are the source of truth for
// duplicate detection.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (username, email, password_hash, learning_language, native_language)
		VALUES (?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		user.Username, user.Email, user.PasswordHash, user.LearningLanguage, user.NativeLanguage,
	)
	if err != nil {
		return translateDuplicate(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	user.ID = id
	return nil
}

// GetByEmail retrieves a user by email address.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

// GetByUsername retrieves a user by username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*model.User, error) {
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.LearningLanguage, &user.NativeLanguage, &user.CreatedAt, &user.LastLogin,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Update persists the mutable profile fields of the given user.
func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	query := `UPDATE users SET username = ?, email = ?, password_hash = ?,
		learning_language = ?, native_language = ? WHERE id = ?`

	_, err := r.db.ExecContext(ctx, query,
		user.Username, user.Email, user.PasswordHash,
		user.LearningLanguage, user.NativeLanguage, user.ID,
	)
	if err != nil {
		return translateDuplicate(err)
	}
	return nil
}

// TouchLastLogin records a successful authentication.
func (r *UserRepository) TouchLastLogin(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE users SET last_login = CURRENT_TIMESTAMP WHERE id = ?`, id)
	return err
}

// Delete removes a user together with their sessions, messages and
// vocabulary sets in one transaction. Children go first so the FK
// constraints hold at every step.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE m FROM messages m JOIN chat_sessions s ON s.id = m.session_id WHERE s.user_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM chat_sessions WHERE user_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM vocabulary_sets WHERE user_id = ?`, id); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}

	return tx.Commit()
}

// translateDuplicate maps a MySQL duplicate-entry error (code 1062) onto the
// repository sentinel for whichever unique key was violated. The match is on
// the key name, not the whole message, since the duplicated value itself is
// part of the error text.
func translateDuplicate(err error) error {
	if err == nil || !strings.Contains(err.Error(), "Duplicate entry") {
		return err
	}
	if strings.Contains(err.Error(), "uq_users_username") {
		return ErrDuplicateUsername
	}
	return ErrDuplicateEmail
}
