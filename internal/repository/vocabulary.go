package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dinoai/dinoai-go/internal/model"
)

var ErrVocabularyNotFound = errors.New("vocabulary set not found")

// VocabularyRepository handles daily vocabulary persistence. The table has
// a unique key on (user_id, vocab_date), which makes the upsert atomic with
// respect to concurrent lookups for the same day.
type VocabularyRepository struct {
	db *sql.DB
}

// NewVocabularyRepository creates a new VocabularyRepository.
func NewVocabularyRepository(db *sql.DB) *VocabularyRepository {
	return &VocabularyRepository{db: db}
}

// Upsert inserts the day's vocabulary payload or overwrites the existing
// record for the same (user, date) key.
func (r *VocabularyRepository) Upsert(ctx context.Context, userID int64, date string, payload []byte) error {
	query := `INSERT INTO vocabulary_sets (user_id, vocab_date, vocab_json)
		VALUES (?, ?, ?)
		ON DUPLICATE KEY UPDATE vocab_json = VALUES(vocab_json)`

	_, err := r.db.ExecContext(ctx, query, userID, date, payload)
	return err
}

// GetByUserAndDate retrieves the vocabulary set stored for a user on a
// given calendar date (formatted 2006-01-02).
func (r *VocabularyRepository) GetByUserAndDate(ctx context.Context, userID int64, date string) (*model.VocabularySet, error) {
	query := `SELECT id, user_id, vocab_date, vocab_json
		FROM vocabulary_sets WHERE user_id = ? AND vocab_date = ?`

	set := &model.VocabularySet{}
	var vocabDate time.Time
	err := r.db.QueryRowContext(ctx, query, userID, date).Scan(
		&set.ID, &set.UserID, &vocabDate, &set.Payload,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVocabularyNotFound
		}
		return nil, err
	}

	set.Date = vocabDate.Format("2006-01-02")
	return set, nil
}
