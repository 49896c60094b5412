package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/dinoai/dinoai-go/internal/model"
	"github.com/dinoai/dinoai-go/internal/prompt"
)

// recentMessageLimit bounds how much conversation history feeds the daily
// vocabulary generation.
const recentMessageLimit = 20

// VocabularyStore is the vocabulary persistence surface.
// *repository.VocabularyRepository satisfies it.
type VocabularyStore interface {
	Upsert(ctx context.Context, userID int64, date string, payload []byte) error
	GetByUserAndDate(ctx context.Context, userID int64, date string) (*model.VocabularySet, error)
}

// VocabularyService derives the daily vocabulary set from recent
// conversation history. The generation backend is untrusted: any failure to
// produce a schema-valid payload ends in the fixed default payload, never
// in an error or a malformed record.
type VocabularyService struct {
	users     UserStore
	messages  MessageStore
	vocab     VocabularyStore
	templates *prompt.Templates
	gen       Generator
	timeout   time.Duration
}

// NewVocabularyService creates a new VocabularyService. gen may be nil;
// the pipeline then always falls back to the default payload.
func NewVocabularyService(users UserStore, messages MessageStore, vocab VocabularyStore, templates *prompt.Templates, gen Generator, timeout time.Duration) *VocabularyService {
	return &VocabularyService{
		users:     users,
		messages:  messages,
		vocab:     vocab,
		templates: templates,
		gen:       gen,
		timeout:   timeout,
	}
}

// Daily returns the vocabulary set for (owner, today), generating and
// persisting it. Repeat calls on the same day update the existing record
// in place; the unique (user, date) key in the store makes the upsert
// atomic under concurrent calls.
func (s *VocabularyService) Daily(ctx context.Context, callerUsername string, ownerID int64) (*model.VocabularySet, error) {
	caller, err := s.users.GetByUsername(ctx, callerUsername)
	if err != nil {
		return nil, translateUserErr(err)
	}
	if caller.ID != ownerID {
		return nil, ErrForbidden
	}

	date := time.Now().UTC().Format("2006-01-02")

	recent, err := s.messages.ListRecentContentByUser(ctx, ownerID, recentMessageLimit)
	if err != nil {
		return nil, err
	}

	payload := s.generatePayload(ctx, caller, recent)

	if err := s.vocab.Upsert(ctx, ownerID, date, payload); err != nil {
		return nil, err
	}

	return s.vocab.GetByUserAndDate(ctx, ownerID, date)
}

// generatePayload always returns a schema-valid payload.
func (s *VocabularyService) generatePayload(ctx context.Context, caller *model.User, recent []string) []byte {
	if len(recent) == 0 {
		// Cold start: nothing to personalize on yet.
		return defaultVocabularyPayload()
	}

	vocabPrompt, err := s.templates.VocabularyPrompt(recent, caller.LearningLanguage)
	if err != nil {
		slog.Warn("vocabulary prompt unavailable, using default payload", "user", caller.Username, "error", err)
		return defaultVocabularyPayload()
	}

	if s.gen == nil {
		slog.Warn("no generation backend configured, using default vocabulary payload", "user", caller.Username)
		return defaultVocabularyPayload()
	}

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	raw, err := s.gen.Generate(genCtx, vocabPrompt)
	if err != nil {
		slog.Warn("vocabulary generation failed, using default payload", "user", caller.Username, "error", err)
		return defaultVocabularyPayload()
	}

	return validateAndNormalize(raw)
}

// validateAndNormalize turns the raw model output into a valid payload.
// It is total: whatever the input, the result parses and carries a
// non-empty vocabulary array, with the default payload as the fallback
// branch for every malformed shape.
func validateAndNormalize(raw string) []byte {
	fenced, ok := extractFencedJSON(raw)
	if !ok {
		return defaultVocabularyPayload()
	}

	var payload model.VocabularyPayload
	if err := json.Unmarshal([]byte(fenced), &payload); err != nil {
		return defaultVocabularyPayload()
	}
	if len(payload.Vocabulary) == 0 {
		return defaultVocabularyPayload()
	}

	out, err := json.Marshal(payload)
	if err != nil {
		return defaultVocabularyPayload()
	}
	return out
}

// extractFencedJSON pulls the contents of the first ```json fenced block
// out of the model's reply.
func extractFencedJSON(text string) (string, bool) {
	const startMarker = "```json\n"
	const endMarker = "\n```"

	start := strings.Index(text, startMarker)
	if start < 0 {
		return "", false
	}
	rest := text[start+len(startMarker):]

	end := strings.LastIndex(rest, endMarker)
	if end < 0 {
		return "", false
	}

	return strings.TrimSpace(rest[:end]), true
}

// defaultVocabulary is the fixed beginner payload substituted whenever
// generation or validation fails, and for users with no history yet.
var defaultVocabulary = model.VocabularyPayload{
	Vocabulary: []model.VocabularyEntry{
		{Word: "hello", Definition: "A greeting used when meeting someone"},
		{Word: "goodbye", Definition: "A parting phrase used when leaving"},
		{Word: "thank you", Definition: "An expression of gratitude"},
		{Word: "please", Definition: "Used as a polite request"},
		{Word: "yes", Definition: "Used to express agreement or affirmation"},
		{Word: "no", Definition: "Used to express disagreement or negation"},
		{Word: "excuse me", Definition: "Used to politely get attention or apologize"},
		{Word: "sorry", Definition: "Used to express regret or apologize"},
		{Word: "help", Definition: "Assistance or support given to someone"},
		{Word: "welcome", Definition: "A friendly greeting to someone who has arrived"},
	},
}

func defaultVocabularyPayload() []byte {
	out, err := json.Marshal(defaultVocabulary)
	if err != nil {
		// The default is a fixed literal; this cannot fail at runtime.
		panic(err)
	}
	return out
}
