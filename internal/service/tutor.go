package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dinoai/dinoai-go/internal/model"
	"github.com/dinoai/dinoai-go/internal/prompt"
)

// ErrGenerationUnavailable means the text-generation backend failed or is
// not configured. For the tutor-reply path this surfaces to the caller;
// the vocabulary pipeline recovers from it locally instead.
var ErrGenerationUnavailable = errors.New("text generation unavailable")

// Generator is an opaque text-completion backend.
type Generator interface {
	Generate(ctx context.Context, promptText string) (string, error)
}

// TutorService produces tutor replies for a conversation snapshot.
type TutorService struct {
	users     UserStore
	templates *prompt.Templates
	gen       Generator
	timeout   time.Duration
}

// NewTutorService creates a new TutorService. gen may be nil when no
// generation backend is configured; replies then fail with
// ErrGenerationUnavailable.
func NewTutorService(users UserStore, templates *prompt.Templates, gen Generator, timeout time.Duration) *TutorService {
	return &TutorService{users: users, templates: templates, gen: gen, timeout: timeout}
}

// Reply assembles the tutor prompt for the request's conversation history
// and returns the generated reply text. The request's user must be the
// caller.
func (s *TutorService) Reply(ctx context.Context, callerUsername string, req model.PromptRequest) (string, error) {
	caller, err := s.users.GetByUsername(ctx, callerUsername)
	if err != nil {
		return "", translateUserErr(err)
	}
	if caller.ID != req.UserID {
		return "", ErrForbidden
	}

	target := req.LanguageUsed
	if target == "" {
		target = caller.LearningLanguage
	}

	history := make([]prompt.TranscriptLine, 0, len(req.Messages))
	for _, m := range req.Messages {
		history = append(history, prompt.TranscriptLine{
			FromUser: m.SenderType != model.SenderBot,
			Content:  m.Content,
		})
	}

	fullPrompt, err := s.templates.TutorPrompt(caller.NativeLanguage, target, history)
	if err != nil {
		return "", err
	}

	if s.gen == nil {
		return "", ErrGenerationUnavailable
	}

	genCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	reply, err := s.gen.Generate(genCtx, fullPrompt)
	if err != nil {
		slog.Warn("tutor reply generation failed", "user", callerUsername, "error", err)
		return "", ErrGenerationUnavailable
	}

	return reply, nil
}
