package prompt

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrTemplateUnavailable is returned when a prompt template was not loaded
// at startup. The condition fails the request that needed it, not the
// process.
var ErrTemplateUnavailable = errors.New("prompt template unavailable")

const (
	systemPromptFile     = "system_prompt.txt"
	vocabularyPromptFile = "vocabulary_prompt.txt"
)

// TranscriptLine is one rendered line of conversation history.
type TranscriptLine struct {
	FromUser bool
	Content  string
}

// Templates holds the instruction templates, loaded once at startup and
// read-only afterwards.
type Templates struct {
	system     string
	vocabulary string
}

// Load reads the prompt templates from dir.
func Load(dir string) (*Templates, error) {
	system, err := os.ReadFile(filepath.Join(dir, systemPromptFile))
	if err != nil {
		return nil, fmt.Errorf("loading system prompt: %w", err)
	}
	vocabulary, err := os.ReadFile(filepath.Join(dir, vocabularyPromptFile))
	if err != nil {
		return nil, fmt.Errorf("loading vocabulary prompt: %w", err)
	}

	return &Templates{
		system:     strings.TrimSpace(string(system)),
		vocabulary: strings.TrimSpace(string(vocabulary)),
	}, nil
}

// TutorPrompt assembles the full generation prompt for a tutor reply:
// system instructions, a language directive, a plain-output instruction,
// then the chronological transcript. The output depends only on the inputs.
func (t *Templates) TutorPrompt(nativeLanguage, targetLanguage string, history []TranscriptLine) (string, error) {
	if t == nil || t.system == "" {
		return "", ErrTemplateUnavailable
	}

	directive := fmt.Sprintf(
		"The user's native language is %s. The user is learning %s. You must reply in %s.",
		nativeLanguage, targetLanguage, targetLanguage,
	)

	var transcript strings.Builder
	for _, line := range history {
		if line.FromUser {
			transcript.WriteString("User: ")
		} else {
			transcript.WriteString("AI: ")
		}
		transcript.WriteString(line.Content)
		transcript.WriteString("\n")
	}

	return t.system +
		"\n\n" + directive +
		"\n\nPlease respond with plain text, do not include markdown formatting like ```." +
		"\n\n" + strings.TrimSpace(transcript.String()), nil
}

// VocabularyPrompt fills the vocabulary template with the recent chat
// history and the target language.
func (t *Templates) VocabularyPrompt(recentMessages []string, language string) (string, error) {
	if t == nil || t.vocabulary == "" {
		return "", ErrTemplateUnavailable
	}

	history := "No recent messages."
	if len(recentMessages) > 0 {
		history = strings.Join(recentMessages, "\n")
	}
	if language == "" {
		language = "English"
	}

	return fmt.Sprintf(t.vocabulary, history, language), nil
}
