package prompt

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemplates(t *testing.T, system, vocabulary string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, systemPromptFile), []byte(system), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, vocabularyPromptFile), []byte(vocabulary), 0o644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestLoadMissingDir(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("Load() expected error for missing directory")
	}
}

func TestTutorPromptOrder(t *testing.T) {
	dir := writeTemplates(t, "SYSTEM INSTRUCTIONS", "history: %s lang: %s")
	tmpl, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	out, err := tmpl.TutorPrompt("Dutch", "Spanish", []TranscriptLine{
		{FromUser: true, Content: "hola"},
		{FromUser: false, Content: "¡Hola! ¿Cómo estás?"},
	})
	if err != nil {
		t.Fatalf("TutorPrompt() unexpected error: %v", err)
	}

	if !strings.HasPrefix(out, "SYSTEM INSTRUCTIONS") {
		t.Errorf("prompt does not start with system template: %q", out)
	}
	directive := "The user's native language is Dutch. The user is learning Spanish. You must reply in Spanish."
	if !strings.Contains(out, directive) {
		t.Errorf("prompt missing language directive: %q", out)
	}
	if !strings.HasSuffix(out, "User: hola\nAI: ¡Hola! ¿Cómo estás?") {
		t.Errorf("prompt does not end with transcript: %q", out)
	}
	if strings.Index(out, directive) > strings.Index(out, "User: hola") {
		t.Error("language directive must come before the transcript")
	}
}

func TestTutorPromptDeterministic(t *testing.T) {
	dir := writeTemplates(t, "sys", "%s %s")
	tmpl, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	history := []TranscriptLine{{FromUser: true, Content: "bonjour"}}
	a, err := tmpl.TutorPrompt("English", "French", history)
	if err != nil {
		t.Fatalf("TutorPrompt() unexpected error: %v", err)
	}
	b, err := tmpl.TutorPrompt("English", "French", history)
	if err != nil {
		t.Fatalf("TutorPrompt() unexpected error: %v", err)
	}
	if a != b {
		t.Error("TutorPrompt() output differs between identical calls")
	}
}

func TestTutorPromptUnavailable(t *testing.T) {
	var tmpl *Templates
	if _, err := tmpl.TutorPrompt("English", "French", nil); err != ErrTemplateUnavailable {
		t.Errorf("TutorPrompt() on nil templates = %v, want ErrTemplateUnavailable", err)
	}
}

func TestVocabularyPromptFill(t *testing.T) {
	dir := writeTemplates(t, "sys", "history:\n%s\nlanguage: %s")
	tmpl, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	out, err := tmpl.VocabularyPrompt([]string{"first", "second"}, "German")
	if err != nil {
		t.Fatalf("VocabularyPrompt() unexpected error: %v", err)
	}
	if out != "history:\nfirst\nsecond\nlanguage: German" {
		t.Errorf("VocabularyPrompt() = %q", out)
	}
}

func TestVocabularyPromptDefaults(t *testing.T) {
	dir := writeTemplates(t, "sys", "%s|%s")
	tmpl, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() unexpected error: %v", err)
	}

	out, err := tmpl.VocabularyPrompt(nil, "")
	if err != nil {
		t.Fatalf("VocabularyPrompt() unexpected error: %v", err)
	}
	if out != "No recent messages.|English" {
		t.Errorf("VocabularyPrompt() = %q", out)
	}
}
