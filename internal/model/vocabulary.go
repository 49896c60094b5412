package model

import "encoding/json"

// VocabularySet is the daily vocabulary artifact for one user. At most one
// record exists per (UserID, Date); Payload is always a valid JSON object of
// the form {"vocabulary": [{"word", "definition"}, ...]}.
type VocabularySet struct {
	ID      int64           `json:"vocabId"`
	UserID  int64           `json:"userId"`
	Date    string          `json:"date"`
	Payload json.RawMessage `json:"vocab"`
}

// VocabularyPayload is the schema the stored payload conforms to.
type VocabularyPayload struct {
	Vocabulary []VocabularyEntry `json:"vocabulary"`
}

// VocabularyEntry is a single word/definition pair.
type VocabularyEntry struct {
	Word       string `json:"word"`
	Definition string `json:"definition"`
}
