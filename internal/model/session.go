package model

import "time"

// ChatSession represents one conversation between a learner and the tutor.
// UserID is set at creation and never reassigned. A session with a nil
// EndTime is active; setting EndTime ends it. Feedback may be attached in
// either state.
type ChatSession struct {
	ID              int64      `json:"sessionId"`
	UserID          int64      `json:"userId"`
	StartTime       time.Time  `json:"startTime"`
	EndTime         *time.Time `json:"endTime,omitempty"`
	LanguageUsed    string     `json:"languageUsed"`
	SessionTopic    string     `json:"sessionTopic"`
	FeedbackSummary *string    `json:"feedbackSummary,omitempty"`
}
