package model

import "time"

// Sender kinds for messages. A message is authored either by the learner
// or by the tutor; there are no other variants.
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// Message represents a single message in a chat session. SessionID is set
// at creation and never reassigned. CorrectedContent is only ever populated
// on tutor-authored messages.
type Message struct {
	ID               int64     `json:"messageId"`
	SessionID        int64     `json:"sessionId"`
	SenderType       string    `json:"senderType"`
	Content          string    `json:"content"`
	CorrectedContent *string   `json:"correctedContent,omitempty"`
	CreatedAt        time.Time `json:"timestamp"`
}

// CreateMessageRequest represents a message append request.
type CreateMessageRequest struct {
	SessionID        int64   `json:"sessionId"`
	SenderType       string  `json:"senderType"`
	Content          string  `json:"content"`
	CorrectedContent *string `json:"correctedContent"`
}
