package model

// PromptRequest carries a conversation snapshot for tutor-reply generation.
type PromptRequest struct {
	UserID       int64           `json:"userId"`
	SessionID    int64           `json:"sessionId"`
	LanguageUsed string          `json:"languageUsed"`
	Messages     []PromptMessage `json:"messages"`
}

// PromptMessage is one transcript line in a PromptRequest.
type PromptMessage struct {
	SenderType string `json:"senderType"`
	Content    string `json:"content"`
}
