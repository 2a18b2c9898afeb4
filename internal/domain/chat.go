package domain

import "time"

// ChatMessage one turn of a chatbot conversation
type ChatMessage struct {
	Role      string `json:"role"` // user | assistant
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"` // RFC 3339
}

// ChatConversation aligns with scripts/schema.sql chat_conversations
type ChatConversation struct {
	ID        int           `json:"id"`
	SessionID string        `json:"sessionId"`
	Messages  []ChatMessage `json:"messages"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// Sentiment 1-5 star rating with a 0-1 confidence, always in range.
type Sentiment struct {
	Rating     int     `json:"rating"`
	Confidence float64 `json:"confidence"`
}
