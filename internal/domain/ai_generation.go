package domain

import "time"

// AIGeneration aligns with scripts/schema.sql ai_generations
type AIGeneration struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	ProjectID string    `json:"projectId,omitempty"`
	Type      string    `json:"type"` // text | image | video
	Prompt    string    `json:"prompt"`
	Result    string    `json:"result,omitempty"`
	Model     string    `json:"model,omitempty"`
	Status    string    `json:"status"` // pending | completed | failed
	CreatedAt time.Time `json:"createdAt"`
}
