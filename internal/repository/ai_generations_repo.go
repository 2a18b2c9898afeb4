package repository

import (
	"context"

	"topweb-backend/internal/domain"
)

// NewAIGeneration insert payload for a stored generation
type NewAIGeneration struct {
	ID        string
	UserID    string
	ProjectID string
	Type      string // text | image | video
	Prompt    string
	Result    string
	Model     string
	Status    string
}

type AIGenerationsRepository interface {
	CreateGeneration(ctx context.Context, payload NewAIGeneration) (*domain.AIGeneration, error)
	ListUserGenerations(ctx context.Context, userID string, limit int) ([]*domain.AIGeneration, error)
}
