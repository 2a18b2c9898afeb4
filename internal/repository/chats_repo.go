package repository

import (
	"context"

	"topweb-backend/internal/domain"
)

type ChatsRepository interface {
	CreateConversation(ctx context.Context, sessionID string, messages []domain.ChatMessage) (*domain.ChatConversation, error)
	GetConversationBySession(ctx context.Context, sessionID string) (*domain.ChatConversation, error)
	UpdateConversationMessages(ctx context.Context, id int, messages []domain.ChatMessage) (*domain.ChatConversation, error)
}
