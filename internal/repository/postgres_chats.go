package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"topweb-backend/internal/domain"
)

// PostgresChatsRepository Postgres-backed chat conversation store
type PostgresChatsRepository struct {
	db *sql.DB
}

func NewPostgresChatsRepository(db *sql.DB) *PostgresChatsRepository {
	return &PostgresChatsRepository{db: db}
}

var _ ChatsRepository = (*PostgresChatsRepository)(nil)

const chatColumns = `id, session_id, messages, created_at, updated_at`

func scanConversation(row interface{ Scan(...any) error }) (*domain.ChatConversation, error) {
	var conv domain.ChatConversation
	var raw []byte
	err := row.Scan(&conv.ID, &conv.SessionID, &raw, &conv.CreatedAt, &conv.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(raw, &conv.Messages); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %w", err)
	}
	return &conv, nil
}

func (r *PostgresChatsRepository) CreateConversation(ctx context.Context, sessionID string, messages []domain.ChatMessage) (*domain.ChatConversation, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session_id is required")
	}
	raw, err := json.Marshal(messages)
	if err != nil {
		return nil, fmt.Errorf("failed to encode messages: %w", err)
	}

	query := `
		INSERT INTO chat_conversations (session_id, messages)
		VALUES ($1, $2)
		RETURNING ` + chatColumns

	conv, err := scanConversation(r.db.QueryRowContext(ctx, query, sessionID, raw))
	if err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	return conv, nil
}

func (r *PostgresChatsRepository) GetConversationBySession(ctx context.Context, sessionID string) (*domain.ChatConversation, error) {
	query := `SELECT ` + chatColumns + ` FROM chat_conversations WHERE session_id = $1 ORDER BY created_at DESC LIMIT 1`

	conv, err := scanConversation(r.db.QueryRowContext(ctx, query, sessionID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	return conv, nil
}

func (r *PostgresChatsRepository) UpdateConversationMessages(ctx context.Context, id int, messages []domain.ChatMessage) (*domain.ChatConversation, error) {
	raw, err := json.Marshal(messages)
	if err != nil {
		return nil, fmt.Errorf("failed to encode messages: %w", err)
	}

	query := `UPDATE chat_conversations SET messages = $1, updated_at = now() WHERE id = $2 RETURNING ` + chatColumns

	conv, err := scanConversation(r.db.QueryRowContext(ctx, query, raw, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update conversation: %w", err)
	}
	return conv, nil
}
