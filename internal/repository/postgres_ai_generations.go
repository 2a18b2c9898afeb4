package repository

import (
	"context"
	"database/sql"
	"fmt"

	"topweb-backend/internal/domain"
)

// PostgresAIGenerationsRepository Postgres-backed generation store
type PostgresAIGenerationsRepository struct {
	db *sql.DB
}

func NewPostgresAIGenerationsRepository(db *sql.DB) *PostgresAIGenerationsRepository {
	return &PostgresAIGenerationsRepository{db: db}
}

var _ AIGenerationsRepository = (*PostgresAIGenerationsRepository)(nil)

const aiGenerationColumns = `
	id,
	user_id,
	COALESCE(project_id, '') as project_id,
	type,
	prompt,
	COALESCE(result, '') as result,
	COALESCE(model, '') as model,
	COALESCE(status, 'pending') as status,
	created_at`

func scanGeneration(row interface{ Scan(...any) error }) (*domain.AIGeneration, error) {
	var g domain.AIGeneration
	err := row.Scan(
		&g.ID,
		&g.UserID,
		&g.ProjectID,
		&g.Type,
		&g.Prompt,
		&g.Result,
		&g.Model,
		&g.Status,
		&g.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *PostgresAIGenerationsRepository) CreateGeneration(ctx context.Context, payload NewAIGeneration) (*domain.AIGeneration, error) {
	if payload.ID == "" {
		return nil, fmt.Errorf("id is required")
	}

	query := `
		INSERT INTO ai_generations (id, user_id, project_id, type, prompt, result, model, status)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8)
		RETURNING ` + aiGenerationColumns

	gen, err := scanGeneration(r.db.QueryRowContext(ctx, query,
		payload.ID,
		payload.UserID,
		payload.ProjectID,
		payload.Type,
		payload.Prompt,
		payload.Result,
		payload.Model,
		payload.Status,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create generation: %w", err)
	}
	return gen, nil
}

func (r *PostgresAIGenerationsRepository) ListUserGenerations(ctx context.Context, userID string, limit int) ([]*domain.AIGeneration, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT ` + aiGenerationColumns + ` FROM ai_generations WHERE user_id = $1 ORDER BY created_at DESC LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list generations: %w", err)
	}
	defer rows.Close()

	generations := []*domain.AIGeneration{}
	for rows.Next() {
		g, err := scanGeneration(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan generation: %w", err)
		}
		generations = append(generations, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate generations: %w", err)
	}
	return generations, nil
}
