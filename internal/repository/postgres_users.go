package repository

import (
	"context"
	"database/sql"
	"fmt"

	"topweb-backend/internal/domain"
)

// PostgresUsersRepository Postgres-backed user store
type PostgresUsersRepository struct {
	db *sql.DB
}

func NewPostgresUsersRepository(db *sql.DB) *PostgresUsersRepository {
	return &PostgresUsersRepository{db: db}
}

var _ UsersRepository = (*PostgresUsersRepository)(nil)

const userColumns = `
	id,
	COALESCE(email, '') as email,
	COALESCE(first_name, '') as first_name,
	COALESCE(last_name, '') as last_name,
	COALESCE(profile_image_url, '') as profile_image_url,
	COALESCE(company, '') as company,
	COALESCE(phone, '') as phone,
	COALESCE(subscription, 'free') as subscription,
	COALESCE(subscription_status, 'active') as subscription_status,
	created_at,
	updated_at`

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.FirstName,
		&u.LastName,
		&u.ProfileImageURL,
		&u.Company,
		&u.Phone,
		&u.Subscription,
		&u.SubscriptionStatus,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *PostgresUsersRepository) GetUser(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (r *PostgresUsersRepository) UpsertUser(ctx context.Context, payload UpsertUser) (*domain.User, error) {
	if payload.ID == "" {
		return nil, fmt.Errorf("id is required")
	}

	query := `
		INSERT INTO users (id, email, first_name, last_name, profile_image_url, company, phone)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''))
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			profile_image_url = EXCLUDED.profile_image_url,
			company = EXCLUDED.company,
			phone = EXCLUDED.phone,
			updated_at = now()
		RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRowContext(ctx, query,
		payload.ID,
		payload.Email,
		payload.FirstName,
		payload.LastName,
		payload.ProfileImageURL,
		payload.Company,
		payload.Phone,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to upsert user: %w", err)
	}
	return user, nil
}
