package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"topweb-backend/internal/domain"

	"github.com/lib/pq"
)

// PostgresClientsRepository Postgres-backed client store
type PostgresClientsRepository struct {
	db *sql.DB
}

func NewPostgresClientsRepository(db *sql.DB) *PostgresClientsRepository {
	return &PostgresClientsRepository{db: db}
}

var _ ClientsRepository = (*PostgresClientsRepository)(nil)

const clientColumns = `
	id,
	business_name,
	contact_email,
	COALESCE(contact_phone, '') as contact_phone,
	COALESCE(address, '') as address,
	COALESCE(gmb_listing_id, '') as gmb_listing_id,
	COALESCE(website_url, '') as website_url,
	COALESCE(services, '{}') as services,
	COALESCE(status, 'active') as status,
	created_at,
	updated_at`

func scanClient(row interface{ Scan(...any) error }) (*domain.Client, error) {
	var c domain.Client
	err := row.Scan(
		&c.ID,
		&c.BusinessName,
		&c.ContactEmail,
		&c.ContactPhone,
		&c.Address,
		&c.GMBListingID,
		&c.WebsiteURL,
		pq.Array(&c.Services),
		&c.Status,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if c.Services == nil {
		c.Services = []string{}
	}
	return &c, nil
}

func (r *PostgresClientsRepository) CreateClient(ctx context.Context, payload NewClient) (*domain.Client, error) {
	if payload.BusinessName == "" {
		return nil, fmt.Errorf("business_name is required")
	}
	if payload.ContactEmail == "" {
		return nil, fmt.Errorf("contact_email is required")
	}
	status := payload.Status
	if status == "" {
		status = "active"
	}

	query := `
		INSERT INTO clients (business_name, contact_email, contact_phone, address, gmb_listing_id, website_url, services, status)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7, $8)
		RETURNING ` + clientColumns

	client, err := scanClient(r.db.QueryRowContext(ctx, query,
		payload.BusinessName,
		payload.ContactEmail,
		payload.ContactPhone,
		payload.Address,
		payload.GMBListingID,
		payload.WebsiteURL,
		pq.Array(payload.Services),
		status,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return client, nil
}

func (r *PostgresClientsRepository) GetClient(ctx context.Context, id int) (*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`

	client, err := scanClient(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return client, nil
}

func (r *PostgresClientsRepository) ListClients(ctx context.Context) ([]*domain.Client, error) {
	query := `SELECT ` + clientColumns + ` FROM clients ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	clients := []*domain.Client{}
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clients: %w", err)
	}
	return clients, nil
}

func (r *PostgresClientsRepository) UpdateClient(ctx context.Context, id int, updates ClientUpdate) (*domain.Client, error) {
	set := []string{}
	args := []any{}
	argIdx := 1

	add := func(col string, val any) {
		set = append(set, fmt.Sprintf("%s = $%d", col, argIdx))
		args = append(args, val)
		argIdx++
	}

	if updates.BusinessName != nil {
		add("business_name", *updates.BusinessName)
	}
	if updates.ContactEmail != nil {
		add("contact_email", *updates.ContactEmail)
	}
	if updates.ContactPhone != nil {
		add("contact_phone", *updates.ContactPhone)
	}
	if updates.Address != nil {
		add("address", *updates.Address)
	}
	if updates.GMBListingID != nil {
		add("gmb_listing_id", *updates.GMBListingID)
	}
	if updates.WebsiteURL != nil {
		add("website_url", *updates.WebsiteURL)
	}
	if updates.Services != nil {
		add("services", pq.Array(*updates.Services))
	}
	if updates.Status != nil {
		add("status", *updates.Status)
	}

	if len(set) == 0 {
		return r.GetClient(ctx, id)
	}
	set = append(set, "updated_at = now()")

	query := fmt.Sprintf(`UPDATE clients SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(set, ", "), argIdx, clientColumns)
	args = append(args, id)

	client, err := scanClient(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return client, nil
}
