package repository

import (
	"context"
	"database/sql"
	"fmt"

	"topweb-backend/internal/domain"

	"github.com/lib/pq"
)

// PostgresInquiriesRepository Postgres-backed inquiry store
type PostgresInquiriesRepository struct {
	db *sql.DB
}

func NewPostgresInquiriesRepository(db *sql.DB) *PostgresInquiriesRepository {
	return &PostgresInquiriesRepository{db: db}
}

var _ InquiriesRepository = (*PostgresInquiriesRepository)(nil)

const inquiryColumns = `
	id,
	first_name,
	last_name,
	email,
	COALESCE(phone, '') as phone,
	COALESCE(services, '{}') as services,
	COALESCE(message, '') as message,
	COALESCE(status, 'new') as status,
	created_at`

func scanInquiry(row interface{ Scan(...any) error }) (*domain.Inquiry, error) {
	var q domain.Inquiry
	err := row.Scan(
		&q.ID,
		&q.FirstName,
		&q.LastName,
		&q.Email,
		&q.Phone,
		pq.Array(&q.Services),
		&q.Message,
		&q.Status,
		&q.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if q.Services == nil {
		q.Services = []string{}
	}
	return &q, nil
}

func (r *PostgresInquiriesRepository) CreateInquiry(ctx context.Context, payload NewInquiry) (*domain.Inquiry, error) {
	query := `
		INSERT INTO inquiries (first_name, last_name, email, phone, services, message)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, NULLIF($6, ''))
		RETURNING ` + inquiryColumns

	inquiry, err := scanInquiry(r.db.QueryRowContext(ctx, query,
		payload.FirstName,
		payload.LastName,
		payload.Email,
		payload.Phone,
		pq.Array(payload.Services),
		payload.Message,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create inquiry: %w", err)
	}
	return inquiry, nil
}

func (r *PostgresInquiriesRepository) ListInquiries(ctx context.Context) ([]*domain.Inquiry, error) {
	query := `SELECT ` + inquiryColumns + ` FROM inquiries ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list inquiries: %w", err)
	}
	defer rows.Close()

	inquiries := []*domain.Inquiry{}
	for rows.Next() {
		q, err := scanInquiry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan inquiry: %w", err)
		}
		inquiries = append(inquiries, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate inquiries: %w", err)
	}
	return inquiries, nil
}

func (r *PostgresInquiriesRepository) UpdateInquiryStatus(ctx context.Context, id int, status string) (*domain.Inquiry, error) {
	query := `UPDATE inquiries SET status = $1 WHERE id = $2 RETURNING ` + inquiryColumns

	inquiry, err := scanInquiry(r.db.QueryRowContext(ctx, query, status, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update inquiry: %w", err)
	}
	return inquiry, nil
}
