package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"topweb-backend/internal/domain"
)

// PostgresReportsRepository Postgres-backed report store
type PostgresReportsRepository struct {
	db *sql.DB
}

func NewPostgresReportsRepository(db *sql.DB) *PostgresReportsRepository {
	return &PostgresReportsRepository{db: db}
}

var _ ReportsRepository = (*PostgresReportsRepository)(nil)

const reportColumns = `
	id,
	client_id,
	service_type,
	report_month,
	data,
	COALESCE(email_sent, false) as email_sent,
	email_sent_at,
	created_at`

func scanReport(row interface{ Scan(...any) error }) (*domain.Report, error) {
	var rep domain.Report
	var sentAt sql.NullTime
	err := row.Scan(
		&rep.ID,
		&rep.ClientID,
		&rep.ServiceType,
		&rep.ReportMonth,
		&rep.Data,
		&rep.EmailSent,
		&sentAt,
		&rep.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if sentAt.Valid {
		t := sentAt.Time
		rep.EmailSentAt = &t
	}
	return &rep, nil
}

func (r *PostgresReportsRepository) CreateReport(ctx context.Context, payload NewReport) (*domain.Report, error) {
	if payload.ServiceType == "" {
		return nil, fmt.Errorf("service_type is required")
	}
	if payload.ReportMonth == "" {
		return nil, fmt.Errorf("report_month is required")
	}

	// No conflict target: duplicate (client_id, service_type, report_month)
	// rows are allowed and simply accumulate on re-runs.
	query := `
		INSERT INTO reports (client_id, service_type, report_month, data)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + reportColumns

	rep, err := scanReport(r.db.QueryRowContext(ctx, query,
		payload.ClientID,
		payload.ServiceType,
		payload.ReportMonth,
		[]byte(payload.Data),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}
	return rep, nil
}

func (r *PostgresReportsRepository) GetReportsByClient(ctx context.Context, clientID int) ([]*domain.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE client_id = $1 ORDER BY report_month DESC`
	return r.queryReports(ctx, query, clientID)
}

func (r *PostgresReportsRepository) GetReportsByMonth(ctx context.Context, month string) ([]*domain.Report, error) {
	query := `SELECT ` + reportColumns + ` FROM reports WHERE report_month = $1 ORDER BY created_at DESC`
	return r.queryReports(ctx, query, month)
}

func (r *PostgresReportsRepository) queryReports(ctx context.Context, query string, args ...any) ([]*domain.Report, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	reports := []*domain.Report{}
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reports: %w", err)
	}
	return reports, nil
}

func (r *PostgresReportsRepository) MarkEmailSent(ctx context.Context, id int, sentAt time.Time) error {
	query := `UPDATE reports SET email_sent = true, email_sent_at = $1 WHERE id = $2`

	res, err := r.db.ExecContext(ctx, query, sentAt, id)
	if err != nil {
		return fmt.Errorf("failed to mark report sent: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
