package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"topweb-backend/internal/domain"

	"github.com/lib/pq"
)

// PostgresWhiteLabelRepository Postgres-backed white-label store
// (brands, their end clients, and branded reports)
type PostgresWhiteLabelRepository struct {
	db *sql.DB
}

func NewPostgresWhiteLabelRepository(db *sql.DB) *PostgresWhiteLabelRepository {
	return &PostgresWhiteLabelRepository{db: db}
}

var _ WhiteLabelRepository = (*PostgresWhiteLabelRepository)(nil)

// setBuilder accumulates a dynamic UPDATE ... SET clause
type setBuilder struct {
	set  []string
	args []any
}

func (b *setBuilder) add(col string, val any) {
	b.set = append(b.set, fmt.Sprintf("%s = $%d", col, len(b.args)+1))
	b.args = append(b.args, val)
}

func (b *setBuilder) clause() string {
	return strings.Join(b.set, ", ")
}

// ---- brands ----

const wlBrandColumns = `
	id,
	user_id,
	brand_name,
	COALESCE(logo_url, '') as logo_url,
	COALESCE(brand_color, '#3b82f6') as brand_color,
	COALESCE(website_url, '') as website_url,
	COALESCE(contact_email, '') as contact_email,
	COALESCE(contact_phone, '') as contact_phone,
	COALESCE(description, '') as description,
	COALESCE(is_active, true) as is_active,
	created_at,
	updated_at`

func scanWLBrand(row interface{ Scan(...any) error }) (*domain.WhiteLabelBrand, error) {
	var b domain.WhiteLabelBrand
	err := row.Scan(
		&b.ID, &b.UserID, &b.BrandName, &b.LogoURL, &b.BrandColor,
		&b.WebsiteURL, &b.ContactEmail, &b.ContactPhone, &b.Description,
		&b.IsActive, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *PostgresWhiteLabelRepository) CreateBrand(ctx context.Context, payload NewWhiteLabelBrand) (*domain.WhiteLabelBrand, error) {
	if payload.UserID == "" || payload.BrandName == "" {
		return nil, fmt.Errorf("user_id and brand_name are required")
	}
	color := payload.BrandColor
	if color == "" {
		color = "#3b82f6"
	}

	query := `
		INSERT INTO white_label_brands (user_id, brand_name, logo_url, brand_color, website_url, contact_email, contact_phone, description)
		VALUES ($1, $2, NULLIF($3, ''), $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''))
		RETURNING ` + wlBrandColumns

	brand, err := scanWLBrand(r.db.QueryRowContext(ctx, query,
		payload.UserID, payload.BrandName, payload.LogoURL, color,
		payload.WebsiteURL, payload.ContactEmail, payload.ContactPhone, payload.Description,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create brand: %w", err)
	}
	return brand, nil
}

func (r *PostgresWhiteLabelRepository) GetUserBrands(ctx context.Context, userID string) ([]*domain.WhiteLabelBrand, error) {
	query := `SELECT ` + wlBrandColumns + ` FROM white_label_brands WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	defer rows.Close()

	brands := []*domain.WhiteLabelBrand{}
	for rows.Next() {
		b, err := scanWLBrand(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan brand: %w", err)
		}
		brands = append(brands, b)
	}
	return brands, rows.Err()
}

func (r *PostgresWhiteLabelRepository) GetBrand(ctx context.Context, id int) (*domain.WhiteLabelBrand, error) {
	query := `SELECT ` + wlBrandColumns + ` FROM white_label_brands WHERE id = $1`

	brand, err := scanWLBrand(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get brand: %w", err)
	}
	return brand, nil
}

func (r *PostgresWhiteLabelRepository) UpdateBrand(ctx context.Context, id int, updates WhiteLabelBrandUpdate) (*domain.WhiteLabelBrand, error) {
	b := &setBuilder{}
	if updates.BrandName != nil {
		b.add("brand_name", *updates.BrandName)
	}
	if updates.LogoURL != nil {
		b.add("logo_url", *updates.LogoURL)
	}
	if updates.BrandColor != nil {
		b.add("brand_color", *updates.BrandColor)
	}
	if updates.WebsiteURL != nil {
		b.add("website_url", *updates.WebsiteURL)
	}
	if updates.ContactEmail != nil {
		b.add("contact_email", *updates.ContactEmail)
	}
	if updates.ContactPhone != nil {
		b.add("contact_phone", *updates.ContactPhone)
	}
	if updates.Description != nil {
		b.add("description", *updates.Description)
	}
	if updates.IsActive != nil {
		b.add("is_active", *updates.IsActive)
	}
	if len(b.set) == 0 {
		return r.GetBrand(ctx, id)
	}

	query := fmt.Sprintf(`UPDATE white_label_brands SET %s, updated_at = now() WHERE id = $%d RETURNING %s`,
		b.clause(), len(b.args)+1, wlBrandColumns)
	b.args = append(b.args, id)

	brand, err := scanWLBrand(r.db.QueryRowContext(ctx, query, b.args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update brand: %w", err)
	}
	return brand, nil
}

func (r *PostgresWhiteLabelRepository) DeleteBrand(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM white_label_brands WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete brand: %w", err)
	}
	return nil
}

// ---- brand clients ----

const wlClientColumns = `
	id,
	brand_id,
	client_name,
	client_email,
	COALESCE(client_phone, '') as client_phone,
	COALESCE(business_name, '') as business_name,
	COALESCE(business_url, '') as business_url,
	COALESCE(services_offered, '{}') as services_offered,
	COALESCE(monthly_fee, '') as monthly_fee,
	COALESCE(status, 'active') as status,
	created_at,
	updated_at`

func scanWLClient(row interface{ Scan(...any) error }) (*domain.WhiteLabelClient, error) {
	var c domain.WhiteLabelClient
	err := row.Scan(
		&c.ID, &c.BrandID, &c.ClientName, &c.ClientEmail, &c.ClientPhone,
		&c.BusinessName, &c.BusinessURL, pq.Array(&c.ServicesOffered),
		&c.MonthlyFee, &c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if c.ServicesOffered == nil {
		c.ServicesOffered = []string{}
	}
	return &c, nil
}

func (r *PostgresWhiteLabelRepository) CreateBrandClient(ctx context.Context, payload NewWhiteLabelClient) (*domain.WhiteLabelClient, error) {
	if payload.BrandID == 0 || payload.ClientName == "" || payload.ClientEmail == "" {
		return nil, fmt.Errorf("brand_id, client_name and client_email are required")
	}

	query := `
		INSERT INTO white_label_clients (brand_id, client_name, client_email, client_phone, business_name, business_url, services_offered, monthly_fee)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7, NULLIF($8, ''))
		RETURNING ` + wlClientColumns

	client, err := scanWLClient(r.db.QueryRowContext(ctx, query,
		payload.BrandID, payload.ClientName, payload.ClientEmail, payload.ClientPhone,
		payload.BusinessName, payload.BusinessURL, pq.Array(payload.ServicesOffered), payload.MonthlyFee,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create brand client: %w", err)
	}
	return client, nil
}

func (r *PostgresWhiteLabelRepository) GetBrandClients(ctx context.Context, brandID int) ([]*domain.WhiteLabelClient, error) {
	query := `SELECT ` + wlClientColumns + ` FROM white_label_clients WHERE brand_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, brandID)
	if err != nil {
		return nil, fmt.Errorf("failed to list brand clients: %w", err)
	}
	defer rows.Close()

	clients := []*domain.WhiteLabelClient{}
	for rows.Next() {
		c, err := scanWLClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan brand client: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (r *PostgresWhiteLabelRepository) UpdateBrandClient(ctx context.Context, id int, updates WhiteLabelClientUpdate) (*domain.WhiteLabelClient, error) {
	b := &setBuilder{}
	if updates.ClientName != nil {
		b.add("client_name", *updates.ClientName)
	}
	if updates.ClientEmail != nil {
		b.add("client_email", *updates.ClientEmail)
	}
	if updates.ClientPhone != nil {
		b.add("client_phone", *updates.ClientPhone)
	}
	if updates.BusinessName != nil {
		b.add("business_name", *updates.BusinessName)
	}
	if updates.BusinessURL != nil {
		b.add("business_url", *updates.BusinessURL)
	}
	if updates.ServicesOffered != nil {
		b.add("services_offered", pq.Array(*updates.ServicesOffered))
	}
	if updates.MonthlyFee != nil {
		b.add("monthly_fee", *updates.MonthlyFee)
	}
	if updates.Status != nil {
		b.add("status", *updates.Status)
	}
	if len(b.set) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	query := fmt.Sprintf(`UPDATE white_label_clients SET %s, updated_at = now() WHERE id = $%d RETURNING %s`,
		b.clause(), len(b.args)+1, wlClientColumns)
	b.args = append(b.args, id)

	client, err := scanWLClient(r.db.QueryRowContext(ctx, query, b.args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update brand client: %w", err)
	}
	return client, nil
}

func (r *PostgresWhiteLabelRepository) DeleteBrandClient(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM white_label_clients WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete brand client: %w", err)
	}
	return nil
}

// ---- branded reports ----

const wlReportColumns = `
	id,
	brand_id,
	client_id,
	report_type,
	report_month,
	title,
	COALESCE(summary, '') as summary,
	key_metrics,
	COALESCE(insights, '{}') as insights,
	COALESCE(recommendations, '{}') as recommendations,
	report_data,
	COALESCE(is_delivered, false) as is_delivered,
	delivered_at,
	created_at,
	updated_at`

func scanWLReport(row interface{ Scan(...any) error }) (*domain.WhiteLabelReport, error) {
	var rep domain.WhiteLabelReport
	var deliveredAt sql.NullTime
	err := row.Scan(
		&rep.ID, &rep.BrandID, &rep.ClientID, &rep.ReportType, &rep.ReportMonth,
		&rep.Title, &rep.Summary, &rep.KeyMetrics, pq.Array(&rep.Insights),
		pq.Array(&rep.Recommendations), &rep.ReportData, &rep.IsDelivered,
		&deliveredAt, &rep.CreatedAt, &rep.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if deliveredAt.Valid {
		t := deliveredAt.Time
		rep.DeliveredAt = &t
	}
	if rep.Insights == nil {
		rep.Insights = []string{}
	}
	if rep.Recommendations == nil {
		rep.Recommendations = []string{}
	}
	return &rep, nil
}

func (r *PostgresWhiteLabelRepository) CreateBrandReport(ctx context.Context, payload NewWhiteLabelReport) (*domain.WhiteLabelReport, error) {
	if payload.BrandID == 0 || payload.ClientID == 0 {
		return nil, fmt.Errorf("brand_id and client_id are required")
	}
	if payload.ReportType == "" || payload.ReportMonth == "" || payload.Title == "" {
		return nil, fmt.Errorf("report_type, report_month and title are required")
	}

	query := `
		INSERT INTO white_label_reports (brand_id, client_id, report_type, report_month, title, summary, key_metrics, insights, recommendations, report_data)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9, $10)
		RETURNING ` + wlReportColumns

	rep, err := scanWLReport(r.db.QueryRowContext(ctx, query,
		payload.BrandID, payload.ClientID, payload.ReportType, payload.ReportMonth,
		payload.Title, payload.Summary, []byte(payload.KeyMetrics),
		pq.Array(payload.Insights), pq.Array(payload.Recommendations), []byte(payload.ReportData),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create branded report: %w", err)
	}
	return rep, nil
}

func (r *PostgresWhiteLabelRepository) GetBrandReports(ctx context.Context, brandID int) ([]*domain.WhiteLabelReport, error) {
	query := `SELECT ` + wlReportColumns + ` FROM white_label_reports WHERE brand_id = $1 ORDER BY created_at DESC`
	return r.queryWLReports(ctx, query, brandID)
}

func (r *PostgresWhiteLabelRepository) GetClientReports(ctx context.Context, clientID int) ([]*domain.WhiteLabelReport, error) {
	query := `SELECT ` + wlReportColumns + ` FROM white_label_reports WHERE client_id = $1 ORDER BY created_at DESC`
	return r.queryWLReports(ctx, query, clientID)
}

func (r *PostgresWhiteLabelRepository) queryWLReports(ctx context.Context, query string, args ...any) ([]*domain.WhiteLabelReport, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list branded reports: %w", err)
	}
	defer rows.Close()

	reports := []*domain.WhiteLabelReport{}
	for rows.Next() {
		rep, err := scanWLReport(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan branded report: %w", err)
		}
		reports = append(reports, rep)
	}
	return reports, rows.Err()
}

func (r *PostgresWhiteLabelRepository) GetBrandReport(ctx context.Context, id int) (*domain.WhiteLabelReport, error) {
	query := `SELECT ` + wlReportColumns + ` FROM white_label_reports WHERE id = $1`

	rep, err := scanWLReport(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get branded report: %w", err)
	}
	return rep, nil
}

func (r *PostgresWhiteLabelRepository) UpdateBrandReport(ctx context.Context, id int, updates WhiteLabelReportUpdate) (*domain.WhiteLabelReport, error) {
	b := &setBuilder{}
	if updates.Title != nil {
		b.add("title", *updates.Title)
	}
	if updates.Summary != nil {
		b.add("summary", *updates.Summary)
	}
	if updates.KeyMetrics != nil {
		b.add("key_metrics", []byte(*updates.KeyMetrics))
	}
	if updates.Insights != nil {
		b.add("insights", pq.Array(*updates.Insights))
	}
	if updates.Recommendations != nil {
		b.add("recommendations", pq.Array(*updates.Recommendations))
	}
	if updates.ReportData != nil {
		b.add("report_data", []byte(*updates.ReportData))
	}
	if updates.IsDelivered != nil {
		b.add("is_delivered", *updates.IsDelivered)
		if *updates.IsDelivered {
			b.set = append(b.set, "delivered_at = now()")
		}
	}
	if len(b.set) == 0 {
		return r.GetBrandReport(ctx, id)
	}

	query := fmt.Sprintf(`UPDATE white_label_reports SET %s, updated_at = now() WHERE id = $%d RETURNING %s`,
		b.clause(), len(b.args)+1, wlReportColumns)
	b.args = append(b.args, id)

	rep, err := scanWLReport(r.db.QueryRowContext(ctx, query, b.args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update branded report: %w", err)
	}
	return rep, nil
}

func (r *PostgresWhiteLabelRepository) DeleteBrandReport(ctx context.Context, id int) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM white_label_reports WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete branded report: %w", err)
	}
	return nil
}
