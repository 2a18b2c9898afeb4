package repository

import (
	"context"
	"encoding/json"

	"topweb-backend/internal/domain"
)

// NewWhiteLabelBrand insert payload for a reseller brand
type NewWhiteLabelBrand struct {
	UserID       string
	BrandName    string
	LogoURL      string
	BrandColor   string
	WebsiteURL   string
	ContactEmail string
	ContactPhone string
	Description  string
}

// WhiteLabelBrandUpdate partial update; nil fields are left untouched
type WhiteLabelBrandUpdate struct {
	BrandName    *string
	LogoURL      *string
	BrandColor   *string
	WebsiteURL   *string
	ContactEmail *string
	ContactPhone *string
	Description  *string
	IsActive     *bool
}

// NewWhiteLabelClient insert payload for a brand's end client
type NewWhiteLabelClient struct {
	BrandID         int
	ClientName      string
	ClientEmail     string
	ClientPhone     string
	BusinessName    string
	BusinessURL     string
	ServicesOffered []string
	MonthlyFee      string
}

// WhiteLabelClientUpdate partial update; nil fields are left untouched
type WhiteLabelClientUpdate struct {
	ClientName      *string
	ClientEmail     *string
	ClientPhone     *string
	BusinessName    *string
	BusinessURL     *string
	ServicesOffered *[]string
	MonthlyFee      *string
	Status          *string
}

// NewWhiteLabelReport insert payload for a branded report
type NewWhiteLabelReport struct {
	BrandID         int
	ClientID        int
	ReportType      string
	ReportMonth     string
	Title           string
	Summary         string
	KeyMetrics      json.RawMessage
	Insights        []string
	Recommendations []string
	ReportData      json.RawMessage
}

// WhiteLabelReportUpdate partial update; nil fields are left untouched
type WhiteLabelReportUpdate struct {
	Title           *string
	Summary         *string
	KeyMetrics      *json.RawMessage
	Insights        *[]string
	Recommendations *[]string
	ReportData      *json.RawMessage
	IsDelivered     *bool
}

type WhiteLabelRepository interface {
	CreateBrand(ctx context.Context, payload NewWhiteLabelBrand) (*domain.WhiteLabelBrand, error)
	GetUserBrands(ctx context.Context, userID string) ([]*domain.WhiteLabelBrand, error)
	GetBrand(ctx context.Context, id int) (*domain.WhiteLabelBrand, error)
	UpdateBrand(ctx context.Context, id int, updates WhiteLabelBrandUpdate) (*domain.WhiteLabelBrand, error)
	DeleteBrand(ctx context.Context, id int) error

	CreateBrandClient(ctx context.Context, payload NewWhiteLabelClient) (*domain.WhiteLabelClient, error)
	GetBrandClients(ctx context.Context, brandID int) ([]*domain.WhiteLabelClient, error)
	UpdateBrandClient(ctx context.Context, id int, updates WhiteLabelClientUpdate) (*domain.WhiteLabelClient, error)
	DeleteBrandClient(ctx context.Context, id int) error

	CreateBrandReport(ctx context.Context, payload NewWhiteLabelReport) (*domain.WhiteLabelReport, error)
	GetBrandReports(ctx context.Context, brandID int) ([]*domain.WhiteLabelReport, error)
	GetClientReports(ctx context.Context, clientID int) ([]*domain.WhiteLabelReport, error)
	GetBrandReport(ctx context.Context, id int) (*domain.WhiteLabelReport, error)
	UpdateBrandReport(ctx context.Context, id int, updates WhiteLabelReportUpdate) (*domain.WhiteLabelReport, error)
	DeleteBrandReport(ctx context.Context, id int) error
}
