package domain

import (
	"encoding/json"
	"time"
)

// WhiteLabelBrand a reseller-facing brand an agency partner presents
// reports under. Aligns with scripts/schema.sql white_label_brands.
type WhiteLabelBrand struct {
	ID           int       `json:"id"`
	UserID       string    `json:"userId"`
	BrandName    string    `json:"brandName"`
	LogoURL      string    `json:"logoUrl,omitempty"`
	BrandColor   string    `json:"brandColor"`
	WebsiteURL   string    `json:"websiteUrl,omitempty"`
	ContactEmail string    `json:"contactEmail,omitempty"`
	ContactPhone string    `json:"contactPhone,omitempty"`
	Description  string    `json:"description,omitempty"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// WhiteLabelClient aligns with scripts/schema.sql white_label_clients
type WhiteLabelClient struct {
	ID              int       `json:"id"`
	BrandID         int       `json:"brandId"`
	ClientName      string    `json:"clientName"`
	ClientEmail     string    `json:"clientEmail"`
	ClientPhone     string    `json:"clientPhone,omitempty"`
	BusinessName    string    `json:"businessName,omitempty"`
	BusinessURL     string    `json:"businessUrl,omitempty"`
	ServicesOffered []string  `json:"servicesOffered"`
	MonthlyFee      string    `json:"monthlyFee,omitempty"`
	Status          string    `json:"status"` // active | paused | cancelled
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// WhiteLabelReport aligns with scripts/schema.sql white_label_reports
type WhiteLabelReport struct {
	ID              int             `json:"id"`
	BrandID         int             `json:"brandId"`
	ClientID        int             `json:"clientId"`
	ReportType      string          `json:"reportType"`  // seo | ppc | social | gmb | comprehensive
	ReportMonth     string          `json:"reportMonth"` // YYYY-MM
	Title           string          `json:"title"`
	Summary         string          `json:"summary,omitempty"`
	KeyMetrics      json.RawMessage `json:"keyMetrics"`
	Insights        []string        `json:"insights"`
	Recommendations []string        `json:"recommendations"`
	ReportData      json.RawMessage `json:"reportData"`
	IsDelivered     bool            `json:"isDelivered"`
	DeliveredAt     *time.Time      `json:"deliveredAt,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}
