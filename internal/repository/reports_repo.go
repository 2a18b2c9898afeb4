package repository

import (
	"context"
	"encoding/json"
	"time"

	"topweb-backend/internal/domain"
)

// NewReport insert payload for a report row
type NewReport struct {
	ClientID    int
	ServiceType string // seo | ppc | gmb | social | chatbot
	ReportMonth string // YYYY-MM
	Data        json.RawMessage
}

type ReportsRepository interface {
	CreateReport(ctx context.Context, payload NewReport) (*domain.Report, error)
	GetReportsByClient(ctx context.Context, clientID int) ([]*domain.Report, error)
	// GetReportsByMonth selects by month alone, regardless of email_sent;
	// a re-run of delivery therefore resends already-delivered reports.
	GetReportsByMonth(ctx context.Context, month string) ([]*domain.Report, error)
	MarkEmailSent(ctx context.Context, id int, sentAt time.Time) error
}
