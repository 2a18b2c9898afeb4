package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"topweb-backend/internal/domain"
	"topweb-backend/internal/repository"
)

// GMBReportGenerator produces a Google Business Profile report for one
// client and month. Split from ReportService so a real Business Profile
// API integration can replace the metrics-source-backed default.
type GMBReportGenerator interface {
	GenerateMonthlyReport(ctx context.Context, clientID int, month string) error
}

// GMBService builds the listing report from the metrics source and stores
// it as a "gmb" report row.
type GMBService struct {
	clients repository.ClientsRepository
	reports repository.ReportsRepository
	metrics MetricsSource
	logger  *zap.Logger
	now     func() time.Time
}

func NewGMBService(clients repository.ClientsRepository, reports repository.ReportsRepository, metrics MetricsSource, logger *zap.Logger) *GMBService {
	return &GMBService{
		clients: clients,
		reports: reports,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

var _ GMBReportGenerator = (*GMBService)(nil)

func (s *GMBService) GenerateMonthlyReport(ctx context.Context, clientID int, month string) error {
	client, err := s.clients.GetClient(ctx, clientID)
	if err != nil {
		return fmt.Errorf("failed to load client %d: %w", clientID, err)
	}
	if client.GMBListingID == "" {
		return fmt.Errorf("client %d has no Google Business listing", clientID)
	}

	payload, err := s.metrics.Fetch(ctx, client, domain.ServiceGMB, month)
	if err != nil {
		return fmt.Errorf("failed to fetch gmb metrics for client %d: %w", clientID, err)
	}

	data, err := json.Marshal(domain.ReportData{
		ClientID:        client.ID,
		BusinessName:    client.BusinessName,
		ReportMonth:     month,
		Metrics:         payload.Metrics,
		Summary:         payload.Summary,
		Recommendations: payload.Recommendations,
		GeneratedAt:     s.now().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal gmb report data: %w", err)
	}

	if _, err := s.reports.CreateReport(ctx, repository.NewReport{
		ClientID:    client.ID,
		ServiceType: domain.ServiceGMB,
		ReportMonth: month,
		Data:        data,
	}); err != nil {
		return fmt.Errorf("failed to store gmb report for client %d: %w", clientID, err)
	}

	s.logger.Info("generated gmb report",
		zap.Int("client_id", client.ID),
		zap.String("month", month),
	)
	return nil
}
