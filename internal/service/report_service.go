package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"

	"go.uber.org/zap"

	"topweb-backend/internal/domain"
	"topweb-backend/internal/repository"
)

// ReportService orchestrates monthly report generation and email delivery.
type ReportService struct {
	clients      repository.ClientsRepository
	reports      repository.ReportsRepository
	metrics      MetricsSource
	gmb          GMBReportGenerator
	mailer       Mailer
	dashboardURL string
	logger       *zap.Logger
	now          func() time.Time
}

func NewReportService(
	clients repository.ClientsRepository,
	reports repository.ReportsRepository,
	metrics MetricsSource,
	gmb GMBReportGenerator,
	mailer Mailer,
	dashboardURL string,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		clients:      clients,
		reports:      reports,
		metrics:      metrics,
		gmb:          gmb,
		mailer:       mailer,
		dashboardURL: dashboardURL,
		logger:       logger,
		now:          time.Now,
	}
}

// GenerateAllReports generates reports for every active client, in listing
// order, one client at a time. The first failing client aborts the run;
// reports already written stay written.
func (s *ReportService) GenerateAllReports(ctx context.Context, month string) error {
	clients, err := s.clients.ListClients(ctx)
	if err != nil {
		return fmt.Errorf("failed to list clients: %w", err)
	}

	generated := 0
	for _, client := range clients {
		if client.Status != "active" {
			continue
		}
		if err := s.generateForClient(ctx, client, month); err != nil {
			return err
		}
		generated++
	}

	s.logger.Info("monthly report generation complete",
		zap.String("month", month),
		zap.Int("clients", generated),
	)
	return nil
}

// GenerateClientReports generates reports for a single client. An unknown
// client id is a silent no-op.
func (s *ReportService) GenerateClientReports(ctx context.Context, clientID int, month string) error {
	client, err := s.clients.GetClient(ctx, clientID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("skipping report generation for unknown client", zap.Int("client_id", clientID))
			return nil
		}
		return fmt.Errorf("failed to load client %d: %w", clientID, err)
	}
	return s.generateForClient(ctx, client, month)
}

// Listing report first when the client subscribes to it and has a listing
// on file, then the remaining subscribed services in a fixed order.
func (s *ReportService) generateForClient(ctx context.Context, client *domain.Client, month string) error {
	if client.HasService(domain.ServiceGMB) && client.GMBListingID != "" {
		if err := s.gmb.GenerateMonthlyReport(ctx, client.ID, month); err != nil {
			return err
		}
	}

	for _, serviceType := range []string{domain.ServiceSEO, domain.ServicePPC, domain.ServiceSocial, domain.ServiceChatbot} {
		if !client.HasService(serviceType) {
			continue
		}
		if err := s.generateServiceReport(ctx, client, serviceType, month); err != nil {
			return err
		}
	}
	return nil
}

func (s *ReportService) generateServiceReport(ctx context.Context, client *domain.Client, serviceType, month string) error {
	payload, err := s.metrics.Fetch(ctx, client, serviceType, month)
	if err != nil {
		return fmt.Errorf("failed to fetch %s metrics for client %d: %w", serviceType, client.ID, err)
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
		return fmt.Errorf("failed to marshal %s report data: %w", serviceType, err)
	}

	if _, err := s.reports.CreateReport(ctx, repository.NewReport{
		ClientID:    client.ID,
		ServiceType: serviceType,
		ReportMonth: month,
		Data:        data,
	}); err != nil {
		return fmt.Errorf("failed to store %s report for client %d: %w", serviceType, client.ID, err)
	}

	s.logger.Info("generated report",
		zap.Int("client_id", client.ID),
		zap.String("service_type", serviceType),
		zap.String("month", month),
	)
	return nil
}

// SendMonthlyReports emails every client their reports for the month as a
// single digest. One client's failure does not block the others; the first
// error encountered is returned after all clients were attempted.
func (s *ReportService) SendMonthlyReports(ctx context.Context, month string) error {
	reports, err := s.reports.GetReportsByMonth(ctx, month)
	if err != nil {
		return fmt.Errorf("failed to load reports for %s: %w", month, err)
	}
	if len(reports) == 0 {
		s.logger.Info("no reports to send", zap.String("month", month))
		return nil
	}

	// Group by client, preserving the order clients first appear in.
	byClient := make(map[int][]*domain.Report)
	var order []int
	for _, r := range reports {
		if _, ok := byClient[r.ClientID]; !ok {
			order = append(order, r.ClientID)
		}
		byClient[r.ClientID] = append(byClient[r.ClientID], r)
	}

	var firstErr error
	for _, clientID := range order {
		client, err := s.clients.GetClient(ctx, clientID)
		if err != nil {
			s.logger.Warn("skipping report delivery, client not resolvable",
				zap.Int("client_id", clientID),
				zap.Error(err),
			)
			continue
		}
		if client.ContactEmail == "" {
			s.logger.Warn("skipping report delivery, client has no contact email",
				zap.Int("client_id", clientID),
			)
			continue
		}

		if err := s.sendClientReportEmail(ctx, client, month, byClient[clientID]); err != nil {
			s.logger.Error("failed to deliver monthly report",
				zap.Int("client_id", clientID),
				zap.String("month", month),
				zap.Error(err),
			)
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	return firstErr
}

var reportEmailTmpl = template.Must(template.New("reportEmail").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333; max-width: 600px; margin: 0 auto;">
  <div style="background: #1a365d; color: #fff; padding: 24px; text-align: center;">
    <h1 style="margin: 0;">Monthly Performance Report</h1>
    <p style="margin: 8px 0 0;">{{.MonthName}}</p>
  </div>
  <div style="padding: 24px;">
    <p>Hi {{.BusinessName}},</p>
    <p>Your digital marketing results for {{.MonthName}} are ready. Here's what we worked on:</p>
    {{range .Sections}}
    <div style="border: 1px solid #e2e8f0; border-radius: 6px; padding: 16px; margin: 12px 0;">
      <h3 style="margin: 0 0 8px; color: #1a365d;">{{.Title}}</h3>
      <p style="margin: 0;">{{.Body}}</p>
    </div>
    {{end}}
    <p style="text-align: center; margin: 24px 0;">
      <a href="{{.DashboardURL}}" style="background: #2b6cb0; color: #fff; padding: 12px 24px; border-radius: 4px; text-decoration: none;">View Full Report</a>
    </p>
    <p>Questions about your results? Call us on 08 7480 2495 or reply to this email.</p>
  </div>
  <div style="background: #f7fafc; padding: 16px; text-align: center; font-size: 12px; color: #718096;">
    Top Web Directories | 217 Flinders St, Adelaide SA 5000 | 08 7480 2495
  </div>
</body>
</html>`))

type reportEmailSection struct {
	Title string
	Body  string
}

type reportEmailData struct {
	BusinessName string
	MonthName    string
	DashboardURL string
	Sections     []reportEmailSection
}

var serviceTitles = map[string]string{
	domain.ServiceSEO:     "SEO Performance",
	domain.ServicePPC:     "PPC Campaigns",
	domain.ServiceGMB:     "Google Business Profile",
	domain.ServiceSocial:  "Social Media",
	domain.ServiceChatbot: "AI Chatbot",
}

// sendClientReportEmail renders the digest, sends it, then marks each
// included report as sent. Reports are marked only after a successful
// send; a failed send leaves them eligible for a retry.
func (s *ReportService) sendClientReportEmail(ctx context.Context, client *domain.Client, month string, reports []*domain.Report) error {
	monthName := month
	if t, err := time.Parse("2006-01", month); err == nil {
		monthName = t.Format("January 2006")
	}

	data := reportEmailData{
		BusinessName: client.BusinessName,
		MonthName:    monthName,
		DashboardURL: s.dashboardURL,
	}
	for _, r := range reports {
		title, ok := serviceTitles[r.ServiceType]
		if !ok {
			title = strings.ToUpper(r.ServiceType)
		}
		data.Sections = append(data.Sections, reportEmailSection{
			Title: title,
			Body:  "Your " + title + " results for " + monthName + " show continued progress. Open your dashboard for the full metrics, charts and recommendations.",
		})
	}

	var buf bytes.Buffer
	if err := reportEmailTmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to render report email: %w", err)
	}

	subject := fmt.Sprintf("%s - Monthly Digital Marketing Report (%s)", client.BusinessName, monthName)
	if err := s.mailer.Send(ctx, client.ContactEmail, subject, buf.String()); err != nil {
		return err
	}

	sentAt := s.now()
	var markErr error
	for _, r := range reports {
		if err := s.reports.MarkEmailSent(ctx, r.ID, sentAt); err != nil {
			s.logger.Error("failed to mark report as sent",
				zap.Int("report_id", r.ID),
				zap.Error(err),
			)
			if markErr == nil {
				markErr = fmt.Errorf("failed to mark report %d as sent: %w", r.ID, err)
			}
		}
	}
	if markErr != nil {
		return markErr
	}

	s.logger.Info("delivered monthly report",
		zap.Int("client_id", client.ID),
		zap.String("month", month),
		zap.Int("reports", len(reports)),
	)
	return nil
}
