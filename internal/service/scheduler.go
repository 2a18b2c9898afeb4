package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// PreviousMonth returns the YYYY-MM month preceding now. Anchoring on the
// first of the current month avoids the day-overflow surprises of
// subtracting a month from e.g. March 31.
func PreviousMonth(now time.Time) string {
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return firstOfMonth.AddDate(0, -1, 0).Format("2006-01")
}

// ReportScheduler runs the monthly generate-then-deliver cycle on the first
// of each month.
type ReportScheduler struct {
	reports *ReportService
	logger  *zap.Logger
	now     func() time.Time
}

func NewReportScheduler(reports *ReportService, logger *zap.Logger) *ReportScheduler {
	return &ReportScheduler{
		reports: reports,
		logger:  logger,
		now:     time.Now,
	}
}

// RunOnce generates and delivers reports for the month that just ended.
// Delivery is skipped when generation fails.
func (s *ReportScheduler) RunOnce(ctx context.Context) {
	month := PreviousMonth(s.now())
	s.logger.Info("starting monthly report run", zap.String("month", month))

	if err := s.reports.GenerateAllReports(ctx, month); err != nil {
		s.logger.Error("monthly report generation failed",
			zap.String("month", month),
			zap.Error(err),
		)
		return
	}

	if err := s.reports.SendMonthlyReports(ctx, month); err != nil {
		s.logger.Error("monthly report delivery finished with errors",
			zap.String("month", month),
			zap.Error(err),
		)
		return
	}

	s.logger.Info("monthly report run complete", zap.String("month", month))
}

// Start blocks until ctx is cancelled, firing RunOnce at 02:00 on the first
// of every month.
func (s *ReportScheduler) Start(ctx context.Context) {
	for {
		next := nextRun(s.now())
		s.logger.Info("next scheduled report run", zap.Time("at", next))

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			s.RunOnce(ctx)
		}
	}
}

func nextRun(now time.Time) time.Time {
	run := time.Date(now.Year(), now.Month(), 1, 2, 0, 0, 0, now.Location())
	if !run.After(now) {
		run = run.AddDate(0, 1, 0)
	}
	return run
}
