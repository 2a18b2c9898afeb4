package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"topweb-backend/internal/domain"
)

func TestGMBService_GenerateMonthlyReport(t *testing.T) {
	clients := newFakeClientsRepo(&domain.Client{
		ID:           1,
		BusinessName: "Cafe Flinders",
		GMBListingID: "gmb-123",
		Status:       "active",
	})
	reports := newFakeReportsRepo()
	svc := NewGMBService(clients, reports, &fakeMetrics{}, zap.NewNop())

	require.NoError(t, svc.GenerateMonthlyReport(context.Background(), 1, "2025-07"))

	require.Len(t, reports.created, 1)
	assert.Equal(t, "gmb", reports.created[0].ServiceType)
	assert.Equal(t, "2025-07", reports.created[0].ReportMonth)
}

func TestGMBService_RequiresListing(t *testing.T) {
	clients := newFakeClientsRepo(&domain.Client{ID: 1, BusinessName: "No Listing", Status: "active"})
	svc := NewGMBService(clients, newFakeReportsRepo(), &fakeMetrics{}, zap.NewNop())

	err := svc.GenerateMonthlyReport(context.Background(), 1, "2025-07")

	assert.Error(t, err)
}
