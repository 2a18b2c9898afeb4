package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"topweb-backend/internal/domain"
)

func TestHandleClientReports(t *testing.T) {
	clients := &fakeClientsStore{clients: []*domain.Client{{ID: 1, BusinessName: "Alpha"}}}
	reports := &fakeReportsStore{reports: []*domain.Report{
		{ID: 1, ClientID: 1, ServiceType: "seo", ReportMonth: "2025-07", Data: []byte(`{}`), CreatedAt: time.Now()},
		{ID: 2, ClientID: 2, ServiceType: "seo", ReportMonth: "2025-07", Data: []byte(`{}`), CreatedAt: time.Now()},
	}}
	h := NewDashboardHandler(clients, reports, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/client/1/reports", nil)
	w := httptest.NewRecorder()
	h.HandleClientReports(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, `"id":1`) || strings.Contains(body, `"id":2`) {
		t.Fatalf("expected only client 1 reports, got: %s", body)
	}
}

func TestHandleClientReports_UnknownClient(t *testing.T) {
	h := NewDashboardHandler(&fakeClientsStore{}, &fakeReportsStore{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/client/42/reports", nil)
	w := httptest.NewRecorder()
	h.HandleClientReports(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestHandleClientReports_BadPath(t *testing.T) {
	h := NewDashboardHandler(&fakeClientsStore{}, &fakeReportsStore{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/client/1/other", nil)
	w := httptest.NewRecorder()
	h.HandleClientReports(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
