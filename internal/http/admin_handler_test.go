package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"topweb-backend/internal/domain"
	"topweb-backend/internal/repository"
)

type fakeReporting struct {
	generateAllMonths   []string
	generateClientCalls []int
	sendMonths          []string
	err                 error
}

func (f *fakeReporting) GenerateAllReports(ctx context.Context, month string) error {
	f.generateAllMonths = append(f.generateAllMonths, month)
	return f.err
}

func (f *fakeReporting) GenerateClientReports(ctx context.Context, clientID int, month string) error {
	f.generateClientCalls = append(f.generateClientCalls, clientID)
	return f.err
}

func (f *fakeReporting) SendMonthlyReports(ctx context.Context, month string) error {
	f.sendMonths = append(f.sendMonths, month)
	return f.err
}

type fakeClientsStore struct {
	clients []*domain.Client
}

func (f *fakeClientsStore) CreateClient(ctx context.Context, payload repository.NewClient) (*domain.Client, error) {
	c := &domain.Client{
		ID:           len(f.clients) + 1,
		BusinessName: payload.BusinessName,
		ContactEmail: payload.ContactEmail,
		Services:     payload.Services,
		Status:       payload.Status,
	}
	if c.Status == "" {
		c.Status = "active"
	}
	f.clients = append(f.clients, c)
	return c, nil
}

func (f *fakeClientsStore) GetClient(ctx context.Context, id int) (*domain.Client, error) {
	for _, c := range f.clients {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeClientsStore) ListClients(ctx context.Context) ([]*domain.Client, error) {
	return f.clients, nil
}

func (f *fakeClientsStore) UpdateClient(ctx context.Context, id int, updates repository.ClientUpdate) (*domain.Client, error) {
	c, err := f.GetClient(ctx, id)
	if err != nil {
		return nil, err
	}
	if updates.Status != nil {
		c.Status = *updates.Status
	}
	return c, nil
}

type fakeReportsStore struct {
	reports []*domain.Report
}

func (f *fakeReportsStore) CreateReport(ctx context.Context, payload repository.NewReport) (*domain.Report, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeReportsStore) GetReportsByClient(ctx context.Context, clientID int) ([]*domain.Report, error) {
	var out []*domain.Report
	for _, r := range f.reports {
		if r.ClientID == clientID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReportsStore) GetReportsByMonth(ctx context.Context, month string) ([]*domain.Report, error) {
	var out []*domain.Report
	for _, r := range f.reports {
		if r.ReportMonth == month {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReportsStore) MarkEmailSent(ctx context.Context, id int, sentAt time.Time) error {
	return nil
}

func newAdminTestHandler() (*AdminHandler, *fakeReporting, *fakeClientsStore, *fakeReportsStore) {
	reporting := &fakeReporting{}
	clients := &fakeClientsStore{}
	reports := &fakeReportsStore{}
	h := NewAdminHandler(clients, reports, &fakeInquiriesRepo{}, reporting, zap.NewNop())
	return h, reporting, clients, reports
}

func TestHandleGenerateReports_RequiresMonth(t *testing.T) {
	h, reporting, _, _ := newAdminTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/admin/generate-reports", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	h.HandleGenerateReports(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Month is required") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
	if len(reporting.generateAllMonths) != 0 {
		t.Fatal("generation should not run without a month")
	}
}

func TestHandleGenerateReports_AllClients(t *testing.T) {
	h, reporting, _, _ := newAdminTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/admin/generate-reports",
		strings.NewReader(`{"month":"2025-07"}`))
	w := httptest.NewRecorder()
	h.HandleGenerateReports(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if len(reporting.generateAllMonths) != 1 || reporting.generateAllMonths[0] != "2025-07" {
		t.Fatalf("expected one all-clients run for 2025-07, got: %v", reporting.generateAllMonths)
	}
}

func TestHandleGenerateReports_SingleClient(t *testing.T) {
	h, reporting, _, _ := newAdminTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/admin/generate-reports",
		strings.NewReader(`{"month":"2025-07","clientId":5}`))
	w := httptest.NewRecorder()
	h.HandleGenerateReports(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(reporting.generateClientCalls) != 1 || reporting.generateClientCalls[0] != 5 {
		t.Fatalf("expected single-client run for 5, got: %v", reporting.generateClientCalls)
	}
	if len(reporting.generateAllMonths) != 0 {
		t.Fatal("all-clients run should not happen for a single-client request")
	}
}

func TestHandleSendReports(t *testing.T) {
	h, reporting, _, _ := newAdminTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/admin/send-reports",
		strings.NewReader(`{"month":"2025-07"}`))
	w := httptest.NewRecorder()
	h.HandleSendReports(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if len(reporting.sendMonths) != 1 || reporting.sendMonths[0] != "2025-07" {
		t.Fatalf("expected delivery for 2025-07, got: %v", reporting.sendMonths)
	}
}

func TestHandleSendReports_DeliveryFailure(t *testing.T) {
	h, reporting, _, _ := newAdminTestHandler()
	reporting.err = errors.New("smtp down")

	req := httptest.NewRequest(http.MethodPost, "/api/admin/send-reports",
		strings.NewReader(`{"month":"2025-07"}`))
	w := httptest.NewRecorder()
	h.HandleSendReports(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestHandleClients_CreateAndList(t *testing.T) {
	h, _, clients, _ := newAdminTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/admin/clients", strings.NewReader(
		`{"businessName":"Adelaide Plumbing","contactEmail":"owner@example.com","services":["seo"]}`))
	w := httptest.NewRecorder()
	h.HandleClients(w, req)

	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if len(clients.clients) != 1 {
		t.Fatalf("expected one stored client, got %d", len(clients.clients))
	}

	req = httptest.NewRequest(http.MethodGet, "/api/admin/clients", nil)
	w = httptest.NewRecorder()
	h.HandleClients(w, req)

	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Adelaide Plumbing") {
		t.Fatalf("expected listed client, got %d: %s", w.Code, w.Body.String())
	}
}

func TestHandleClients_CreateRequiresFields(t *testing.T) {
	h, _, _, _ := newAdminTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/admin/clients",
		strings.NewReader(`{"businessName":"No Email"}`))
	w := httptest.NewRecorder()
	h.HandleClients(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestHandleClientByID_UpdateStatus(t *testing.T) {
	h, _, clients, _ := newAdminTestHandler()
	clients.clients = append(clients.clients, &domain.Client{ID: 1, BusinessName: "X", Status: "active"})

	req := httptest.NewRequest(http.MethodPut, "/api/admin/clients/1",
		strings.NewReader(`{"status":"paused"}`))
	w := httptest.NewRecorder()
	h.HandleClientByID(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if clients.clients[0].Status != "paused" {
		t.Fatalf("expected status paused, got %s", clients.clients[0].Status)
	}
}

func TestHandleClientByID_NotFound(t *testing.T) {
	h, _, _, _ := newAdminTestHandler()

	req := httptest.NewRequest(http.MethodPut, "/api/admin/clients/99",
		strings.NewReader(`{"status":"paused"}`))
	w := httptest.NewRecorder()
	h.HandleClientByID(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestHandleInquiryByID_UpdatesStatus(t *testing.T) {
	inquiries := &fakeInquiriesRepo{created: []*domain.Inquiry{
		{ID: 1, FirstName: "Jan", Email: "jan@example.com", Status: "new"},
	}}
	h := NewAdminHandler(&fakeClientsStore{}, &fakeReportsStore{}, inquiries, &fakeReporting{}, zap.NewNop())

	req := httptest.NewRequest(http.MethodPut, "/api/admin/inquiries/1",
		strings.NewReader(`{"status":"contacted"}`))
	w := httptest.NewRecorder()
	h.HandleInquiryByID(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if inquiries.created[0].Status != "contacted" {
		t.Fatalf("expected status contacted, got %s", inquiries.created[0].Status)
	}
}

func TestHandleInquiryByID_RejectsUnknownStatus(t *testing.T) {
	h, _, _, _ := newAdminTestHandler()

	req := httptest.NewRequest(http.MethodPut, "/api/admin/inquiries/1",
		strings.NewReader(`{"status":"spam"}`))
	w := httptest.NewRecorder()
	h.HandleInquiryByID(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestHandleExportReports(t *testing.T) {
	h, _, clients, reports := newAdminTestHandler()
	clients.clients = append(clients.clients, &domain.Client{ID: 1, BusinessName: "Alpha"})
	reports.reports = append(reports.reports, &domain.Report{
		ID: 1, ClientID: 1, ServiceType: "seo", ReportMonth: "2025-07",
		Data: []byte(`{}`), CreatedAt: time.Now(),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/reports/export?month=2025-07", nil)
	w := httptest.NewRecorder()
	h.HandleExportReports(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Fatalf("expected xlsx content type, got %s", ct)
	}
	if w.Body.Len() == 0 {
		t.Fatal("expected workbook bytes")
	}
}

func TestHandleExportReports_RequiresMonth(t *testing.T) {
	h, _, _, _ := newAdminTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/admin/reports/export", nil)
	w := httptest.NewRecorder()
	h.HandleExportReports(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}
