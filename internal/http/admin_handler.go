package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"topweb-backend/internal/repository"
)

// reportService is the slice of service.ReportService the admin API needs.
type reportService interface {
	GenerateAllReports(ctx context.Context, month string) error
	GenerateClientReports(ctx context.Context, clientID int, month string) error
	SendMonthlyReports(ctx context.Context, month string) error
}

// AdminHandler serves the agency-internal management API.
type AdminHandler struct {
	clients   repository.ClientsRepository
	reports   repository.ReportsRepository
	inquiries repository.InquiriesRepository
	reporting reportService
	logger    *zap.Logger
}

func NewAdminHandler(
	clients repository.ClientsRepository,
	reports repository.ReportsRepository,
	inquiries repository.InquiriesRepository,
	reporting reportService,
	logger *zap.Logger,
) *AdminHandler {
	return &AdminHandler{
		clients:   clients,
		reports:   reports,
		inquiries: inquiries,
		reporting: reporting,
		logger:    logger,
	}
}

type reportRunRequest struct {
	Month    string `json:"month"` // YYYY-MM
	ClientID int    `json:"clientId,omitempty"`
}

// HandleGenerateReports POST /api/admin/generate-reports
func (h *AdminHandler) HandleGenerateReports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req reportRunRequest
	if err := readBodyJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Month == "" {
		writeError(w, http.StatusBadRequest, "Month is required")
		return
	}

	var err error
	if req.ClientID != 0 {
		err = h.reporting.GenerateClientReports(ctx, req.ClientID, req.Month)
	} else {
		err = h.reporting.GenerateAllReports(ctx, req.Month)
	}
	if err != nil {
		h.logger.Error("report generation failed", zap.String("month", req.Month), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to generate reports")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Reports generated for %s", req.Month),
	})
}

// HandleSendReports POST /api/admin/send-reports
func (h *AdminHandler) HandleSendReports(w http.ResponseWriter, r *http.Request) {
	var req reportRunRequest
	if err := readBodyJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Month == "" {
		writeError(w, http.StatusBadRequest, "Month is required")
		return
	}

	if err := h.reporting.SendMonthlyReports(r.Context(), req.Month); err != nil {
		h.logger.Error("report delivery failed", zap.String("month", req.Month), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to send reports")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Reports sent for %s", req.Month),
	})
}

// HandleListInquiries GET /api/admin/inquiries
func (h *AdminHandler) HandleListInquiries(w http.ResponseWriter, r *http.Request) {
	inquiries, err := h.inquiries.ListInquiries(r.Context())
	if err != nil {
		h.logger.Error("failed to list inquiries", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch inquiries")
		return
	}
	writeJSON(w, http.StatusOK, inquiries)
}

var inquiryStatuses = map[string]bool{
	"new":       true,
	"contacted": true,
	"converted": true,
	"closed":    true,
}

// HandleInquiryByID PUT /api/admin/inquiries/{id}
func (h *AdminHandler) HandleInquiryByID(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimPrefix(r.URL.Path, "/api/admin/inquiries/")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid inquiry id")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := readBodyJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !inquiryStatuses[req.Status] {
		writeError(w, http.StatusBadRequest, "Invalid status")
		return
	}

	inquiry, err := h.inquiries.UpdateInquiryStatus(r.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Inquiry not found")
			return
		}
		h.logger.Error("failed to update inquiry", zap.Int("inquiry_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to update inquiry")
		return
	}
	writeJSON(w, http.StatusOK, inquiry)
}

type clientRequest struct {
	BusinessName string   `json:"businessName"`
	ContactEmail string   `json:"contactEmail"`
	ContactPhone string   `json:"contactPhone"`
	Address      string   `json:"address"`
	GMBListingID string   `json:"gmbListingId"`
	WebsiteURL   string   `json:"websiteUrl"`
	Services     []string `json:"services"`
	Status       string   `json:"status"`
}

// HandleClients GET|POST /api/admin/clients
func (h *AdminHandler) HandleClients(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		clients, err := h.clients.ListClients(r.Context())
		if err != nil {
			h.logger.Error("failed to list clients", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to fetch clients")
			return
		}
		writeJSON(w, http.StatusOK, clients)
	case http.MethodPost:
		h.createClient(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *AdminHandler) createClient(w http.ResponseWriter, r *http.Request) {
	var req clientRequest
	if err := readBodyJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.BusinessName == "" || req.ContactEmail == "" {
		writeError(w, http.StatusBadRequest, "businessName and contactEmail are required")
		return
	}

	client, err := h.clients.CreateClient(r.Context(), repository.NewClient{
		BusinessName: req.BusinessName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Address:      req.Address,
		GMBListingID: req.GMBListingID,
		WebsiteURL:   req.WebsiteURL,
		Services:     req.Services,
		Status:       req.Status,
	})
	if err != nil {
		h.logger.Error("failed to create client", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to create client")
		return
	}
	writeJSON(w, http.StatusCreated, client)
}

type clientUpdateRequest struct {
	BusinessName *string   `json:"businessName"`
	ContactEmail *string   `json:"contactEmail"`
	ContactPhone *string   `json:"contactPhone"`
	Address      *string   `json:"address"`
	GMBListingID *string   `json:"gmbListingId"`
	WebsiteURL   *string   `json:"websiteUrl"`
	Services     *[]string `json:"services"`
	Status       *string   `json:"status"`
}

// HandleClientByID PUT /api/admin/clients/{id}
func (h *AdminHandler) HandleClientByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	idStr := strings.TrimPrefix(r.URL.Path, "/api/admin/clients/")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid client id")
		return
	}

	var req clientUpdateRequest
	if err := readBodyJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	client, err := h.clients.UpdateClient(r.Context(), id, repository.ClientUpdate{
		BusinessName: req.BusinessName,
		ContactEmail: req.ContactEmail,
		ContactPhone: req.ContactPhone,
		Address:      req.Address,
		GMBListingID: req.GMBListingID,
		WebsiteURL:   req.WebsiteURL,
		Services:     req.Services,
		Status:       req.Status,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Client not found")
			return
		}
		h.logger.Error("failed to update client", zap.Int("client_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to update client")
		return
	}
	writeJSON(w, http.StatusOK, client)
}

// HandleExportReports GET /api/admin/reports/export?month=YYYY-MM
func (h *AdminHandler) HandleExportReports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	month := r.URL.Query().Get("month")
	if month == "" {
		writeError(w, http.StatusBadRequest, "Month is required")
		return
	}

	reports, err := h.reports.GetReportsByMonth(ctx, month)
	if err != nil {
		h.logger.Error("failed to load reports for export", zap.String("month", month), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to export reports")
		return
	}

	// Resolve business names once per client.
	names := make(map[int]string)
	rows := make([]reportExportRow, 0, len(reports))
	for _, rep := range reports {
		name, ok := names[rep.ClientID]
		if !ok {
			if client, err := h.clients.GetClient(ctx, rep.ClientID); err == nil {
				name = client.BusinessName
			}
			names[rep.ClientID] = name
		}
		rows = append(rows, reportExportRow{
			Report:       rep,
			BusinessName: name,
		})
	}

	data, err := generateReportsExport(month, rows)
	if err != nil {
		h.logger.Error("failed to build export file", zap.String("month", month), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to export reports")
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="reports-%s.xlsx"`, month))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
