package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"topweb-backend/internal/repository"
)

// WhiteLabelHandler serves the reseller reporting product: brands a partner
// sells under, their end clients and the branded reports delivered to them.
type WhiteLabelHandler struct {
	repo   repository.WhiteLabelRepository
	logger *zap.Logger
}

func NewWhiteLabelHandler(repo repository.WhiteLabelRepository, logger *zap.Logger) *WhiteLabelHandler {
	return &WhiteLabelHandler{repo: repo, logger: logger}
}

type brandRequest struct {
	BrandName    string `json:"brandName"`
	LogoURL      string `json:"logoUrl"`
	BrandColor   string `json:"brandColor"`
	WebsiteURL   string `json:"websiteUrl"`
	ContactEmail string `json:"contactEmail"`
	ContactPhone string `json:"contactPhone"`
	Description  string `json:"description"`
}

// HandleBrands GET|POST /api/white-label/brands
func (h *WhiteLabelHandler) HandleBrands(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromReq(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	switch r.Method {
	case http.MethodGet:
		brands, err := h.repo.GetUserBrands(r.Context(), userID)
		if err != nil {
			h.logger.Error("failed to list brands", zap.String("user_id", userID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to fetch brands")
			return
		}
		writeJSON(w, http.StatusOK, brands)
	case http.MethodPost:
		var req brandRequest
		if err := readBodyJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.BrandName == "" {
			writeError(w, http.StatusBadRequest, "brandName is required")
			return
		}
		brand, err := h.repo.CreateBrand(r.Context(), repository.NewWhiteLabelBrand{
			UserID:       userID,
			BrandName:    req.BrandName,
			LogoURL:      req.LogoURL,
			BrandColor:   req.BrandColor,
			WebsiteURL:   req.WebsiteURL,
			ContactEmail: req.ContactEmail,
			ContactPhone: req.ContactPhone,
			Description:  req.Description,
		})
		if err != nil {
			h.logger.Error("failed to create brand", zap.String("user_id", userID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to create brand")
			return
		}
		writeJSON(w, http.StatusCreated, brand)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// HandleBrandByID PUT|DELETE /api/white-label/brands/{id}
func (h *WhiteLabelHandler) HandleBrandByID(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromReq(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, ok := pathID(w, r.URL.Path, "/api/white-label/brands/")
	if !ok {
		return
	}

	// Ownership check before any mutation.
	brand, err := h.repo.GetBrand(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Brand not found")
			return
		}
		h.logger.Error("failed to load brand", zap.Int("brand_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch brand")
		return
	}
	if brand.UserID != userID {
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	}

	switch r.Method {
	case http.MethodPut:
		var req struct {
			BrandName    *string `json:"brandName"`
			LogoURL      *string `json:"logoUrl"`
			BrandColor   *string `json:"brandColor"`
			WebsiteURL   *string `json:"websiteUrl"`
			ContactEmail *string `json:"contactEmail"`
			ContactPhone *string `json:"contactPhone"`
			Description  *string `json:"description"`
			IsActive     *bool   `json:"isActive"`
		}
		if err := readBodyJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		updated, err := h.repo.UpdateBrand(r.Context(), id, repository.WhiteLabelBrandUpdate{
			BrandName:    req.BrandName,
			LogoURL:      req.LogoURL,
			BrandColor:   req.BrandColor,
			WebsiteURL:   req.WebsiteURL,
			ContactEmail: req.ContactEmail,
			ContactPhone: req.ContactPhone,
			Description:  req.Description,
			IsActive:     req.IsActive,
		})
		if err != nil {
			h.logger.Error("failed to update brand", zap.Int("brand_id", id), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to update brand")
			return
		}
		writeJSON(w, http.StatusOK, updated)
	case http.MethodDelete:
		if err := h.repo.DeleteBrand(r.Context(), id); err != nil {
			h.logger.Error("failed to delete brand", zap.Int("brand_id", id), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to delete brand")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Brand deleted"})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// HandleClients GET|POST /api/white-label/clients
func (h *WhiteLabelHandler) HandleClients(w http.ResponseWriter, r *http.Request) {
	if userIDFromReq(r) == "" {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	switch r.Method {
	case http.MethodGet:
		brandID := parseInt(r.URL.Query().Get("brandId"), 0)
		if brandID == 0 {
			writeError(w, http.StatusBadRequest, "brandId is required")
			return
		}
		clients, err := h.repo.GetBrandClients(r.Context(), brandID)
		if err != nil {
			h.logger.Error("failed to list brand clients", zap.Int("brand_id", brandID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to fetch clients")
			return
		}
		writeJSON(w, http.StatusOK, clients)
	case http.MethodPost:
		var req struct {
			BrandID         int      `json:"brandId"`
			ClientName      string   `json:"clientName"`
			ClientEmail     string   `json:"clientEmail"`
			ClientPhone     string   `json:"clientPhone"`
			BusinessName    string   `json:"businessName"`
			BusinessURL     string   `json:"businessUrl"`
			ServicesOffered []string `json:"servicesOffered"`
			MonthlyFee      string   `json:"monthlyFee"`
		}
		if err := readBodyJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.BrandID == 0 || req.ClientName == "" || req.ClientEmail == "" {
			writeError(w, http.StatusBadRequest, "brandId, clientName and clientEmail are required")
			return
		}
		client, err := h.repo.CreateBrandClient(r.Context(), repository.NewWhiteLabelClient{
			BrandID:         req.BrandID,
			ClientName:      req.ClientName,
			ClientEmail:     req.ClientEmail,
			ClientPhone:     req.ClientPhone,
			BusinessName:    req.BusinessName,
			BusinessURL:     req.BusinessURL,
			ServicesOffered: req.ServicesOffered,
			MonthlyFee:      req.MonthlyFee,
		})
		if err != nil {
			h.logger.Error("failed to create brand client", zap.Int("brand_id", req.BrandID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to create client")
			return
		}
		writeJSON(w, http.StatusCreated, client)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// HandleClientByID PUT|DELETE /api/white-label/clients/{id}
func (h *WhiteLabelHandler) HandleClientByID(w http.ResponseWriter, r *http.Request) {
	if userIDFromReq(r) == "" {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, ok := pathID(w, r.URL.Path, "/api/white-label/clients/")
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodPut:
		var req struct {
			ClientName      *string   `json:"clientName"`
			ClientEmail     *string   `json:"clientEmail"`
			ClientPhone     *string   `json:"clientPhone"`
			BusinessName    *string   `json:"businessName"`
			BusinessURL     *string   `json:"businessUrl"`
			ServicesOffered *[]string `json:"servicesOffered"`
			MonthlyFee      *string   `json:"monthlyFee"`
			Status          *string   `json:"status"`
		}
		if err := readBodyJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		client, err := h.repo.UpdateBrandClient(r.Context(), id, repository.WhiteLabelClientUpdate{
			ClientName:      req.ClientName,
			ClientEmail:     req.ClientEmail,
			ClientPhone:     req.ClientPhone,
			BusinessName:    req.BusinessName,
			BusinessURL:     req.BusinessURL,
			ServicesOffered: req.ServicesOffered,
			MonthlyFee:      req.MonthlyFee,
			Status:          req.Status,
		})
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Client not found")
				return
			}
			h.logger.Error("failed to update brand client", zap.Int("client_id", id), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to update client")
			return
		}
		writeJSON(w, http.StatusOK, client)
	case http.MethodDelete:
		if err := h.repo.DeleteBrandClient(r.Context(), id); err != nil {
			h.logger.Error("failed to delete brand client", zap.Int("client_id", id), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to delete client")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Client deleted"})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// HandleReports GET|POST /api/white-label/reports
func (h *WhiteLabelHandler) HandleReports(w http.ResponseWriter, r *http.Request) {
	if userIDFromReq(r) == "" {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	switch r.Method {
	case http.MethodGet:
		brandID := parseInt(r.URL.Query().Get("brandId"), 0)
		clientID := parseInt(r.URL.Query().Get("clientId"), 0)
		switch {
		case clientID != 0:
			reports, err := h.repo.GetClientReports(r.Context(), clientID)
			if err != nil {
				h.logger.Error("failed to list client reports", zap.Int("client_id", clientID), zap.Error(err))
				writeError(w, http.StatusInternalServerError, "Failed to fetch reports")
				return
			}
			writeJSON(w, http.StatusOK, reports)
		case brandID != 0:
			reports, err := h.repo.GetBrandReports(r.Context(), brandID)
			if err != nil {
				h.logger.Error("failed to list brand reports", zap.Int("brand_id", brandID), zap.Error(err))
				writeError(w, http.StatusInternalServerError, "Failed to fetch reports")
				return
			}
			writeJSON(w, http.StatusOK, reports)
		default:
			writeError(w, http.StatusBadRequest, "brandId or clientId is required")
		}
	case http.MethodPost:
		var req struct {
			BrandID         int             `json:"brandId"`
			ClientID        int             `json:"clientId"`
			ReportType      string          `json:"reportType"`
			ReportMonth     string          `json:"reportMonth"`
			Title           string          `json:"title"`
			Summary         string          `json:"summary"`
			KeyMetrics      json.RawMessage `json:"keyMetrics"`
			Insights        []string        `json:"insights"`
			Recommendations []string        `json:"recommendations"`
			ReportData      json.RawMessage `json:"reportData"`
		}
		if err := readBodyJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if req.BrandID == 0 || req.ClientID == 0 || req.ReportMonth == "" || req.Title == "" {
			writeError(w, http.StatusBadRequest, "brandId, clientId, reportMonth and title are required")
			return
		}
		report, err := h.repo.CreateBrandReport(r.Context(), repository.NewWhiteLabelReport{
			BrandID:         req.BrandID,
			ClientID:        req.ClientID,
			ReportType:      req.ReportType,
			ReportMonth:     req.ReportMonth,
			Title:           req.Title,
			Summary:         req.Summary,
			KeyMetrics:      req.KeyMetrics,
			Insights:        req.Insights,
			Recommendations: req.Recommendations,
			ReportData:      req.ReportData,
		})
		if err != nil {
			h.logger.Error("failed to create brand report", zap.Int("brand_id", req.BrandID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to create report")
			return
		}
		writeJSON(w, http.StatusCreated, report)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// HandleReportByID GET|PUT|DELETE /api/white-label/reports/{id}
func (h *WhiteLabelHandler) HandleReportByID(w http.ResponseWriter, r *http.Request) {
	if userIDFromReq(r) == "" {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	id, ok := pathID(w, r.URL.Path, "/api/white-label/reports/")
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		report, err := h.repo.GetBrandReport(r.Context(), id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Report not found")
				return
			}
			h.logger.Error("failed to load brand report", zap.Int("report_id", id), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to fetch report")
			return
		}
		writeJSON(w, http.StatusOK, report)
	case http.MethodPut:
		var req struct {
			Title           *string          `json:"title"`
			Summary         *string          `json:"summary"`
			KeyMetrics      *json.RawMessage `json:"keyMetrics"`
			Insights        *[]string        `json:"insights"`
			Recommendations *[]string        `json:"recommendations"`
			ReportData      *json.RawMessage `json:"reportData"`
			IsDelivered     *bool            `json:"isDelivered"`
		}
		if err := readBodyJSON(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		report, err := h.repo.UpdateBrandReport(r.Context(), id, repository.WhiteLabelReportUpdate{
			Title:           req.Title,
			Summary:         req.Summary,
			KeyMetrics:      req.KeyMetrics,
			Insights:        req.Insights,
			Recommendations: req.Recommendations,
			ReportData:      req.ReportData,
			IsDelivered:     req.IsDelivered,
		})
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Report not found")
				return
			}
			h.logger.Error("failed to update brand report", zap.Int("report_id", id), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to update report")
			return
		}
		writeJSON(w, http.StatusOK, report)
	case http.MethodDelete:
		if err := h.repo.DeleteBrandReport(r.Context(), id); err != nil {
			h.logger.Error("failed to delete brand report", zap.Int("report_id", id), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to delete report")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "Report deleted"})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func pathID(w http.ResponseWriter, path, prefix string) (int, bool) {
	idStr := strings.TrimPrefix(path, prefix)
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}
