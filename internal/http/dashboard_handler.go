package httpapi

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"topweb-backend/internal/repository"
)

// DashboardHandler serves the client dashboard's read-only views.
type DashboardHandler struct {
	clients repository.ClientsRepository
	reports repository.ReportsRepository
	logger  *zap.Logger
}

func NewDashboardHandler(clients repository.ClientsRepository, reports repository.ReportsRepository, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{clients: clients, reports: reports, logger: logger}
}

// HandleListClients GET /api/dashboard/clients
func (h *DashboardHandler) HandleListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.clients.ListClients(r.Context())
	if err != nil {
		h.logger.Error("failed to list clients", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch clients")
		return
	}
	writeJSON(w, http.StatusOK, clients)
}

// HandleClientReports GET /api/dashboard/client/{id}/reports
func (h *DashboardHandler) HandleClientReports(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/dashboard/client/")
	idStr, tail, found := strings.Cut(rest, "/")
	if !found || tail != "reports" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	id, err := strconv.Atoi(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid client id")
		return
	}

	if _, err := h.clients.GetClient(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Client not found")
			return
		}
		h.logger.Error("failed to load client", zap.Int("client_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch reports")
		return
	}

	reports, err := h.reports.GetReportsByClient(r.Context(), id)
	if err != nil {
		h.logger.Error("failed to list client reports", zap.Int("client_id", id), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch reports")
		return
	}
	writeJSON(w, http.StatusOK, reports)
}
