package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// Router uses the standard library http.ServeMux behind a thin wrapper so
// handlers register against one type.
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RegisterPublicRoutes wires the visitor-facing endpoints: the chatbot and
// the contact form.
func (r *Router) RegisterPublicRoutes(chat *ChatHandler, contact *ContactHandler) {
	r.Handle("/api/chat", requireMethod(http.MethodPost, chat.HandleChat))
	r.Handle("/api/contact", requireMethod(http.MethodPost, contact.HandleSubmit))
}

// RegisterAuthRoutes wires identity endpoints.
func (r *Router) RegisterAuthRoutes(auth *AuthHandler) {
	r.Handle("/api/auth/user", requireMethod(http.MethodGet, auth.HandleCurrentUser))
}

// RegisterAIRoutes wires the AI content generation endpoints.
func (r *Router) RegisterAIRoutes(ai *AIHandler) {
	r.Handle("/api/ai/generate", requireMethod(http.MethodPost, ai.HandleGenerate))
	r.Handle("/api/ai/generations", requireMethod(http.MethodGet, ai.HandleListGenerations))
}

// RegisterDashboardRoutes wires the client-facing dashboard endpoints.
func (r *Router) RegisterDashboardRoutes(dash *DashboardHandler) {
	r.Handle("/api/dashboard/clients", requireMethod(http.MethodGet, dash.HandleListClients))
	r.Handle("/api/dashboard/client/", requireMethod(http.MethodGet, dash.HandleClientReports))
}

// RegisterAdminRoutes wires the agency-internal endpoints.
func (r *Router) RegisterAdminRoutes(admin *AdminHandler) {
	r.Handle("/api/admin/generate-reports", requireMethod(http.MethodPost, admin.HandleGenerateReports))
	r.Handle("/api/admin/send-reports", requireMethod(http.MethodPost, admin.HandleSendReports))
	r.Handle("/api/admin/inquiries", requireMethod(http.MethodGet, admin.HandleListInquiries))
	r.Handle("/api/admin/inquiries/", requireMethod(http.MethodPut, admin.HandleInquiryByID))
	r.Handle("/api/admin/clients", admin.HandleClients)
	r.Handle("/api/admin/clients/", admin.HandleClientByID)
	r.Handle("/api/admin/reports/export", requireMethod(http.MethodGet, admin.HandleExportReports))
}

// RegisterWhiteLabelRoutes wires the reseller reporting endpoints.
func (r *Router) RegisterWhiteLabelRoutes(wl *WhiteLabelHandler) {
	r.Handle("/api/white-label/brands", wl.HandleBrands)
	r.Handle("/api/white-label/brands/", wl.HandleBrandByID)
	r.Handle("/api/white-label/clients", wl.HandleClients)
	r.Handle("/api/white-label/clients/", wl.HandleClientByID)
	r.Handle("/api/white-label/reports", wl.HandleReports)
	r.Handle("/api/white-label/reports/", wl.HandleReportByID)
}

func requireMethod(method string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if req.Method != method {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h(w, req)
	}
}
