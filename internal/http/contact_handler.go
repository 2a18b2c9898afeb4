package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"topweb-backend/internal/repository"
)

// ContactHandler accepts website contact-form submissions.
type ContactHandler struct {
	inquiries repository.InquiriesRepository
	validate  *validator.Validate
	logger    *zap.Logger
}

func NewContactHandler(inquiries repository.InquiriesRepository, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{
		inquiries: inquiries,
		validate:  validator.New(),
		logger:    logger,
	}
}

type contactRequest struct {
	FirstName string   `json:"firstName" validate:"required"`
	LastName  string   `json:"lastName" validate:"required"`
	Email     string   `json:"email" validate:"required,email"`
	Phone     string   `json:"phone" validate:"omitempty,min=6"`
	Services  []string `json:"services" validate:"required,min=1,dive,oneof=seo ppc gmb social chatbot website banner ai campaign_hub white_label"`
	Message   string   `json:"message" validate:"max=2000"`
}

// HandleSubmit POST /api/contact
func (h *ContactHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req contactRequest
	if err := readBodyJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s: failed %s validation", fe.Field(), fe.Tag()))
			}
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"message": "Invalid form data",
				"errors":  fields,
			})
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid form data")
		return
	}

	inquiry, err := h.inquiries.CreateInquiry(ctx, repository.NewInquiry{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Services:  req.Services,
		Message:   req.Message,
	})
	if err != nil {
		h.logger.Error("failed to store inquiry", zap.String("email", req.Email), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to submit inquiry")
		return
	}

	h.logger.Info("new inquiry received",
		zap.Int("inquiry_id", inquiry.ID),
		zap.Strings("services", inquiry.Services),
	)
	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Inquiry submitted successfully",
		"inquiry": inquiry,
	})
}
