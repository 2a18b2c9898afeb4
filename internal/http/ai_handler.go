package httpapi

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"topweb-backend/internal/repository"
	"topweb-backend/internal/service"
)

type completionService interface {
	Complete(ctx context.Context, req service.CompletionRequest) (string, error)
}

// AIHandler serves the Campaign Hub content generation tools.
type AIHandler struct {
	ai          completionService
	generations repository.AIGenerationsRepository
	model       string
	logger      *zap.Logger
}

func NewAIHandler(ai completionService, generations repository.AIGenerationsRepository, model string, logger *zap.Logger) *AIHandler {
	return &AIHandler{
		ai:          ai,
		generations: generations,
		model:       model,
		logger:      logger,
	}
}

type generateRequest struct {
	Prompt    string `json:"prompt"`
	Type      string `json:"type"` // text | image | video
	ProjectID string `json:"projectId"`
}

// HandleGenerate POST /api/ai/generate
func (h *AIHandler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := userIDFromReq(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req generateRequest
	if err := readBodyJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Prompt == "" {
		writeError(w, http.StatusBadRequest, "Prompt is required")
		return
	}
	if req.Type == "" {
		req.Type = "text"
	}

	payload := repository.NewAIGeneration{
		ID:        uuid.NewString(),
		UserID:    userID,
		ProjectID: req.ProjectID,
		Type:      req.Type,
		Prompt:    req.Prompt,
		Model:     h.model,
	}

	switch req.Type {
	case "text":
		result, err := h.ai.Complete(ctx, service.CompletionRequest{
			Messages: []service.CompletionMessage{
				{Role: "system", Content: "You are a professional marketing copywriter. Produce polished, ready-to-publish content."},
				{Role: "user", Content: req.Prompt},
			},
			MaxTokens:   1500,
			Temperature: 0.7,
		})
		if err != nil {
			h.logger.Error("text generation failed", zap.String("user_id", userID), zap.Error(err))
			payload.Status = "failed"
			if _, storeErr := h.generations.CreateGeneration(ctx, payload); storeErr != nil {
				h.logger.Error("failed to store generation", zap.Error(storeErr))
			}
			writeError(w, http.StatusInternalServerError, "Failed to generate content")
			return
		}
		payload.Result = result
		payload.Status = "completed"
	case "image", "video":
		// Media generation runs on a separate worker; the row is created
		// pending and picked up from there.
		payload.Status = "pending"
	default:
		writeError(w, http.StatusBadRequest, "Unsupported generation type")
		return
	}

	generation, err := h.generations.CreateGeneration(ctx, payload)
	if err != nil {
		h.logger.Error("failed to store generation", zap.String("user_id", userID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to store generation")
		return
	}

	writeJSON(w, http.StatusOK, generation)
}

// HandleListGenerations GET /api/ai/generations
func (h *AIHandler) HandleListGenerations(w http.ResponseWriter, r *http.Request) {
	userID := userIDFromReq(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	limit := parseInt(r.URL.Query().Get("limit"), 50)
	generations, err := h.generations.ListUserGenerations(r.Context(), userID, limit)
	if err != nil {
		h.logger.Error("failed to list generations", zap.String("user_id", userID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch generations")
		return
	}

	writeJSON(w, http.StatusOK, generations)
}
