package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"topweb-backend/internal/domain"
	"topweb-backend/internal/repository"
	"topweb-backend/internal/store"
)

// chatbotService is the slice of ChatbotService the handler needs.
type chatbotService interface {
	GenerateResponse(ctx context.Context, message string, history []domain.ChatMessage) string
	AnalyzeSentiment(ctx context.Context, message string) domain.Sentiment
}

const (
	chatCachePrefix = "chat:session:"
	chatCacheTTL    = 30 * time.Minute
)

// ChatHandler serves the website chatbot. Conversations are keyed by the
// visitor's session id; recent conversations are cached in Redis to keep
// the hot path off Postgres.
type ChatHandler struct {
	chatbot chatbotService
	chats   repository.ChatsRepository
	cache   store.KV
	logger  *zap.Logger
}

func NewChatHandler(chatbot chatbotService, chats repository.ChatsRepository, cache store.KV, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatbot: chatbot,
		chats:   chats,
		cache:   cache,
		logger:  logger,
	}
}

type chatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId"`
}

type chatResponse struct {
	Response  string           `json:"response"`
	Sentiment domain.Sentiment `json:"sentiment"`
}

// HandleChat POST /api/chat
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req chatRequest
	if err := readBodyJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Message == "" {
		writeError(w, http.StatusBadRequest, "Message is required")
		return
	}
	if req.SessionID == "" {
		writeError(w, http.StatusBadRequest, "Session ID is required")
		return
	}

	conv := h.loadConversation(ctx, req.SessionID)
	var history []domain.ChatMessage
	if conv != nil {
		history = conv.Messages
	}

	response := h.chatbot.GenerateResponse(ctx, req.Message, history)
	sentiment := h.chatbot.AnalyzeSentiment(ctx, req.Message)

	now := time.Now().Format(time.RFC3339)
	messages := append(history,
		domain.ChatMessage{Role: "user", Content: req.Message, Timestamp: now},
		domain.ChatMessage{Role: "assistant", Content: response, Timestamp: now},
	)

	var err error
	if conv != nil {
		conv, err = h.chats.UpdateConversationMessages(ctx, conv.ID, messages)
	} else {
		conv, err = h.chats.CreateConversation(ctx, req.SessionID, messages)
	}
	if err != nil {
		h.logger.Error("failed to persist chat conversation",
			zap.String("session_id", req.SessionID),
			zap.Error(err),
		)
		writeError(w, http.StatusInternalServerError, "Failed to process chat message")
		return
	}
	h.cacheConversation(ctx, conv)

	writeJSON(w, http.StatusOK, chatResponse{Response: response, Sentiment: sentiment})
}

// loadConversation tries the cache first, then Postgres. Any cache or
// lookup problem degrades to an empty conversation.
func (h *ChatHandler) loadConversation(ctx context.Context, sessionID string) *domain.ChatConversation {
	if cached, err := h.cache.Get(ctx, chatCachePrefix+sessionID); err == nil {
		var conv domain.ChatConversation
		if err := json.Unmarshal([]byte(cached), &conv); err == nil {
			return &conv
		}
		// Corrupt entry: drop it so the next request refills from Postgres.
		if err := h.cache.Delete(ctx, chatCachePrefix+sessionID); err != nil {
			h.logger.Warn("chat cache invalidation failed", zap.String("session_id", sessionID), zap.Error(err))
		}
	} else if !errors.Is(err, store.ErrMiss) {
		h.logger.Warn("chat cache read failed", zap.String("session_id", sessionID), zap.Error(err))
	}

	conv, err := h.chats.GetConversationBySession(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			h.logger.Warn("chat conversation lookup failed",
				zap.String("session_id", sessionID),
				zap.Error(err),
			)
		}
		return nil
	}
	return conv
}

func (h *ChatHandler) cacheConversation(ctx context.Context, conv *domain.ChatConversation) {
	data, err := json.Marshal(conv)
	if err != nil {
		return
	}
	if err := h.cache.Set(ctx, chatCachePrefix+conv.SessionID, string(data), chatCacheTTL); err != nil {
		h.logger.Warn("chat cache write failed", zap.String("session_id", conv.SessionID), zap.Error(err))
	}
}
