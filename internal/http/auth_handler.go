package httpapi

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"topweb-backend/internal/repository"
)

// AuthHandler resolves the current user. Authentication itself happens at
// the edge proxy, which forwards identity in X-User-* headers; the first
// request for an unseen id provisions the user row.
type AuthHandler struct {
	users  repository.UsersRepository
	logger *zap.Logger
}

func NewAuthHandler(users repository.UsersRepository, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{users: users, logger: logger}
}

// HandleCurrentUser GET /api/auth/user
func (h *AuthHandler) HandleCurrentUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := userIDFromReq(r)
	if userID == "" {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.users.GetUser(ctx, userID)
	if err == nil {
		writeJSON(w, http.StatusOK, user)
		return
	}
	if !errors.Is(err, repository.ErrNotFound) {
		h.logger.Error("failed to fetch user", zap.String("user_id", userID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch user")
		return
	}

	user, err = h.users.UpsertUser(ctx, repository.UpsertUser{
		ID:              userID,
		Email:           r.Header.Get("X-User-Email"),
		FirstName:       r.Header.Get("X-User-First-Name"),
		LastName:        r.Header.Get("X-User-Last-Name"),
		ProfileImageURL: r.Header.Get("X-User-Image"),
	})
	if err != nil {
		h.logger.Error("failed to provision user", zap.String("user_id", userID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch user")
		return
	}

	writeJSON(w, http.StatusOK, user)
}
