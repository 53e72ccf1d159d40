package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sumzhq/sumz-portal/internal/auth"
	"github.com/sumzhq/sumz-portal/internal/model"
	"github.com/sumzhq/sumz-portal/internal/service"
)

const (
	quotaReachedMessage = "Maximum number of API keys reached."
	keyNotFoundMessage  = "API key not found."
	keyDeletedMessage   = "API key deleted successfully."
)

// APIKeyHandler handles API key management endpoints.
type APIKeyHandler struct {
	logger *slog.Logger
	keys   KeyService
}

// NewAPIKeyHandler creates a new APIKeyHandler.
func NewAPIKeyHandler(logger *slog.Logger, keys KeyService) *APIKeyHandler {
	return &APIKeyHandler{
		logger: logger,
		keys:   keys,
	}
}

// KeysPage renders the key management page.
// GET /api-keys (session required)
func (h *APIKeyHandler) KeysPage(w http.ResponseWriter, r *http.Request) {
	renderTemplate(h.logger, w, http.StatusOK, "api_keys.html", pageData{
		CurrentUser: auth.UserFromContext(r.Context()),
	})
}

// GenerateKey creates a new API key for the current user.
// POST /generate-key (session required)
func (h *APIKeyHandler) GenerateKey(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Authentication required."})
		return
	}

	key, err := h.keys.Create(r.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrQuotaExceeded) {
			writeJSON(w, http.StatusBadRequest, map[string]string{"message": quotaReachedMessage})
			return
		}
		h.logger.Error("failed to create API key", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to generate API key."})
		return
	}

	h.logger.Info("API key created", slog.String("user_id", userID))

	writeJSON(w, http.StatusOK, map[string]string{"api_key": key})
}

// KeysData lists the current user's API keys.
// GET /api-keys-data (session required)
func (h *APIKeyHandler) KeysData(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Authentication required."})
		return
	}

	keys, err := h.keys.List(r.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list API keys", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to load API keys."})
		return
	}

	// Marshal an empty array rather than null when the user has no keys.
	items := make([]model.APIKeyResponse, 0, len(keys))
	for _, k := range keys {
		items = append(items, k.ToResponse())
	}

	writeJSON(w, http.StatusOK, map[string][]model.APIKeyResponse{"api_keys": items})
}

// RegenerateKey replaces the value of one of the current user's keys.
// POST /api-keys/{key}/regenerate (session required)
func (h *APIKeyHandler) RegenerateKey(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Authentication required."})
		return
	}

	keyValue := chi.URLParam(r, "key")

	newKey, err := h.keys.Regenerate(r.Context(), userID, keyValue)
	if err != nil {
		if errors.Is(err, service.ErrKeyNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": keyNotFoundMessage})
			return
		}
		h.logger.Error("failed to regenerate API key", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to regenerate API key."})
		return
	}

	h.logger.Info("API key regenerated", slog.String("user_id", userID))

	writeJSON(w, http.StatusOK, map[string]string{"api_key": newKey})
}

// DeleteKey permanently removes one of the current user's keys.
// DELETE /api-keys/{key} (session required)
func (h *APIKeyHandler) DeleteKey(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserIDFromContext(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "Authentication required."})
		return
	}

	keyValue := chi.URLParam(r, "key")

	if err := h.keys.Delete(r.Context(), userID, keyValue); err != nil {
		if errors.Is(err, service.ErrKeyNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"message": keyNotFoundMessage})
			return
		}
		h.logger.Error("failed to delete API key", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"message": "Failed to delete API key."})
		return
	}

	h.logger.Info("API key deleted", slog.String("user_id", userID))

	writeJSON(w, http.StatusOK, map[string]string{"message": keyDeletedMessage})
}
