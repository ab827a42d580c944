package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"stock-briefing/internal/apperrors"
	"stock-briefing/internal/service"
)

// SettingsHandler handles configuration HTTP requests
type SettingsHandler struct {
	credentialService *service.CredentialService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(credentialService *service.CredentialService) *SettingsHandler {
	return &SettingsHandler{
		credentialService: credentialService,
	}
}

// ServiceKeyRequest represents the service-key update request body
type ServiceKeyRequest struct {
	APIKey string `json:"api_key"`
}

// PutServiceKey handles PUT /api/settings/service-key, storing the platform
// API key encrypted at rest and propagating it to the remote clients.
func (h *SettingsHandler) PutServiceKey(w http.ResponseWriter, r *http.Request) {
	var req ServiceKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error":  "invalid request body",
			"detail": err.Error(),
		})
		return
	}

	if strings.TrimSpace(req.APIKey) == "" {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error": "api_key is required",
		})
		return
	}

	if err := h.credentialService.Rotate(req.APIKey); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, apperrors.ErrFernetKeyMissing) {
			status = http.StatusConflict
		}
		respondJSON(w, status, map[string]string{
			"error":  "failed to store service key",
			"detail": err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": "service key updated",
	})
}
