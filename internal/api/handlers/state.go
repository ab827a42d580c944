package handlers

import (
	"net/http"

	"stock-briefing/internal/service"
)

// StateHandler serves the aggregate orchestrator state for rendering
type StateHandler struct {
	briefingService *service.BriefingService
}

// NewStateHandler creates a new StateHandler
func NewStateHandler(briefingService *service.BriefingService) *StateHandler {
	return &StateHandler{
		briefingService: briefingService,
	}
}

// State handles GET /api/state, returning a consistent snapshot of the full
// UI state without performing any remote calls.
func (h *StateHandler) State(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.briefingService.Snapshot())
}
