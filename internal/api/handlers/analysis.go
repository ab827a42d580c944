package handlers

import (
	"net/http"
	"time"

	"stock-briefing/internal/model"
	"stock-briefing/internal/service"
)

// AnalysisHandler handles analysis HTTP requests
type AnalysisHandler struct {
	briefingService *service.BriefingService
}

// NewAnalysisHandler creates a new AnalysisHandler
func NewAnalysisHandler(briefingService *service.BriefingService) *AnalysisHandler {
	return &AnalysisHandler{
		briefingService: briefingService,
	}
}

// AnalysisEntryResponse represents one history entry in API responses
type AnalysisEntryResponse struct {
	ID          string   `json:"id"`
	Timestamp   string   `json:"timestamp"`
	Stocks      []string `json:"stocks"`
	Summary     string   `json:"summary"`
	KeyInsights []string `json:"key_insights"`
}

// RunAnalysisResponse represents the run-analysis success response
type RunAnalysisResponse struct {
	Message string                `json:"message"`
	Entry   AnalysisEntryResponse `json:"entry"`
}

// Run handles POST /api/analysis/run.
// Preconditions (non-empty watch-list and email) are checked before any
// remote call; violations return 400 without touching history.
func (h *AnalysisHandler) Run(w http.ResponseWriter, r *http.Request) {
	entry, err := h.briefingService.RunAnalysisNow()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	notice, _ := h.briefingService.Status()
	respondJSON(w, http.StatusOK, RunAnalysisResponse{
		Message: notice,
		Entry:   toEntryResponse(entry),
	})
}

// History handles GET /api/analysis/history, newest entries first.
func (h *AnalysisHandler) History(w http.ResponseWriter, r *http.Request) {
	history := h.briefingService.History()

	response := make([]AnalysisEntryResponse, len(history))
	for i, entry := range history {
		response[i] = toEntryResponse(entry)
	}

	respondJSON(w, http.StatusOK, response)
}

func toEntryResponse(entry model.AnalysisEntry) AnalysisEntryResponse {
	return AnalysisEntryResponse{
		ID:          entry.ID,
		Timestamp:   entry.Timestamp.Format(time.RFC3339),
		Stocks:      entry.Stocks,
		Summary:     entry.Summary,
		KeyInsights: entry.KeyInsights,
	}
}
