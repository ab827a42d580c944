package handlers

import (
	"net/http"

	"stock-briefing/internal/api/request"
	"stock-briefing/internal/model"
	"stock-briefing/internal/scheduler"
	"stock-briefing/internal/service"
)

// ScheduleHandler handles schedule HTTP requests
type ScheduleHandler struct {
	briefingService *service.BriefingService
}

// NewScheduleHandler creates a new ScheduleHandler
func NewScheduleHandler(briefingService *service.BriefingService) *ScheduleHandler {
	return &ScheduleHandler{
		briefingService: briefingService,
	}
}

// ScheduleResponse represents the schedule view in API responses
type ScheduleResponse struct {
	Schedule     model.Schedule `json:"schedule"`
	ScheduleText string         `json:"schedule_text"`
}

// Schedule handles GET /api/schedule. The record is always re-fetched from
// the remote scheduling service; nothing is served from a local cache.
func (h *ScheduleHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	fetched, err := h.briefingService.RefreshSchedule()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, ScheduleResponse{
		Schedule:     fetched,
		ScheduleText: scheduler.CronToHuman(fetched.CronExpression),
	})
}

// Toggle handles POST /api/schedule/toggle: pause when active, resume when
// paused, then reconcile from the remote source of truth.
func (h *ScheduleHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	toggled, err := h.briefingService.ToggleSchedule()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, ScheduleResponse{
		Schedule:     toggled,
		ScheduleText: scheduler.CronToHuman(toggled.CronExpression),
	})
}

// Trigger handles POST /api/schedule/trigger for out-of-band runs.
func (h *ScheduleHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	if err := h.briefingService.TriggerScheduleNow(); err != nil {
		respondServiceError(w, err)
		return
	}

	notice, _ := h.briefingService.Status()
	respondJSON(w, http.StatusAccepted, map[string]string{
		"message": notice,
	})
}

// Logs handles GET /api/schedule/logs. The list wholesale replaces the
// orchestrator's in-memory view.
func (h *ScheduleHandler) Logs(w http.ResponseWriter, r *http.Request) {
	logs, err := h.briefingService.RefreshLogs()
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, logs)
}

// Upcoming handles GET /api/schedule/upcoming?count=N, projecting the next
// run instants of the loaded schedule.
func (h *ScheduleHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	count, err := request.ParseRunCount(r.URL.Query().Get("count"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error": err.Error(),
		})
		return
	}

	runs, err := h.briefingService.UpcomingRuns(count)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string][]string{
		"upcoming_runs": runs,
	})
}
