package service

import (
	"errors"

	"stock-briefing/internal/apperrors"
	"stock-briefing/internal/model"
	"stock-briefing/internal/projection"
	"stock-briefing/internal/scheduler"
)

// Snapshot is a consistent copy of the full orchestrator state for rendering.
// Notice and Error are mutually exclusive: at most one is non-empty.
type Snapshot struct {
	Portfolio    model.Portfolio       `json:"portfolio"`
	History      []model.AnalysisEntry `json:"history"`
	Schedule     *model.Schedule       `json:"schedule,omitempty"`
	ScheduleText string                `json:"schedule_text,omitempty"`
	UpcomingRuns []string              `json:"upcoming_runs,omitempty"`
	Logs         []model.ExecutionLog  `json:"logs"`
	Notice       string                `json:"notice,omitempty"`
	Error        string                `json:"error,omitempty"`
}

// Snapshot returns a copy of the current UI state. Schedule metadata is
// derived on the fly; a malformed cron expression yields the single
// invalid-format sentinel instead of failing the snapshot.
func (s *BriefingService) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		Portfolio: s.portfolioCopyLocked(),
		History:   s.historyCopyLocked(),
		Logs:      append([]model.ExecutionLog{}, s.logs...),
		Notice:    s.notice,
		Error:     s.lastError,
	}

	if s.schedule != nil {
		copied := *s.schedule
		snap.Schedule = &copied

		if err := projection.Validate(copied.CronExpression); err != nil {
			snap.ScheduleText = InvalidCronMessage
			snap.UpcomingRuns = []string{InvalidCronMessage}
		} else {
			snap.ScheduleText = scheduler.CronToHuman(copied.CronExpression)
			runs, err := projection.NextRuns(copied.CronExpression, copied.Timezone, upcomingRunCount)
			if err != nil {
				snap.UpcomingRuns = []string{InvalidCronMessage}
			} else {
				snap.UpcomingRuns = projection.FormatRuns(runs)
			}
		}
	}

	return snap
}

// Status returns the current notice and error message slots.
func (s *BriefingService) Status() (notice, lastError string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notice, s.lastError
}

// setNoticeLocked records a success notification and clears any prior error.
// Caller must hold s.mu.
func (s *BriefingService) setNoticeLocked(message string) {
	s.notice = message
	s.lastError = ""
}

// setErrorLocked records a user-visible error message and clears any prior
// notice. In-flight guard rejections are deliberately not recorded: the
// original action is still running and owns the message slot. Caller must
// hold s.mu.
func (s *BriefingService) setErrorLocked(err error) {
	if errors.Is(err, apperrors.ErrOperationInFlight) {
		return
	}
	s.lastError = err.Error()
	s.notice = ""
}

// clearErrorLocked clears the error slot after a successful operation without
// setting a notice. Caller must hold s.mu.
func (s *BriefingService) clearErrorLocked() {
	s.lastError = ""
}
