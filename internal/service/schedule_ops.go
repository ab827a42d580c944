package service

import (
	"time"

	"golang.org/x/sync/errgroup"

	"stock-briefing/internal/apperrors"
	"stock-briefing/internal/model"
	"stock-briefing/internal/projection"
	"stock-briefing/internal/scheduler"
)

// InvalidCronMessage is the single user-visible message shown in place of
// projected runs when the schedule's cron expression is malformed.
const InvalidCronMessage = "Invalid cron expression"

// upcomingRunCount is the number of projected runs included in a snapshot.
const upcomingRunCount = 5

// RefreshSchedule re-fetches the schedule record and replaces the in-memory
// view wholesale. The remote service is always the source of truth.
func (s *BriefingService) RefreshSchedule() (model.Schedule, error) {
	if err := s.begin(actionRefreshSchedule); err != nil {
		return model.Schedule{}, err
	}

	fetched, err := s.scheduler.GetSchedule(s.scheduleID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight[actionRefreshSchedule] = false

	if err != nil {
		s.setErrorLocked(err)
		return model.Schedule{}, err
	}

	s.schedule = &fetched
	s.clearErrorLocked()
	return fetched, nil
}

// RefreshLogs re-fetches the execution log list and replaces the in-memory
// view wholesale. No merge logic: the latest fetch wins.
func (s *BriefingService) RefreshLogs() ([]model.ExecutionLog, error) {
	if err := s.begin(actionRefreshLogs); err != nil {
		return nil, err
	}

	fetched, err := s.scheduler.GetLogs(s.scheduleID, s.logLimit)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight[actionRefreshLogs] = false

	if err != nil {
		s.setErrorLocked(err)
		return nil, err
	}

	s.logs = fetched
	s.clearErrorLocked()
	return append([]model.ExecutionLog{}, fetched...), nil
}

// RefreshAll fetches schedule and execution logs concurrently. A failed slot
// keeps its previous in-memory value; the first failure is returned.
func (s *BriefingService) RefreshAll() error {
	var g errgroup.Group

	g.Go(func() error {
		_, err := s.RefreshSchedule()
		return err
	})
	g.Go(func() error {
		_, err := s.RefreshLogs()
		return err
	})

	return g.Wait()
}

// ToggleSchedule pauses the job when active and resumes it when paused. On
// success the schedule is re-fetched from the remote service rather than
// flipping the local flag; on failure the prior view is left unchanged.
func (s *BriefingService) ToggleSchedule() (model.Schedule, error) {
	s.mu.Lock()
	if s.inFlight[actionToggle] {
		s.mu.Unlock()
		return model.Schedule{}, apperrors.ErrOperationInFlight
	}
	if s.schedule == nil {
		s.setErrorLocked(apperrors.ErrScheduleNotLoaded)
		s.mu.Unlock()
		return model.Schedule{}, apperrors.ErrScheduleNotLoaded
	}
	wasActive := s.schedule.IsActive
	s.inFlight[actionToggle] = true
	s.mu.Unlock()

	var err error
	if wasActive {
		err = s.scheduler.PauseSchedule(s.scheduleID)
	} else {
		err = s.scheduler.ResumeSchedule(s.scheduleID)
	}

	var fetched model.Schedule
	if err == nil {
		fetched, err = s.scheduler.GetSchedule(s.scheduleID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight[actionToggle] = false

	if err != nil {
		s.setErrorLocked(err)
		return model.Schedule{}, err
	}

	s.schedule = &fetched
	s.clearErrorLocked()
	return fetched, nil
}

// TriggerScheduleNow requests an out-of-band run of the schedule job. On
// success an optimistic notice is set and a delayed log refresh is scheduled
// so the new execution shows up once the backend has recorded it.
func (s *BriefingService) TriggerScheduleNow() error {
	if err := s.begin(actionTrigger); err != nil {
		return err
	}

	err := s.scheduler.TriggerNow(s.scheduleID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight[actionTrigger] = false

	if err != nil {
		s.setErrorLocked(err)
		return err
	}

	s.setNoticeLocked(noticeTriggered)
	time.AfterFunc(s.logRefreshDelay, func() {
		if _, err := s.RefreshLogs(); err != nil {
			// Best-effort follow-up; the error slot already reflects it.
			return
		}
	})
	return nil
}

// Schedule returns the current in-memory schedule view, or nil when the
// schedule has not been loaded yet.
func (s *BriefingService) Schedule() *model.Schedule {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.schedule == nil {
		return nil
	}
	copied := *s.schedule
	return &copied
}

// Logs returns a copy of the current execution log view.
func (s *BriefingService) Logs() []model.ExecutionLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.ExecutionLog{}, s.logs...)
}

// ScheduleText renders the loaded schedule's cron expression as human text.
// The expression's shape is validated locally; rendering is delegated to the
// scheduler package.
func (s *BriefingService) ScheduleText() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.schedule == nil {
		return "", apperrors.ErrScheduleNotLoaded
	}
	if err := projection.Validate(s.schedule.CronExpression); err != nil {
		return "", err
	}
	return scheduler.CronToHuman(s.schedule.CronExpression), nil
}

// UpcomingRuns projects the next count run instants of the loaded schedule,
// formatted for display in the schedule's timezone.
func (s *BriefingService) UpcomingRuns(count int) ([]string, error) {
	s.mu.Lock()
	expr, tz, loaded := "", "", false
	if s.schedule != nil {
		expr, tz, loaded = s.schedule.CronExpression, s.schedule.Timezone, true
	}
	s.mu.Unlock()

	if !loaded {
		return nil, apperrors.ErrScheduleNotLoaded
	}

	runs, err := projection.NextRuns(expr, tz, count)
	if err != nil {
		return nil, err
	}
	return projection.FormatRuns(runs), nil
}

// begin acquires the in-flight guard for an action that has no local
// preconditions. The caller must clear the flag when the action completes.
func (s *BriefingService) begin(action string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[action] {
		return apperrors.ErrOperationInFlight
	}
	s.inFlight[action] = true
	return nil
}
