package service_test

import (
	"errors"
	"testing"
	"time"

	"stock-briefing/internal/apperrors"
	"stock-briefing/internal/model"
	"stock-briefing/internal/testutil"
)

// TestRefreshSchedule verifies the schedule view is replaced wholesale.
func TestRefreshSchedule(t *testing.T) {
	t.Run("ReplacesView", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc, schedulerClient, _ := testutil.NewTestBriefingService(t, db)

		schedule, err := svc.RefreshSchedule()
		if err != nil {
			t.Fatalf("Failed to refresh schedule: %v", err)
		}
		if schedule.ID != testutil.TestScheduleID {
			t.Errorf("Unexpected schedule ID: %s", schedule.ID)
		}

		schedulerClient.MockSchedule.CronExpression = "0 18 * * *"
		refreshed, err := svc.RefreshSchedule()
		if err != nil {
			t.Fatalf("Failed to refresh schedule: %v", err)
		}
		if refreshed.CronExpression != "0 18 * * *" {
			t.Errorf("View not replaced, got %s", refreshed.CronExpression)
		}
		if got := svc.Schedule(); got == nil || got.CronExpression != "0 18 * * *" {
			t.Errorf("Stored view not replaced: %+v", got)
		}
	})

	t.Run("FailureKeepsPriorView", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc, schedulerClient, _ := testutil.NewTestBriefingService(t, db)

		if _, err := svc.RefreshSchedule(); err != nil {
			t.Fatalf("Failed to refresh schedule: %v", err)
		}

		schedulerClient.WithError(errors.New("scheduling service error: unavailable"))
		if _, err := svc.RefreshSchedule(); err == nil {
			t.Fatal("Expected refresh failure")
		}

		if got := svc.Schedule(); got == nil || got.ID != testutil.TestScheduleID {
			t.Errorf("Prior view lost: %+v", got)
		}
		if _, lastError := svc.Status(); lastError != "scheduling service error: unavailable" {
			t.Errorf("Unexpected error slot: %q", lastError)
		}
	})
}

// TestRefreshLogs verifies the execution log view is replaced wholesale.
func TestRefreshLogs(t *testing.T) {
	t.Run("ReplacesView", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc, schedulerClient, _ := testutil.NewTestBriefingService(t, db)

		schedulerClient.MockLogs = []model.ExecutionLog{
			{ID: "exec-1", ExecutedAt: time.Now().UTC(), Success: true},
		}

		logs, err := svc.RefreshLogs()
		if err != nil {
			t.Fatalf("Failed to refresh logs: %v", err)
		}
		if len(logs) != 1 || logs[0].ID != "exec-1" {
			t.Errorf("Unexpected logs: %v", logs)
		}

		schedulerClient.MockLogs = []model.ExecutionLog{
			{ID: "exec-2", ExecutedAt: time.Now().UTC(), Success: true},
			{ID: "exec-1", ExecutedAt: time.Now().UTC(), Success: true},
		}
		if _, err := svc.RefreshLogs(); err != nil {
			t.Fatalf("Failed to refresh logs: %v", err)
		}
		if got := svc.Logs(); len(got) != 2 || got[0].ID != "exec-2" {
			t.Errorf("View not replaced: %v", got)
		}
	})

	t.Run("FailureKeepsPriorView", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc, schedulerClient, _ := testutil.NewTestBriefingService(t, db)

		schedulerClient.MockLogs = []model.ExecutionLog{{ID: "exec-1"}}
		if _, err := svc.RefreshLogs(); err != nil {
			t.Fatalf("Failed to refresh logs: %v", err)
		}

		schedulerClient.WithError(errors.New("scheduling service error: timeout"))
		if _, err := svc.RefreshLogs(); err == nil {
			t.Fatal("Expected refresh failure")
		}
		if got := svc.Logs(); len(got) != 1 || got[0].ID != "exec-1" {
			t.Errorf("Prior view lost: %v", got)
		}
	})
}

// TestRefreshAll verifies the combined fetch populates both views.
func TestRefreshAll(t *testing.T) {
	t.Run("PopulatesBothViews", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc, schedulerClient, _ := testutil.NewTestBriefingService(t, db)
		schedulerClient.MockLogs = []model.ExecutionLog{{ID: "exec-1"}}

		if err := svc.RefreshAll(); err != nil {
			t.Fatalf("Failed to refresh all: %v", err)
		}

		if svc.Schedule() == nil {
			t.Error("Schedule view not populated")
		}
		if len(svc.Logs()) != 1 {
			t.Errorf("Log view not populated: %v", svc.Logs())
		}
		if schedulerClient.GetScheduleCount != 1 || schedulerClient.GetLogsCount != 1 {
			t.Errorf("Expected one fetch each, got %d and %d",
				schedulerClient.GetScheduleCount, schedulerClient.GetLogsCount)
		}
	})

	t.Run("ReturnsFirstFailure", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc, schedulerClient, _ := testutil.NewTestBriefingService(t, db)
		schedulerClient.WithError(errors.New("scheduling service error: unavailable"))

		if err := svc.RefreshAll(); err == nil {
			t.Fatal("Expected refresh failure")
		}
	})
}

// TestToggleSchedule verifies pause/resume dispatch and remote reconciliation.
func TestToggleSchedule(t *testing.T) {
	t.Run("NotLoaded", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc, _, _ := testutil.NewTestBriefingService(t, db)

		_, err := svc.ToggleSchedule()
		if !errors.Is(err, apperrors.ErrScheduleNotLoaded) {
			t.Errorf("Expected ErrScheduleNotLoaded, got %v", err)
		}
	})

	t.Run("PausesActiveSchedule", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc, schedulerClient, _ := testutil.NewTestBriefingService(t, db)

		if _, err := svc.RefreshSchedule(); err != nil {
			t.Fatalf("Failed to refresh schedule: %v", err)
		}

		schedulerClient.MockSchedule.IsActive = false
		schedule, err := svc.ToggleSchedule()
		if err != nil {
			t.Fatalf("Failed to toggle: %v", err)
		}

		if schedulerClient.PauseCount != 1 || schedulerClient.ResumeCount != 0 {
			t.Errorf("Expected one pause, got pause=%d resume=%d",
				schedulerClient.PauseCount, schedulerClient.ResumeCount)
		}
		if schedule.IsActive {
			t.Error("Expected paused schedule after toggle")
		}
	})

	t.Run("ResumesPausedSchedule", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc, schedulerClient, _ := testutil.NewTestBriefingService(t, db)

		schedulerClient.MockSchedule.IsActive = false
		if _, err := svc.RefreshSchedule(); err != nil {
			t.Fatalf("Failed to refresh schedule: %v", err)
		}

		schedulerClient.MockSchedule.IsActive = true
		schedule, err := svc.ToggleSchedule()
		if err != nil {
			t.Fatalf("Failed to toggle: %v", err)
		}

		if schedulerClient.ResumeCount != 1 || schedulerClient.PauseCount != 0 {
			t.Errorf("Expected one resume, got pause=%d resume=%d",
				schedulerClient.PauseCount, schedulerClient.ResumeCount)
		}
		if !schedule.IsActive {
			t.Error("Expected active schedule after toggle")
		}
	})

	t.Run("ViewFollowsRemoteNotLocalFlip", func(t *testing.T) {
		// If the remote service reports the job still paused after a resume,
		// the view shows paused. The re-fetch is authoritative.
		db := testutil.SetupTestDB(t)
		svc, schedulerClient, _ := testutil.NewTestBriefingService(t, db)

		schedulerClient.MockSchedule.IsActive = false
		if _, err := svc.RefreshSchedule(); err != nil {
			t.Fatalf("Failed to refresh schedule: %v", err)
		}

		schedule, err := svc.ToggleSchedule()
		if err != nil {
			t.Fatalf("Failed to toggle: %v", err)
		}
		if schedulerClient.ResumeCount != 1 {
			t.Errorf("Expected one resume, got %d", schedulerClient.ResumeCount)
		}
		if schedule.IsActive {
			t.Error("View should reflect the remote state, not an optimistic flip")
		}
	})

	t.Run("FailureKeepsPriorView", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc, schedulerClient, _ := testutil.NewTestBriefingService(t, db)

		if _, err := svc.RefreshSchedule(); err != nil {
			t.Fatalf("Failed to refresh schedule: %v", err)
		}

		schedulerClient.WithError(errors.New("scheduling service error: locked"))
		if _, err := svc.ToggleSchedule(); err == nil {
			t.Fatal("Expected toggle failure")
		}

		if got := svc.Schedule(); got == nil || !got.IsActive {
			t.Errorf("Prior view lost: %+v", got)
		}
	})
}

// TestTriggerScheduleNow verifies the manual trigger flow and its follow-up
// log refresh.
func TestTriggerScheduleNow(t *testing.T) {
	t.Run("SetsNoticeAndRefreshesLogsLater", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc, schedulerClient, _ := testutil.NewTestBriefingService(t, db)
		svc.SetLogRefreshDelay(10 * time.Millisecond)

		schedulerClient.MockLogs = []model.ExecutionLog{{ID: "exec-new"}}

		if err := svc.TriggerScheduleNow(); err != nil {
			t.Fatalf("Failed to trigger: %v", err)
		}
		if schedulerClient.TriggerCount != 1 {
			t.Errorf("Expected one trigger call, got %d", schedulerClient.TriggerCount)
		}

		notice, _ := svc.Status()
		if notice != "Manual analysis triggered - check email shortly" {
			t.Errorf("Unexpected notice: %q", notice)
		}

		// The follow-up refresh runs after the configured delay.
		deadline := time.After(2 * time.Second)
		for len(svc.Logs()) == 0 {
			select {
			case <-deadline:
				t.Fatal("Follow-up log refresh never happened")
			case <-time.After(5 * time.Millisecond):
			}
		}
		if got := svc.Logs(); got[0].ID != "exec-new" {
			t.Errorf("Unexpected refreshed logs: %v", got)
		}
	})

	t.Run("FailureSetsErrorSlot", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc, schedulerClient, _ := testutil.NewTestBriefingService(t, db)
		schedulerClient.WithError(errors.New("scheduling service error: locked"))

		if err := svc.TriggerScheduleNow(); err == nil {
			t.Fatal("Expected trigger failure")
		}
		notice, lastError := svc.Status()
		if notice != "" {
			t.Errorf("Expected empty notice, got %q", notice)
		}
		if lastError != "scheduling service error: locked" {
			t.Errorf("Unexpected error slot: %q", lastError)
		}
	})
}

// TestScheduleText verifies human rendering of the loaded schedule.
func TestScheduleText(t *testing.T) {
	t.Run("NotLoaded", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc, _, _ := testutil.NewTestBriefingService(t, db)

		if _, err := svc.ScheduleText(); !errors.Is(err, apperrors.ErrScheduleNotLoaded) {
			t.Errorf("Expected ErrScheduleNotLoaded, got %v", err)
		}
	})

	t.Run("RendersLoadedSchedule", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc, _, _ := testutil.NewTestBriefingService(t, db)
		if _, err := svc.RefreshSchedule(); err != nil {
			t.Fatalf("Failed to refresh schedule: %v", err)
		}

		text, err := svc.ScheduleText()
		if err != nil {
			t.Fatalf("Failed to render schedule: %v", err)
		}
		if text != "Every day at 8:30 AM" {
			t.Errorf("Unexpected rendering: %q", text)
		}
	})

	t.Run("MalformedCron", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc, schedulerClient, _ := testutil.NewTestBriefingService(t, db)
		schedulerClient.MockSchedule.CronExpression = "30 8 * *"
		if _, err := svc.RefreshSchedule(); err != nil {
			t.Fatalf("Failed to refresh schedule: %v", err)
		}

		if _, err := svc.ScheduleText(); !errors.Is(err, apperrors.ErrInvalidCronExpression) {
			t.Errorf("Expected ErrInvalidCronExpression, got %v", err)
		}
	})
}

// TestUpcomingRuns verifies run projection through the service.
func TestUpcomingRuns(t *testing.T) {
	t.Run("NotLoaded", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc, _, _ := testutil.NewTestBriefingService(t, db)

		if _, err := svc.UpcomingRuns(5); !errors.Is(err, apperrors.ErrScheduleNotLoaded) {
			t.Errorf("Expected ErrScheduleNotLoaded, got %v", err)
		}
	})

	t.Run("ProjectsLoadedSchedule", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc, _, _ := testutil.NewTestBriefingService(t, db)
		if _, err := svc.RefreshSchedule(); err != nil {
			t.Fatalf("Failed to refresh schedule: %v", err)
		}

		runs, err := svc.UpcomingRuns(3)
		if err != nil {
			t.Fatalf("Failed to project runs: %v", err)
		}
		if len(runs) != 3 {
			t.Errorf("Expected 3 runs, got %v", runs)
		}
	})

	t.Run("MalformedCron", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc, schedulerClient, _ := testutil.NewTestBriefingService(t, db)
		schedulerClient.MockSchedule.CronExpression = "bad"
		if _, err := svc.RefreshSchedule(); err != nil {
			t.Fatalf("Failed to refresh schedule: %v", err)
		}

		if _, err := svc.UpcomingRuns(5); !errors.Is(err, apperrors.ErrInvalidCronExpression) {
			t.Errorf("Expected ErrInvalidCronExpression, got %v", err)
		}
	})
}
