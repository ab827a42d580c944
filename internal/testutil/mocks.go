package testutil

import (
	"stock-briefing/internal/agent"
	"stock-briefing/internal/model"
)

// MockSchedulerClient is a mock implementation of the scheduling service
// boundary for testing. It returns predefined data instead of making HTTP
// calls and counts invocations per method.
type MockSchedulerClient struct {
	// MockSchedule is returned by GetSchedule.
	MockSchedule model.Schedule
	// MockLogs is returned by GetLogs.
	MockLogs []model.ExecutionLog
	// MockError, when set, is returned by every method.
	MockError error

	GetScheduleCount int
	PauseCount       int
	ResumeCount      int
	TriggerCount     int
	GetLogsCount     int
}

// NewMockSchedulerClient creates a mock with an active daily schedule.
func NewMockSchedulerClient() *MockSchedulerClient {
	return &MockSchedulerClient{
		MockSchedule: model.Schedule{
			ID:             TestScheduleID,
			CronExpression: "30 8 * * *",
			Timezone:       "UTC",
			IsActive:       true,
		},
		MockLogs: []model.ExecutionLog{},
	}
}

// GetSchedule returns the configured schedule record.
func (m *MockSchedulerClient) GetSchedule(_ string) (model.Schedule, error) {
	m.GetScheduleCount++
	if m.MockError != nil {
		return model.Schedule{}, m.MockError
	}
	return m.MockSchedule, nil
}

// PauseSchedule records the pause request.
func (m *MockSchedulerClient) PauseSchedule(_ string) error {
	m.PauseCount++
	return m.MockError
}

// ResumeSchedule records the resume request.
func (m *MockSchedulerClient) ResumeSchedule(_ string) error {
	m.ResumeCount++
	return m.MockError
}

// TriggerNow records the trigger request.
func (m *MockSchedulerClient) TriggerNow(_ string) error {
	m.TriggerCount++
	return m.MockError
}

// GetLogs returns the configured execution log list.
func (m *MockSchedulerClient) GetLogs(_ string, _ int) ([]model.ExecutionLog, error) {
	m.GetLogsCount++
	if m.MockError != nil {
		return nil, m.MockError
	}
	return m.MockLogs, nil
}

// WithError configures the mock to fail every call with the given error.
func (m *MockSchedulerClient) WithError(err error) *MockSchedulerClient {
	m.MockError = err
	return m
}

// MockAgentClient is a mock implementation of the analysis agent boundary.
type MockAgentClient struct {
	// MockResult is returned on successful calls.
	MockResult agent.Result
	// MockError, when set, is returned instead.
	MockError error
	// LastMessage records the instruction passed to the most recent call.
	LastMessage string
	// CallCount tracks how many times CallAgent was invoked.
	CallCount int

	// Started, when non-nil, receives a signal as each call begins.
	Started chan struct{}
	// Release, when non-nil, blocks each call until it is closed. Used to
	// hold a call in flight while asserting guard behavior.
	Release chan struct{}
}

// NewMockAgentClient creates a mock returning a basic successful result.
func NewMockAgentClient() *MockAgentClient {
	return &MockAgentClient{
		MockResult: agent.Result{
			Summary:  "Markets steady; no action needed.",
			Insights: []string{"AAPL holding support"},
		},
	}
}

// CallAgent returns the configured result or error.
func (m *MockAgentClient) CallAgent(message, _ string) (agent.Result, error) {
	m.CallCount++
	m.LastMessage = message

	if m.Started != nil {
		m.Started <- struct{}{}
	}
	if m.Release != nil {
		<-m.Release
	}

	if m.MockError != nil {
		return agent.Result{}, m.MockError
	}
	return m.MockResult, nil
}

// WithError configures the mock to fail with the given error.
func (m *MockAgentClient) WithError(err error) *MockAgentClient {
	m.MockError = err
	return m
}
