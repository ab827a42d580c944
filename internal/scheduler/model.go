package scheduler

import "time"

// scheduleResponse represents the raw JSON envelope returned by the scheduling
// service for schedule fetches.
type scheduleResponse struct {
	Success  bool            `json:"success"`
	Schedule *scheduleRecord `json:"schedule,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// scheduleRecord is the wire representation of the remote schedule job.
type scheduleRecord struct {
	ID             string     `json:"id"`
	CronExpression string     `json:"cron_expression"`
	Timezone       string     `json:"timezone"`
	IsActive       bool       `json:"is_active"`
	NextRunTime    *time.Time `json:"next_run_time"`
	LastRunAt      *time.Time `json:"last_run_at"`
	LastRunSuccess *bool      `json:"last_run_success"`
}

// actionResponse represents the envelope for pause/resume/trigger calls.
type actionResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// logsResponse represents the envelope for execution log fetches.
type logsResponse struct {
	Success    bool              `json:"success"`
	Executions []executionRecord `json:"executions"`
	Error      string            `json:"error,omitempty"`
}

// executionRecord is the wire representation of one past job invocation.
type executionRecord struct {
	ID         string    `json:"id"`
	ExecutedAt time.Time `json:"executed_at"`
	Success    bool      `json:"success"`
}
