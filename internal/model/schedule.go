package model

import "time"

// Schedule mirrors the single remote recurring analysis job.
// It is fetched fresh from the scheduling service and held in memory only;
// the backend remains the source of truth for every field.
type Schedule struct {
	ID             string     `json:"id"`
	CronExpression string     `json:"cron_expression"`
	Timezone       string     `json:"timezone"`
	IsActive       bool       `json:"is_active"`
	NextRunTime    *time.Time `json:"next_run_time,omitempty"`
	LastRunAt      *time.Time `json:"last_run_at,omitempty"`
	// LastRunSuccess is tri-state: nil means the outcome of the last run is unknown.
	LastRunSuccess *bool `json:"last_run_success,omitempty"`
}

// ExecutionLog records one past invocation of the schedule job.
type ExecutionLog struct {
	ID         string    `json:"id"`
	ExecutedAt time.Time `json:"executed_at"`
	Success    bool      `json:"success"`
}
