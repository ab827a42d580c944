// Package scheduler is the client boundary to the remote scheduling service.
// The service owns cron triggering, retries, and email delivery; this package
// only consumes its REST API.
package scheduler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"stock-briefing/internal/model"
)

// Client provides methods for managing the remote recurring analysis job.
// It wraps an HTTP client targeting the scheduling service's REST API.
// Safe for concurrent use; the API key may be rotated while calls are in flight.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu     sync.RWMutex
	apiKey string
}

// NewClient creates a new scheduler client targeting the given base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// SetAPIKey sets the platform API key attached to outgoing requests.
// An empty key means requests are sent unauthenticated.
func (c *Client) SetAPIKey(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apiKey = key
}

// GetSchedule fetches the schedule record for the given job ID.
//
// GET /api/schedules/{id} -> { success, schedule }
func (c *Client) GetSchedule(scheduleID string) (model.Schedule, error) {
	body, err := c.do(http.MethodGet, "/api/schedules/"+scheduleID, nil)
	if err != nil {
		return model.Schedule{}, err
	}

	var result scheduleResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return model.Schedule{}, fmt.Errorf("failed to parse schedule response: %w", err)
	}
	if !result.Success || result.Schedule == nil {
		return model.Schedule{}, remoteError(result.Error, "schedule fetch failed")
	}

	s := result.Schedule
	return model.Schedule{
		ID:             s.ID,
		CronExpression: s.CronExpression,
		Timezone:       s.Timezone,
		IsActive:       s.IsActive,
		NextRunTime:    s.NextRunTime,
		LastRunAt:      s.LastRunAt,
		LastRunSuccess: s.LastRunSuccess,
	}, nil
}

// PauseSchedule pauses the schedule job.
//
// POST /api/schedules/{id}/pause -> { success, error? }
func (c *Client) PauseSchedule(scheduleID string) error {
	return c.action(scheduleID, "pause")
}

// ResumeSchedule resumes a paused schedule job.
//
// POST /api/schedules/{id}/resume -> { success, error? }
func (c *Client) ResumeSchedule(scheduleID string) error {
	return c.action(scheduleID, "resume")
}

// TriggerNow requests an out-of-band run of the schedule job.
//
// POST /api/schedules/{id}/trigger -> { success, error? }
func (c *Client) TriggerNow(scheduleID string) error {
	return c.action(scheduleID, "trigger")
}

// GetLogs fetches the most recent execution log entries for the job.
//
// GET /api/schedules/{id}/logs?limit=N -> { success, executions }
func (c *Client) GetLogs(scheduleID string, limit int) ([]model.ExecutionLog, error) {
	path := fmt.Sprintf("/api/schedules/%s/logs?limit=%d", scheduleID, limit)
	body, err := c.do(http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var result logsResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse logs response: %w", err)
	}
	if !result.Success {
		return nil, remoteError(result.Error, "log fetch failed")
	}

	logs := make([]model.ExecutionLog, len(result.Executions))
	for i, e := range result.Executions {
		logs[i] = model.ExecutionLog{
			ID:         e.ID,
			ExecutedAt: e.ExecutedAt,
			Success:    e.Success,
		}
	}

	return logs, nil
}

// action executes one of the pause/resume/trigger endpoints.
func (c *Client) action(scheduleID, verb string) error {
	body, err := c.do(http.MethodPost, "/api/schedules/"+scheduleID+"/"+verb, nil)
	if err != nil {
		return err
	}

	var result actionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse %s response: %w", verb, err)
	}
	if !result.Success {
		return remoteError(result.Error, verb+" failed")
	}

	return nil
}

// do executes an HTTP request against the scheduling service and returns the
// response body. Non-2xx responses are returned as errors.
func (c *Client) do(method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.mu.RLock()
	apiKey := c.apiKey
	c.mu.RUnlock()
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach scheduling service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("scheduling service returned %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}

// remoteError converts a remote failure message into an error, falling back to
// a generic message when the service did not supply one.
func remoteError(message, fallback string) error {
	if message == "" {
		message = fallback
	}
	return fmt.Errorf("scheduling service error: %s", message)
}
