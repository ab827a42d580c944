// Package agent is the client boundary to the remote analysis agent.
// The agent's analysis algorithm is opaque; this package submits a
// natural-language instruction and returns the structured result.
package agent

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"
)

// DefaultSummary is used when the agent result omits a summary.
const DefaultSummary = "Analysis completed"

// Result is the structured outcome of one agent call. The agent's response
// shape is externally defined and only loosely validated, so both fields
// carry explicit fallbacks: Summary is never empty and Insights is never nil.
type Result struct {
	Summary  string
	Insights []string
}

// callRequest is the wire request for an agent invocation.
type callRequest struct {
	Message string `json:"message"`
}

// callResponse is the raw envelope returned by the agent platform. The nested
// result fields are optional; absent fields must not fail the call.
type callResponse struct {
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
	Response *struct {
		Result *struct {
			Summary  string   `json:"summary"`
			Insights []string `json:"insights"`
		} `json:"result"`
	} `json:"response,omitempty"`
}

// Client invokes the remote analysis agent over its REST API.
// Safe for concurrent use; the API key may be rotated while calls are in flight.
type Client struct {
	baseURL    string
	httpClient *http.Client

	mu     sync.RWMutex
	apiKey string
}

// NewClient creates a new agent client targeting the given base URL.
// Agent runs can take a while, so the timeout is generous.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

// SetAPIKey sets the platform API key attached to outgoing requests.
func (c *Client) SetAPIKey(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apiKey = key
}

// CallAgent submits a natural-language instruction to the agent identified by
// agentID and returns its structured result.
//
// POST /api/agents/{agentId}/call with { message }
// -> { success, response: { result: { summary?, insights? } }, error? }
func (c *Client) CallAgent(message, agentID string) (Result, error) {
	payload, err := json.Marshal(callRequest{Message: message})
	if err != nil {
		return Result{}, err
	}

	url := c.baseURL + "/api/agents/" + agentID + "/call"
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return Result{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	c.mu.RLock()
	apiKey := c.apiKey
	c.mu.RUnlock()
	if apiKey != "" {
		req.Header.Set("X-API-Key", apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("failed to reach agent service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return Result{}, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Result{}, fmt.Errorf("agent service returned %d: %s", resp.StatusCode, string(body))
	}

	var result callResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return Result{}, fmt.Errorf("failed to parse agent response: %w", err)
	}

	if !result.Success {
		message := result.Error
		if message == "" {
			message = "analysis failed"
		}
		return Result{}, fmt.Errorf("agent error: %s", message)
	}

	return parseResult(result), nil
}

// parseResult extracts summary and insights from a successful envelope,
// applying fallbacks for absent fields.
func parseResult(resp callResponse) Result {
	parsed := Result{
		Summary:  DefaultSummary,
		Insights: []string{},
	}

	if resp.Response == nil || resp.Response.Result == nil {
		return parsed
	}
	if resp.Response.Result.Summary != "" {
		parsed.Summary = resp.Response.Result.Summary
	}
	if resp.Response.Result.Insights != nil {
		parsed.Insights = resp.Response.Result.Insights
	}

	return parsed
}
