package handlers_test

import (
	"errors"
	"net/http"
	"testing"

	"stock-briefing/internal/api/handlers"
)

// TestAnalysisEndpoints verifies the on-demand analysis routes.
func TestAnalysisEndpoints(t *testing.T) {
	t.Run("RunWithEmptyWatchList", func(t *testing.T) {
		env := setupEnv(t)
		if err := env.briefing.SaveEmail("user@example.com"); err != nil {
			t.Fatalf("Failed to save email: %v", err)
		}

		rec := env.do(t, http.MethodPost, "/api/analysis/run", nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", rec.Code)
		}
		if env.agent.CallCount != 0 {
			t.Errorf("Agent should not be called, got %d calls", env.agent.CallCount)
		}
	})

	t.Run("RunWithoutEmail", func(t *testing.T) {
		env := setupEnv(t)
		if _, err := env.briefing.AddStock("AAPL"); err != nil {
			t.Fatalf("Failed to add stock: %v", err)
		}

		rec := env.do(t, http.MethodPost, "/api/analysis/run", nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", rec.Code)
		}
	})

	t.Run("RunSuccess", func(t *testing.T) {
		env := setupEnv(t)
		if _, err := env.briefing.AddStock("AAPL"); err != nil {
			t.Fatalf("Failed to add stock: %v", err)
		}
		if err := env.briefing.SaveEmail("user@example.com"); err != nil {
			t.Fatalf("Failed to save email: %v", err)
		}

		rec := env.do(t, http.MethodPost, "/api/analysis/run", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var resp handlers.RunAnalysisResponse
		decode(t, rec, &resp)
		if resp.Message != "Analysis completed and email sent successfully" {
			t.Errorf("Unexpected message: %q", resp.Message)
		}
		if resp.Entry.ID == "" || resp.Entry.Timestamp == "" {
			t.Errorf("Entry missing identity fields: %+v", resp.Entry)
		}
		if len(resp.Entry.Stocks) != 1 || resp.Entry.Stocks[0] != "AAPL" {
			t.Errorf("Unexpected analyzed stocks: %v", resp.Entry.Stocks)
		}
	})

	t.Run("RunAgentFailure", func(t *testing.T) {
		env := setupEnv(t)
		env.agent.WithError(errors.New("agent error: quota exceeded"))
		if _, err := env.briefing.AddStock("AAPL"); err != nil {
			t.Fatalf("Failed to add stock: %v", err)
		}
		if err := env.briefing.SaveEmail("user@example.com"); err != nil {
			t.Fatalf("Failed to save email: %v", err)
		}

		rec := env.do(t, http.MethodPost, "/api/analysis/run", nil)
		if rec.Code != http.StatusBadGateway {
			t.Errorf("Expected 502, got %d", rec.Code)
		}
	})

	t.Run("HistoryNewestFirst", func(t *testing.T) {
		env := setupEnv(t)
		if _, err := env.briefing.AddStock("AAPL"); err != nil {
			t.Fatalf("Failed to add stock: %v", err)
		}
		if err := env.briefing.SaveEmail("user@example.com"); err != nil {
			t.Fatalf("Failed to save email: %v", err)
		}
		first, err := env.briefing.RunAnalysisNow()
		if err != nil {
			t.Fatalf("Failed to run analysis: %v", err)
		}
		second, err := env.briefing.RunAnalysisNow()
		if err != nil {
			t.Fatalf("Failed to run analysis: %v", err)
		}

		rec := env.do(t, http.MethodGet, "/api/analysis/history", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rec.Code)
		}

		var resp []handlers.AnalysisEntryResponse
		decode(t, rec, &resp)
		if len(resp) != 2 {
			t.Fatalf("Expected 2 entries, got %d", len(resp))
		}
		if resp[0].ID != second.ID || resp[1].ID != first.ID {
			t.Error("History not ordered newest first")
		}
	})
}
