package testutil

import (
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"

	"stock-briefing/internal/model"
	"stock-briefing/internal/repository"
	"stock-briefing/internal/service"
)

// Identifiers used throughout the test suite.
const (
	TestScheduleID = "698be3f5ebe6fd87d1dcc0f0"
	TestAgentID    = "698be3e9544d8929157d02a4"

	// TestFernetKey is a base64-encoded 32-byte fernet key for tests only.
	// Never use it outside the test suite.
	TestFernetKey = "cw_0x689RpI-jtRR7oE8h_eQsKImvJapLeSbXpwF4e4="
)

// NewTestBriefingService wires a BriefingService to a real preference store and
// mock remote clients. Returns the service and both mocks so tests can stage
// responses and assert call counts.
func NewTestBriefingService(t *testing.T, db *sql.DB) (*service.BriefingService, *MockSchedulerClient, *MockAgentClient) {
	t.Helper()

	schedulerClient := NewMockSchedulerClient()
	agentClient := NewMockAgentClient()
	svc := service.NewBriefingService(
		repository.NewPreferenceRepository(db),
		schedulerClient,
		agentClient,
		TestScheduleID,
		TestAgentID,
		10,
	)
	return svc, schedulerClient, agentClient
}

// SeedPortfolio writes a watch-list and email directly into the preference
// store, bypassing the service, to simulate state from a previous run.
func SeedPortfolio(t *testing.T, db *sql.DB, stocks []string, email string) {
	t.Helper()

	repo := repository.NewPreferenceRepository(db)
	data, err := json.Marshal(stocks)
	if err != nil {
		t.Fatalf("Failed to serialize watch-list: %v", err)
	}
	if err := repo.Set(repository.KeyPortfolioStocks, string(data)); err != nil {
		t.Fatalf("Failed to seed watch-list: %v", err)
	}
	if err := repo.Set(repository.KeyPortfolioEmail, email); err != nil {
		t.Fatalf("Failed to seed email: %v", err)
	}
}

// SeedHistory writes analysis history directly into the preference store.
func SeedHistory(t *testing.T, db *sql.DB, entries []model.AnalysisEntry) {
	t.Helper()

	repo := repository.NewPreferenceRepository(db)
	data, err := json.Marshal(entries)
	if err != nil {
		t.Fatalf("Failed to serialize history: %v", err)
	}
	if err := repo.Set(repository.KeyAnalysisHistory, string(data)); err != nil {
		t.Fatalf("Failed to seed history: %v", err)
	}
}

// AnalysisEntryBuilder builds test analysis entries with sensible defaults.
type AnalysisEntryBuilder struct {
	entry model.AnalysisEntry
}

// NewAnalysisEntry creates a builder with default values.
func NewAnalysisEntry() *AnalysisEntryBuilder {
	return &AnalysisEntryBuilder{
		entry: model.AnalysisEntry{
			ID:          uuid.New().String(),
			Timestamp:   time.Date(2026, 1, 15, 8, 30, 0, 0, time.UTC),
			Stocks:      []string{"AAPL", "MSFT"},
			Summary:     "Portfolio stable",
			KeyInsights: []string{"AAPL earnings beat expectations"},
		},
	}
}

// WithSummary sets the summary.
func (b *AnalysisEntryBuilder) WithSummary(summary string) *AnalysisEntryBuilder {
	b.entry.Summary = summary
	return b
}

// WithStocks sets the analyzed symbols.
func (b *AnalysisEntryBuilder) WithStocks(stocks ...string) *AnalysisEntryBuilder {
	b.entry.Stocks = stocks
	return b
}

// WithTimestamp sets the entry timestamp.
func (b *AnalysisEntryBuilder) WithTimestamp(ts time.Time) *AnalysisEntryBuilder {
	b.entry.Timestamp = ts
	return b
}

// Build returns the built entry.
func (b *AnalysisEntryBuilder) Build() model.AnalysisEntry {
	return b.entry
}
