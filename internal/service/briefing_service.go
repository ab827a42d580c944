package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"stock-briefing/internal/agent"
	"stock-briefing/internal/apperrors"
	"stock-briefing/internal/model"
	"stock-briefing/internal/repository"
	"stock-briefing/internal/validation"
)

// Store is the persistence boundary for user preferences. Values are plain
// strings with whole-value overwrite semantics; callers own serialization.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
}

// SchedulerAPI is the boundary to the remote scheduling service.
type SchedulerAPI interface {
	GetSchedule(scheduleID string) (model.Schedule, error)
	PauseSchedule(scheduleID string) error
	ResumeSchedule(scheduleID string) error
	TriggerNow(scheduleID string) error
	GetLogs(scheduleID string, limit int) ([]model.ExecutionLog, error)
}

// AgentAPI is the boundary to the remote analysis agent.
type AgentAPI interface {
	CallAgent(message, agentID string) (agent.Result, error)
}

// Action names for the per-action in-flight guards.
const (
	actionAnalysis        = "analysis"
	actionToggle          = "toggle"
	actionTrigger         = "trigger"
	actionRefreshSchedule = "refresh_schedule"
	actionRefreshLogs     = "refresh_logs"
)

// Notices surfaced after successful operations.
const (
	noticeEmailSaved       = "Email settings saved successfully"
	noticeAnalysisComplete = "Analysis completed and email sent successfully"
	noticeTriggered        = "Manual analysis triggered - check email shortly"
)

// BriefingService is the orchestration core. It owns the in-memory UI state
// (watch-list, history, schedule view, execution logs, status message), calls
// the scheduler and agent boundaries, and persists portfolio, email, and
// history through the Store after every mutation.
//
// All state mutations are serialized under one mutex. Remote calls run outside
// the lock; each action has an in-flight guard, and a second concurrent
// invocation of the same action is dropped with ErrOperationInFlight so stale
// completions can never overwrite fresher ones.
type BriefingService struct {
	store     Store
	scheduler SchedulerAPI
	agent     AgentAPI

	scheduleID string
	agentID    string
	logLimit   int

	// logRefreshDelay is the wait before the follow-up log refresh after a
	// manual trigger, giving the backend time to record the execution.
	logRefreshDelay time.Duration

	mu        sync.Mutex
	portfolio model.Portfolio
	history   []model.AnalysisEntry
	schedule  *model.Schedule
	logs      []model.ExecutionLog
	notice    string
	lastError string
	inFlight  map[string]bool
}

// NewBriefingService creates a new BriefingService bound to one schedule job
// and one analysis agent.
func NewBriefingService(store Store, schedulerClient SchedulerAPI, agentClient AgentAPI, scheduleID, agentID string, logLimit int) *BriefingService {
	if logLimit <= 0 {
		logLimit = 10
	}
	return &BriefingService{
		store:           store,
		scheduler:       schedulerClient,
		agent:           agentClient,
		scheduleID:      scheduleID,
		agentID:         agentID,
		logLimit:        logLimit,
		logRefreshDelay: 2 * time.Second,
		portfolio:       model.Portfolio{Stocks: []string{}},
		history:         []model.AnalysisEntry{},
		logs:            []model.ExecutionLog{},
		inFlight:        map[string]bool{},
	}
}

// SetLogRefreshDelay overrides the wait before the post-trigger log refresh.
func (s *BriefingService) SetLogRefreshDelay(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logRefreshDelay = d
}

// Load restores portfolio, email, and history from the Store. Absent keys and
// malformed stored values fall back to empty defaults; Load never fails on
// store content, only on store access errors.
func (s *BriefingService) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if raw, err := s.store.Get(repository.KeyPortfolioStocks); err == nil {
		var stocks []string
		if jsonErr := json.Unmarshal([]byte(raw), &stocks); jsonErr == nil {
			s.portfolio.Stocks = stocks
		} else {
			log.Printf("ignoring malformed stored watch-list: %v", jsonErr)
		}
	} else if !errors.Is(err, apperrors.ErrPreferenceNotFound) {
		return err
	}

	if email, err := s.store.Get(repository.KeyPortfolioEmail); err == nil {
		s.portfolio.Email = email
	} else if !errors.Is(err, apperrors.ErrPreferenceNotFound) {
		return err
	}

	if raw, err := s.store.Get(repository.KeyAnalysisHistory); err == nil {
		var history []model.AnalysisEntry
		if jsonErr := json.Unmarshal([]byte(raw), &history); jsonErr == nil {
			s.history = history
		} else {
			log.Printf("ignoring malformed stored history: %v", jsonErr)
		}
	} else if !errors.Is(err, apperrors.ErrPreferenceNotFound) {
		return err
	}

	return nil
}

// AddStock adds a symbol to the watch-list. Input is trimmed and uppercased;
// empty, malformed, or already-present symbols are silently ignored.
func (s *BriefingService) AddStock(raw string) (model.Portfolio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	symbol := validation.NormalizeSymbol(raw)
	if validation.ValidateSymbol(symbol) != nil || s.portfolio.Contains(symbol) {
		return s.portfolioCopyLocked(), nil
	}

	s.portfolio.Stocks = append(s.portfolio.Stocks, symbol)
	if err := s.persistStocksLocked(); err != nil {
		s.setErrorLocked(err)
		return s.portfolioCopyLocked(), err
	}

	s.clearErrorLocked()
	return s.portfolioCopyLocked(), nil
}

// RemoveStock removes a symbol from the watch-list. Removing an absent symbol
// is a no-op, not an error.
func (s *BriefingService) RemoveStock(raw string) (model.Portfolio, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	symbol := validation.NormalizeSymbol(raw)
	kept := make([]string, 0, len(s.portfolio.Stocks))
	for _, existing := range s.portfolio.Stocks {
		if existing != symbol {
			kept = append(kept, existing)
		}
	}
	s.portfolio.Stocks = kept

	if err := s.persistStocksLocked(); err != nil {
		s.setErrorLocked(err)
		return s.portfolioCopyLocked(), err
	}

	s.clearErrorLocked()
	return s.portfolioCopyLocked(), nil
}

// SaveEmail stores the delivery address verbatim and persists it.
// No format validation is applied; an empty address means "unset".
func (s *BriefingService) SaveEmail(email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.portfolio.Email = email
	if err := s.store.Set(repository.KeyPortfolioEmail, email); err != nil {
		s.setErrorLocked(err)
		return err
	}

	s.setNoticeLocked(noticeEmailSaved)
	return nil
}

// Portfolio returns a copy of the current watch-list and email.
func (s *BriefingService) Portfolio() model.Portfolio {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.portfolioCopyLocked()
}

// History returns a copy of the analysis history, newest first.
func (s *BriefingService) History() []model.AnalysisEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.historyCopyLocked()
}

// RunAnalysisNow invokes the analysis agent with the current watch-list and
// delivery email. It requires both to be set; a violated precondition fails
// before any remote call. On success exactly one new entry is prepended to
// history and persisted; on failure history is left untouched.
func (s *BriefingService) RunAnalysisNow() (model.AnalysisEntry, error) {
	s.mu.Lock()
	if s.inFlight[actionAnalysis] {
		s.mu.Unlock()
		return model.AnalysisEntry{}, apperrors.ErrOperationInFlight
	}
	if len(s.portfolio.Stocks) == 0 {
		s.setErrorLocked(apperrors.ErrEmptyPortfolio)
		s.mu.Unlock()
		return model.AnalysisEntry{}, apperrors.ErrEmptyPortfolio
	}
	if s.portfolio.Email == "" {
		s.setErrorLocked(apperrors.ErrEmailNotSet)
		s.mu.Unlock()
		return model.AnalysisEntry{}, apperrors.ErrEmailNotSet
	}

	stocks := append([]string{}, s.portfolio.Stocks...)
	email := s.portfolio.Email
	s.inFlight[actionAnalysis] = true
	s.mu.Unlock()

	message := fmt.Sprintf("Analyze portfolio: %s and send email to %s", strings.Join(stocks, ","), email)
	result, err := s.agent.CallAgent(message, s.agentID)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight[actionAnalysis] = false

	if err != nil {
		s.setErrorLocked(err)
		return model.AnalysisEntry{}, err
	}

	entry := model.AnalysisEntry{
		ID:          uuid.New().String(),
		Timestamp:   time.Now().UTC(),
		Stocks:      stocks,
		Summary:     result.Summary,
		KeyInsights: result.Insights,
	}

	s.history = append([]model.AnalysisEntry{entry}, s.history...)
	if err := s.persistHistoryLocked(); err != nil {
		s.setErrorLocked(err)
		return entry, err
	}

	s.setNoticeLocked(noticeAnalysisComplete)
	return entry, nil
}

// persistStocksLocked writes the watch-list slot. Caller must hold s.mu.
func (s *BriefingService) persistStocksLocked() error {
	data, err := json.Marshal(s.portfolio.Stocks)
	if err != nil {
		return fmt.Errorf("failed to serialize watch-list: %w", err)
	}
	return s.store.Set(repository.KeyPortfolioStocks, string(data))
}

// persistHistoryLocked writes the history slot. Caller must hold s.mu.
func (s *BriefingService) persistHistoryLocked() error {
	data, err := json.Marshal(s.history)
	if err != nil {
		return fmt.Errorf("failed to serialize history: %w", err)
	}
	return s.store.Set(repository.KeyAnalysisHistory, string(data))
}

func (s *BriefingService) portfolioCopyLocked() model.Portfolio {
	return model.Portfolio{
		Stocks: append([]string{}, s.portfolio.Stocks...),
		Email:  s.portfolio.Email,
	}
}

func (s *BriefingService) historyCopyLocked() []model.AnalysisEntry {
	return append([]model.AnalysisEntry{}, s.history...)
}
