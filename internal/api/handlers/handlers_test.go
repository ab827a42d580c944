package handlers_test

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"stock-briefing/internal/api/handlers"
	custommiddleware "stock-briefing/internal/api/middleware"
	"stock-briefing/internal/repository"
	"stock-briefing/internal/service"
	"stock-briefing/internal/testutil"
)

// testEnv bundles a routed handler stack with its backing mocks so tests can
// stage remote responses and drive requests end to end.
type testEnv struct {
	router    *chi.Mux
	db        *sql.DB
	briefing  *service.BriefingService
	scheduler *testutil.MockSchedulerClient
	agent     *testutil.MockAgentClient
}

// setupEnv wires the handlers the way the production router does, against an
// in-memory store and mock remote clients.
func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testutil.SetupTestDB(t)
	briefingService, schedulerClient, agentClient := testutil.NewTestBriefingService(t, db)
	credentialService := service.NewCredentialService(
		repository.NewCredentialRepository(db, testutil.TestFernetKey),
	)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		stateHandler := handlers.NewStateHandler(briefingService)
		r.Get("/state", stateHandler.State)

		r.Route("/portfolio", func(r chi.Router) {
			portfolioHandler := handlers.NewPortfolioHandler(briefingService)
			r.Get("/", portfolioHandler.Portfolio)
			r.Post("/stocks", portfolioHandler.AddStock)
			r.Route("/stocks/{symbol}", func(r chi.Router) {
				r.Use(custommiddleware.ValidateSymbolMiddleware)
				r.Delete("/", portfolioHandler.RemoveStock)
			})
			r.Put("/email", portfolioHandler.SaveEmail)
		})

		r.Route("/analysis", func(r chi.Router) {
			analysisHandler := handlers.NewAnalysisHandler(briefingService)
			r.Post("/run", analysisHandler.Run)
			r.Get("/history", analysisHandler.History)
		})

		r.Route("/schedule", func(r chi.Router) {
			scheduleHandler := handlers.NewScheduleHandler(briefingService)
			r.Get("/", scheduleHandler.Schedule)
			r.Post("/toggle", scheduleHandler.Toggle)
			r.Post("/trigger", scheduleHandler.Trigger)
			r.Get("/logs", scheduleHandler.Logs)
			r.Get("/upcoming", scheduleHandler.Upcoming)
		})

		r.Route("/settings", func(r chi.Router) {
			settingsHandler := handlers.NewSettingsHandler(credentialService)
			r.Put("/service-key", settingsHandler.PutServiceKey)
		})
	})

	return &testEnv{
		router:    r,
		db:        db,
		briefing:  briefingService,
		scheduler: schedulerClient,
		agent:     agentClient,
	}
}

// do executes a request against the test router and returns the recorder.
func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// decode unmarshals a JSON response body into target.
func decode(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), target); err != nil {
		t.Fatalf("Failed to decode response %q: %v", rec.Body.String(), err)
	}
}
