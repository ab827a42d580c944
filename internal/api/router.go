package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"stock-briefing/internal/api/handlers"
	custommiddleware "stock-briefing/internal/api/middleware"
	"stock-briefing/internal/config"
	"stock-briefing/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(systemService *service.SystemService, briefingService *service.BriefingService, credentialService *service.CredentialService, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

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

	return r
}
