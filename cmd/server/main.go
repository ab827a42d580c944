package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stock-briefing/internal/agent"
	"stock-briefing/internal/api"
	"stock-briefing/internal/config"
	"stock-briefing/internal/database"
	"stock-briefing/internal/repository"
	"stock-briefing/internal/scheduler"
	"stock-briefing/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Create repositories and remote clients
	preferenceRepo := repository.NewPreferenceRepository(db)
	credentialRepo := repository.NewCredentialRepository(db, cfg.Security.FernetKey)
	schedulerClient := scheduler.NewClient(cfg.Scheduler.BaseURL)
	agentClient := agent.NewClient(cfg.Agent.BaseURL)

	// Create services
	systemService := service.NewSystemService(db)
	credentialService := service.NewCredentialService(credentialRepo, schedulerClient, agentClient)
	briefingService := service.NewBriefingService(
		preferenceRepo,
		schedulerClient,
		agentClient,
		cfg.Scheduler.ScheduleID,
		cfg.Agent.AgentID,
		cfg.Scheduler.LogLimit,
	)

	// Restore persisted preferences and stored platform credential
	if err := briefingService.Load(); err != nil {
		log.Fatalf("Failed to load persisted preferences: %v", err)
	}
	if err := credentialService.Apply(); err != nil {
		log.Printf("Could not apply stored service credential: %v", err)
	}

	// Warm the schedule and execution log views; the server still starts when
	// the scheduling service is unreachable.
	if err := briefingService.RefreshAll(); err != nil {
		log.Printf("Initial schedule refresh failed: %v", err)
	}

	// Create router
	router := api.NewRouter(systemService, briefingService, credentialService, cfg)

	// Create HTTP server. The write timeout must outlast the agent client's
	// timeout so a slow analysis run can still deliver its response.
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 150 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
