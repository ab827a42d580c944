package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Scheduler SchedulerConfig
	Agent     AgentConfig
	Security  SecurityConfig
	CORS      CORSConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// SchedulerConfig binds this instance to one remote schedule job.
// ScheduleID is configuration, not data the core computes.
type SchedulerConfig struct {
	BaseURL    string
	ScheduleID string
	// LogLimit is the default number of execution log entries fetched per refresh.
	LogLimit int
}

// AgentConfig binds this instance to one remote analysis agent.
type AgentConfig struct {
	BaseURL string
	AgentID string
}

// SecurityConfig holds encryption settings for stored credentials
type SecurityConfig struct {
	FernetKey string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/stock_briefing.db"),
		},
		Scheduler: SchedulerConfig{
			BaseURL:    getEnv("SCHEDULER_BASE_URL", "http://localhost:8090"),
			ScheduleID: getEnv("SCHEDULE_ID", "698be3f5ebe6fd87d1dcc0f0"),
			LogLimit:   10,
		},
		Agent: AgentConfig{
			BaseURL: getEnv("AGENT_BASE_URL", "http://localhost:8091"),
			AgentID: getEnv("AGENT_ID", "698be3e9544d8929157d02a4"),
		},
		Security: SecurityConfig{
			FernetKey: getEnv("FERNET_KEY", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
