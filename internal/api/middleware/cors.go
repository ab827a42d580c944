package middleware

import (
	"github.com/go-chi/cors"
)

// NewCORS creates the CORS middleware for the briefing API. The frontend is a
// browser app on another origin; X-API-Key is allowed so the platform key can
// be submitted from the settings page.
func NewCORS(allowedOrigins []string) *cors.Cors {
	return cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			"Content-Type",
			"Authorization",
			"X-API-Key",
		},
		ExposedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
