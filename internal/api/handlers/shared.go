package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"stock-briefing/internal/apperrors"
)

// respondJSON sends a JSON response with the given status code
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("Failed to encode JSON: %v", err)
		}
	}
}

// respondServiceError maps orchestrator errors onto HTTP status codes:
// local precondition violations become 400, in-flight duplicates 409,
// and everything else is treated as a remote boundary failure (502).
func respondServiceError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway

	switch {
	case errors.Is(err, apperrors.ErrEmptyPortfolio),
		errors.Is(err, apperrors.ErrEmailNotSet),
		errors.Is(err, apperrors.ErrScheduleNotLoaded),
		errors.Is(err, apperrors.ErrInvalidCronExpression):
		status = http.StatusBadRequest
	case errors.Is(err, apperrors.ErrOperationInFlight):
		status = http.StatusConflict
	}

	respondJSON(w, status, map[string]string{
		"error": err.Error(),
	})
}
