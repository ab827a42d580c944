package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"stock-briefing/internal/service"
)

// PortfolioHandler handles watch-list and delivery email HTTP requests
type PortfolioHandler struct {
	briefingService *service.BriefingService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(briefingService *service.BriefingService) *PortfolioHandler {
	return &PortfolioHandler{
		briefingService: briefingService,
	}
}

// PortfolioResponse represents the portfolio get response
type PortfolioResponse struct {
	Stocks []string `json:"stocks"`
	Email  string   `json:"email"`
}

// AddStockRequest represents the add-stock request body
type AddStockRequest struct {
	Symbol string `json:"symbol"`
}

// SaveEmailRequest represents the save-email request body
type SaveEmailRequest struct {
	Email string `json:"email"`
}

// Portfolio handles GET /api/portfolio
func (h *PortfolioHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	portfolio := h.briefingService.Portfolio()

	respondJSON(w, http.StatusOK, PortfolioResponse{
		Stocks: portfolio.Stocks,
		Email:  portfolio.Email,
	})
}

// AddStock handles POST /api/portfolio/stocks.
// Empty, malformed, or duplicate symbols are silently ignored; the response
// always carries the resulting watch-list.
func (h *PortfolioHandler) AddStock(w http.ResponseWriter, r *http.Request) {
	var req AddStockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error":  "invalid request body",
			"detail": err.Error(),
		})
		return
	}

	portfolio, err := h.briefingService.AddStock(req.Symbol)
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, map[string]string{
			"error":  "failed to save watch-list",
			"detail": err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, PortfolioResponse{
		Stocks: portfolio.Stocks,
		Email:  portfolio.Email,
	})
}

// RemoveStock handles DELETE /api/portfolio/stocks/{symbol}.
// Removing an absent symbol is a no-op, not an error.
func (h *PortfolioHandler) RemoveStock(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	portfolio, err := h.briefingService.RemoveStock(symbol)
	if err != nil {
		respondJSON(w, http.StatusInternalServerError, map[string]string{
			"error":  "failed to save watch-list",
			"detail": err.Error(),
		})
		return
	}

	respondJSON(w, http.StatusOK, PortfolioResponse{
		Stocks: portfolio.Stocks,
		Email:  portfolio.Email,
	})
}

// SaveEmail handles PUT /api/portfolio/email.
// The address is stored verbatim; no format validation is applied.
func (h *PortfolioHandler) SaveEmail(w http.ResponseWriter, r *http.Request) {
	var req SaveEmailRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{
			"error":  "invalid request body",
			"detail": err.Error(),
		})
		return
	}

	if err := h.briefingService.SaveEmail(req.Email); err != nil {
		respondJSON(w, http.StatusInternalServerError, map[string]string{
			"error":  "failed to save email",
			"detail": err.Error(),
		})
		return
	}

	notice, _ := h.briefingService.Status()
	respondJSON(w, http.StatusOK, map[string]string{
		"message": notice,
	})
}
