package model

import "time"

// Portfolio represents the user's curated watch-list and delivery settings.
// Stocks is an ordered set of uppercase ticker symbols with insertion order
// preserved for display. An empty Email means delivery is not configured.
type Portfolio struct {
	Stocks []string `json:"stocks"`
	Email  string   `json:"email"`
}

// Contains reports whether the watch-list already holds the given symbol.
// Symbols are stored case-normalized, so the comparison is exact.
func (p Portfolio) Contains(symbol string) bool {
	for _, s := range p.Stocks {
		if s == symbol {
			return true
		}
	}
	return false
}

// AnalysisEntry represents one completed analysis run.
// Entries are immutable once created and are only ever prepended to history.
type AnalysisEntry struct {
	ID          string    `json:"id"`
	Timestamp   time.Time `json:"timestamp"`
	Stocks      []string  `json:"stocks"`
	Summary     string    `json:"summary"`
	KeyInsights []string  `json:"key_insights"`
}
