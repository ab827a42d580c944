package validation

import (
	"fmt"
	"regexp"
	"strings"

	"stock-briefing/internal/apperrors"
)

// symbolPattern accepts common ticker forms: letters and digits with optional
// dot or hyphen separators (BRK.B, RDS-A), up to 10 characters.
var symbolPattern = regexp.MustCompile(`^[A-Z0-9]{1,10}([.-][A-Z0-9]{1,4})?$`)

// NormalizeSymbol trims whitespace and uppercases a raw ticker symbol.
func NormalizeSymbol(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// ValidateSymbol checks that a normalized symbol is a plausible ticker.
func ValidateSymbol(symbol string) error {
	if symbol == "" {
		return apperrors.ErrEmptySymbol
	}
	if !symbolPattern.MatchString(symbol) {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidSymbol, symbol)
	}
	return nil
}
