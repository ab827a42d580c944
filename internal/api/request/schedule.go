package request

import (
	"fmt"
	"strconv"
)

// Bounds for the upcoming-run projection count.
const (
	DefaultRunCount = 5
	MaxRunCount     = 20
)

// ParseRunCount extracts and validates the count query parameter for the
// upcoming-runs endpoint. An empty parameter yields DefaultRunCount.
func ParseRunCount(raw string) (int, error) {
	if raw == "" {
		return DefaultRunCount, nil
	}

	count, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("count must be a number: %q", raw)
	}
	if count < 1 || count > MaxRunCount {
		return 0, fmt.Errorf("count must be between 1 and %d", MaxRunCount)
	}

	return count, nil
}
