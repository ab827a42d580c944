// Package projection derives human-facing schedule metadata from a raw cron
// expression: an ordered sequence of upcoming run instants, evaluated with full
// cron field semantics in the schedule's timezone.
package projection

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"stock-briefing/internal/apperrors"
)

// DisplayFormat is the layout used to render projected run instants.
const DisplayFormat = "Mon, Jan 2, 3:04 PM MST"

// Validate checks that the expression splits into exactly five
// whitespace-separated fields (minute, hour, day-of-month, month, day-of-week).
func Validate(expr string) error {
	if len(strings.Fields(expr)) != 5 {
		return fmt.Errorf("%w: expected 5 fields, got %q", apperrors.ErrInvalidCronExpression, expr)
	}
	return nil
}

// NextRuns returns the next count run instants for the cron expression,
// starting from the current time. See NextRunsFrom.
func NextRuns(expr, timezone string, count int) ([]time.Time, error) {
	return NextRunsFrom(time.Now(), expr, timezone, count)
}

// NextRunsFrom returns the next count run instants strictly after now.
// All five cron fields are evaluated; day-of-month, month, and day-of-week
// constraints are honored, not just minute and hour. Instants are computed in
// the schedule's timezone; an unknown timezone falls back to UTC.
func NextRunsFrom(now time.Time, expr, timezone string, count int) ([]time.Time, error) {
	if err := Validate(expr); err != nil {
		return nil, err
	}

	schedule, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidCronExpression, err)
	}

	loc, err := time.LoadLocation(timezone)
	if err != nil {
		loc = time.UTC
	}

	runs := make([]time.Time, 0, count)
	next := now.In(loc)
	for i := 0; i < count; i++ {
		next = schedule.Next(next)
		if next.IsZero() {
			break
		}
		runs = append(runs, next)
	}

	return runs, nil
}

// FormatRuns renders run instants for display.
func FormatRuns(runs []time.Time) []string {
	formatted := make([]string, len(runs))
	for i, run := range runs {
		formatted[i] = run.Format(DisplayFormat)
	}
	return formatted
}
