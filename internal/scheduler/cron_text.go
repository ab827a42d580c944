package scheduler

import (
	"fmt"
	"strconv"
	"strings"
)

var weekdayNames = map[string]string{
	"0": "Sunday",
	"1": "Monday",
	"2": "Tuesday",
	"3": "Wednesday",
	"4": "Thursday",
	"5": "Friday",
	"6": "Saturday",
	"7": "Sunday",
}

// CronToHuman renders a cron expression as a human-readable description.
// Covers the fixed-time patterns the scheduling service actually produces
// (daily, weekdays, weekends, single weekday, monthly, every-N-minutes,
// hourly); anything else falls back to the raw expression.
func CronToHuman(expr string) string {
	fields := strings.Fields(expr)
	if len(fields) != 5 {
		return expr
	}

	minute, hour, dom, month, dow := fields[0], fields[1], fields[2], fields[3], fields[4]

	// Interval patterns don't have a fixed time of day.
	if n, ok := strings.CutPrefix(minute, "*/"); ok && hour == "*" && dom == "*" && month == "*" && dow == "*" {
		return fmt.Sprintf("Every %s minutes", n)
	}
	if minute == "0" && hour == "*" && dom == "*" && month == "*" && dow == "*" {
		return "Every hour"
	}

	clock, ok := formatClock(minute, hour)
	if !ok {
		return expr
	}

	switch {
	case dom == "*" && month == "*" && dow == "*":
		return fmt.Sprintf("Every day at %s", clock)
	case dom == "*" && month == "*" && dow == "1-5":
		return fmt.Sprintf("Weekdays at %s", clock)
	case dom == "*" && month == "*" && (dow == "0,6" || dow == "6,0"):
		return fmt.Sprintf("Weekends at %s", clock)
	case dom == "*" && month == "*":
		if name, found := weekdayNames[dow]; found {
			return fmt.Sprintf("Every %s at %s", name, clock)
		}
	case month == "*" && dow == "*":
		if day, err := strconv.Atoi(dom); err == nil {
			return fmt.Sprintf("Monthly on day %d at %s", day, clock)
		}
	}

	return expr
}

// formatClock renders literal minute and hour fields as a 12-hour clock time.
func formatClock(minuteField, hourField string) (string, bool) {
	minute, err := strconv.Atoi(minuteField)
	if err != nil || minute < 0 || minute > 59 {
		return "", false
	}
	hour, err := strconv.Atoi(hourField)
	if err != nil || hour < 0 || hour > 23 {
		return "", false
	}

	meridiem := "AM"
	display := hour
	switch {
	case hour == 0:
		display = 12
	case hour == 12:
		meridiem = "PM"
	case hour > 12:
		display = hour - 12
		meridiem = "PM"
	}

	return fmt.Sprintf("%d:%02d %s", display, minute, meridiem), true
}
