package util

import (
	"fmt"
	"time"
)

// FormatDuration renders a job length as "1h 30m", "2h" or "45m".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60

	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

// FormatClock renders a time of day in 24 hour form, e.g. "08:30".
func FormatClock(t time.Time) string {
	return t.Format("15:04")
}

// FormatTimeRange renders "08:30 – 10:00".
func FormatTimeRange(start, end time.Time) string {
	return FormatClock(start) + " – " + FormatClock(end)
}

// FormatHourLabel renders an axis label for an hour, e.g. "07:00".
func FormatHourLabel(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}
