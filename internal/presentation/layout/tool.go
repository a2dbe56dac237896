package layout

import (
	"time"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/model"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/util"
)

func statusIcon(status string) string {
	switch status {
	case model.StatusCompleted:
		return "✓"
	case model.StatusInProgress:
		return "▶"
	case model.StatusUpcoming:
		return "◷"
	case model.StatusCancelled:
		return "✗"
	default:
		return "?"
	}
}

func formatClock(t time.Time, timeFormat string) string {
	if timeFormat == "12h" {
		return t.Format("3:04 PM")
	}
	return util.FormatClock(t)
}

func viewTitle(view string) string {
	switch view {
	case "dispatch":
		return "Dispatch"
	case "day":
		return "Day"
	case "week":
		return "Week"
	case "2week":
		return "Fortnight"
	case "month":
		return "Month"
	default:
		return view
	}
}

func pixelsToDuration(px, scalePerHour float64) time.Duration {
	if scalePerHour <= 0 {
		return 0
	}
	return time.Duration(px / scalePerHour * float64(time.Hour))
}
