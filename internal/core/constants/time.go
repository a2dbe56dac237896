package constants

import "time"

const (
	// Visible working day
	DefaultStartHour = 7
	DefaultEndHour   = 19

	// Day view (vertical)
	HourHeightPx = 80.0
	MinLengthPx  = 24.0
	ColumnGapPx  = 4.0

	// Dispatch board (horizontal)
	SlotMinutes = 30
	SlotWidthPx = 80.0
	HourWidthPx = SlotWidthPx * 60 / SlotMinutes
	RowHeightPx = 72.0

	// Week and two-week views
	WeekHourHeightPx = 60.0

	// Month grid
	MonthGridDays    = 35
	MonthCellJobs    = 3
	DaysPerWeek      = 7
	DaysPerFortnight = 14

	// Live indicator refresh
	NowIndicatorInterval = time.Minute

	// Dispatch board auto-scroll lead
	ScrollLeadPx = 200.0
)
