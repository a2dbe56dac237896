package layout

import (
	"fmt"
	"strings"
	"time"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/cluster"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/constants"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/geometry"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/model"
)

// ViewMode is the calendar range shown on the schedule page.
type ViewMode string

const (
	ViewDay       ViewMode = "day"
	ViewWeek      ViewMode = "week"
	ViewFortnight ViewMode = "2week"
	ViewMonth     ViewMode = "month"
)

// ParseViewMode accepts the view names used on the command line.
func ParseViewMode(s string) (ViewMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "day", "dispatch":
		return ViewDay, nil
	case "week":
		return ViewWeek, nil
	case "2week", "2weeks", "fortnight":
		return ViewFortnight, nil
	case "month":
		return ViewMonth, nil
	}
	return "", fmt.Errorf("invalid view '%s': must be one of day, week, 2week, month", s)
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns the Monday on or before d.
func StartOfWeek(d time.Time) time.Time {
	day := StartOfDay(d)
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// SameDay reports whether a and b fall on the same calendar day in a's location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DayColumns returns the days shown by a multi-day view: 7 or 14 days from
// the selected week's Monday, or a 35 day grid starting on the Monday on or
// before the first of the month. The day view has no columns.
func DayColumns(mode ViewMode, selected time.Time) []time.Time {
	var start time.Time
	var count int

	switch mode {
	case ViewWeek:
		start, count = StartOfWeek(selected), constants.DaysPerWeek
	case ViewFortnight:
		start, count = StartOfWeek(selected), constants.DaysPerFortnight
	case ViewMonth:
		first := time.Date(selected.Year(), selected.Month(), 1, 0, 0, 0, 0, selected.Location())
		start, count = StartOfWeek(first), constants.MonthGridDays
	default:
		return nil
	}

	days := make([]time.Time, count)
	for i := range days {
		days[i] = start.AddDate(0, 0, i)
	}
	return days
}

// Step is the number of days the previous/next buttons move in each mode.
func Step(mode ViewMode) int {
	switch mode {
	case ViewWeek:
		return 7
	case ViewFortnight:
		return 14
	case ViewMonth:
		return 30
	default:
		return 1
	}
}

// Navigate moves selected by dir steps (-1 or 1) of the given mode.
func Navigate(mode ViewMode, selected time.Time, dir int) time.Time {
	return selected.AddDate(0, 0, dir*Step(mode))
}

// RangeLabel formats the date bar title for the view.
func RangeLabel(mode ViewMode, selected time.Time) string {
	switch mode {
	case ViewMonth:
		return selected.Format("January 2006")
	case ViewWeek, ViewFortnight:
		days := DayColumns(mode, selected)
		first, last := days[0], days[len(days)-1]
		return first.Format("2 Jan") + " – " + last.Format("2 Jan 2006")
	default:
		return selected.Format("Monday 2 January 2006")
	}
}

// WeekView lays out each day column as an independent day view. Jobs are
// assigned to the column of their start day; Rect.Day is the column index.
func WeekView(jobs []model.Job, days []time.Time, startHour, endHour int, scalePerHour, gap float64) Result {
	var result Result
	byDay := make([][]model.Job, len(days))

	valid, invalid := partition(jobs)
	result.Invalid = invalid

	for _, job := range valid {
		for i, day := range days {
			if SameDay(day, job.Start) {
				byDay[i] = append(byDay[i], job)
				break
			}
		}
	}

	for i, day := range days {
		if len(byDay[i]) == 0 {
			continue
		}
		axis := geometry.NewAxis(model.DayWindow(day, startHour, endHour), scalePerHour, constants.MinLengthPx)
		rects := projectGroup(byDay[i], axis, gap, model.Vertical)
		for k := range rects {
			rects[k].Day = i
		}
		result.Rects = append(result.Rects, rects...)
	}

	sortRects(result.Rects)
	return result
}

// MonthCell is one day of the month grid.
type MonthCell struct {
	Date     time.Time
	InMonth  bool
	Today    bool
	Weekend  bool
	JobIDs   []string
	Overflow int
}

// MonthGrid fills the 35 day grid around selected. Each cell lists up to
// perCell jobs starting that day, in start order, and counts the rest.
func MonthGrid(jobs []model.Job, selected, now time.Time, perCell int) []MonthCell {
	days := DayColumns(ViewMonth, selected)
	sorted := cluster.Sort(jobs)

	cells := make([]MonthCell, len(days))
	for i, day := range days {
		wd := day.Weekday()
		cell := MonthCell{
			Date:    day,
			InMonth: day.Month() == selected.Month(),
			Today:   SameDay(day, now),
			Weekend: wd == time.Saturday || wd == time.Sunday,
		}
		for _, job := range sorted {
			if !SameDay(day, job.Start) {
				continue
			}
			if len(cell.JobIDs) < perCell {
				cell.JobIDs = append(cell.JobIDs, job.ID)
			} else {
				cell.Overflow++
			}
		}
		cells[i] = cell
	}
	return cells
}
