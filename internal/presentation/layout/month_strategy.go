package layout

import (
	"fmt"
	"io"
	"strings"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/constants"
	sched "github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/layout"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/model"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/presentation/formatter"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/util"
)

const minCellWidth = 6

var weekdayNames = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// MonthStrategy draws the five week grid with a few job types per day.
type MonthStrategy struct {
	BaseStrategy
}

func (s *MonthStrategy) GetName() string {
	return "Month"
}

func (s *MonthStrategy) Render(w io.Writer, report *formatter.Report, param Param) {
	sizer := s.GetSizer(param)
	width := sizer.Width
	cellWidth := max((sizer.ContentWidth()-(constants.DaysPerWeek-1))/constants.DaysPerWeek, minCellWidth)

	s.TopBorder(w, width)
	s.Header(w, report, param, viewTitle(report.View), width)
	s.Separator(w, width)

	names := make([]string, len(weekdayNames))
	for i, name := range weekdayNames {
		names[i] = util.FormatDataTitle(util.PadRight(name, cellWidth))
	}
	s.BoxLine(w, strings.Join(names, "│"), width)

	index := formatter.JobIndex(report.Jobs)
	for start := 0; start < len(report.Month); start += constants.DaysPerWeek {
		end := min(start+constants.DaysPerWeek, len(report.Month))
		week := report.Month[start:end]
		s.BoxLine(w, weekRule(len(week), cellWidth), width)
		for _, line := range monthWeek(week, index, cellWidth) {
			s.BoxLine(w, line, width)
		}
	}

	s.Separator(w, width)
	s.StatusLine(w, report, width)
	s.BottomBorder(w, width)
}

func weekRule(days, cellWidth int) string {
	parts := make([]string, days)
	for i := range parts {
		parts[i] = strings.Repeat("─", cellWidth)
	}
	return strings.Join(parts, "┼")
}

// monthWeek renders a week of cells as lines: the day numbers, one line per
// listed job and a "+N more" line when any day overflows.
func monthWeek(week []sched.MonthCell, index map[string]model.Job, cellWidth int) []string {
	jobLines, overflow := 0, false
	for _, cell := range week {
		jobLines = max(jobLines, len(cell.JobIDs))
		overflow = overflow || cell.Overflow > 0
	}

	lines := make([]string, 0, jobLines+2)
	lines = append(lines, joinCells(week, func(cell sched.MonthCell) string {
		text := util.PadRight(fmt.Sprintf("%d", cell.Date.Day()), cellWidth)
		switch {
		case cell.Today:
			return util.Colorize(util.ColorBold+util.ColorReverse, text)
		case !cell.InMonth:
			return util.Colorize(util.ColorDim, text)
		case cell.Weekend:
			return util.Colorize(util.ColorGray, text)
		}
		return text
	}))

	for k := 0; k < jobLines; k++ {
		lines = append(lines, joinCells(week, func(cell sched.MonthCell) string {
			if k >= len(cell.JobIDs) {
				return strings.Repeat(" ", cellWidth)
			}
			job := index[cell.JobIDs[k]]
			return util.Colorize(util.StatusColor(job.Status), util.PadRight(job.JobType(), cellWidth))
		}))
	}

	if overflow {
		lines = append(lines, joinCells(week, func(cell sched.MonthCell) string {
			if cell.Overflow == 0 {
				return strings.Repeat(" ", cellWidth)
			}
			return util.Colorize(util.ColorDim, util.PadRight(fmt.Sprintf("+%d more", cell.Overflow), cellWidth))
		}))
	}
	return lines
}

func joinCells(week []sched.MonthCell, render func(sched.MonthCell) string) string {
	parts := make([]string, len(week))
	for i, cell := range week {
		parts[i] = render(cell)
	}
	return strings.Join(parts, "│")
}
