package layout

import (
	"fmt"
	"io"
	"time"

	sched "github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/layout"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/presentation/formatter"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/util"
)

const (
	agendaFixedWidth = 44
	minTitleWidth    = 10
)

// AgendaStrategy lists each day of the range with its jobs in start order.
// Jobs sharing time show their lane.
type AgendaStrategy struct {
	BaseStrategy
}

func (s *AgendaStrategy) GetName() string {
	return "Agenda"
}

func (s *AgendaStrategy) Render(w io.Writer, report *formatter.Report, param Param) {
	sizer := s.GetSizer(param)
	width := sizer.Width
	titleWidth := max(sizer.ContentWidth()-agendaFixedWidth, minTitleWidth)

	s.TopBorder(w, width)
	s.Header(w, report, param, viewTitle(report.View), width)
	s.Separator(w, width)

	days := report.Days
	if len(days) == 0 {
		days = []time.Time{report.Date}
	}
	byDay := make(map[int][]formatter.Row)
	for _, row := range report.Rows {
		byDay[row.Rect.Day] = append(byDay[row.Rect.Day], row)
	}

	for i, day := range days {
		heading := day.Format("Monday 2 January")
		if sched.SameDay(day, report.Generated) {
			heading = "● " + heading
		}
		s.BoxLine(w, util.FormatDataTitle(heading), width)

		rows := byDay[i]
		if len(rows) == 0 {
			s.BoxLine(w, "  "+util.Colorize(util.ColorDim, "No jobs"), width)
			continue
		}
		for _, row := range rows {
			s.BoxLine(w, agendaLine(row, titleWidth), width)
		}
	}

	s.Separator(w, width)
	s.StatusLine(w, report, width)
	s.BottomBorder(w, width)
}

func agendaLine(row formatter.Row, titleWidth int) string {
	lane := ""
	if row.Rect.TotalColumns > 1 {
		lane = row.Lane()
	}
	color := util.StatusColor(row.Job.Status)
	return fmt.Sprintf("  %s  %s %s  %s  %s",
		util.FormatTimeRange(row.Job.Start, row.Job.End),
		util.Colorize(color, statusIcon(row.Job.Status)),
		util.Colorize(color, util.PadRight(row.Job.Title, titleWidth)),
		util.PadRight(row.StaffName, staffLabelWidth),
		lane)
}
