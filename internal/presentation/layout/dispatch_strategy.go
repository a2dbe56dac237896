package layout

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/presentation/formatter"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/util"
)

const (
	staffLabelWidth = 18
	minCellsPerHour = 4
	minTimeline     = 12
)

// DispatchStrategy draws one row per staff member with the day running left
// to right. Overlapping jobs split a row into lanes.
type DispatchStrategy struct {
	BaseStrategy
}

func (s *DispatchStrategy) GetName() string {
	return "Dispatch Board"
}

func (s *DispatchStrategy) Render(w io.Writer, report *formatter.Report, param Param) {
	sizer := s.GetSizer(param)
	width := sizer.Width

	cells := sizer.ContentWidth() - staffLabelWidth - 1
	if cells < minTimeline {
		cells = minTimeline
	}
	view := newViewport(report, cells)
	nowCell := -1
	if report.NowVisible {
		nowCell = view.cell(report.NowOffset)
	}

	s.TopBorder(w, width)
	s.Header(w, report, param, viewTitle(report.View), width)
	s.Separator(w, width)
	s.BoxLine(w, strings.Repeat(" ", staffLabelWidth)+"│"+view.ruler(report), width)
	s.Separator(w, width)

	if len(report.Staff) == 0 {
		s.BoxLine(w, util.Colorize(util.ColorDim, "No staff to show"), width)
	}
	byRow := rowsByStaff(report.Rows)
	for i, member := range report.Staff {
		rows := byRow[i]
		lanes := 1
		for _, row := range rows {
			if row.Rect.TotalColumns > lanes {
				lanes = row.Rect.TotalColumns
			}
		}

		for lane := 0; lane < lanes; lane++ {
			label := strings.Repeat(" ", staffLabelWidth)
			if lane == 0 {
				label = util.Colorize(util.StaffColor(member.Color), util.PadRight(member.Name, staffLabelWidth))
			}
			s.BoxLine(w, label+"│"+view.lane(laneRows(rows, lane), nowCell), width)
		}
	}

	s.Separator(w, width)
	s.StatusLine(w, report, width)
	if !view.full() {
		s.BoxLine(w, util.Colorize(util.ColorDim, "◀ "+view.rangeLabel(report)+" ▶"), width)
	}
	s.BottomBorder(w, width)
}

func rowsByStaff(rows []formatter.Row) map[int][]formatter.Row {
	out := make(map[int][]formatter.Row)
	for _, row := range rows {
		out[row.Rect.Row] = append(out[row.Rect.Row], row)
	}
	return out
}

func laneRows(rows []formatter.Row, lane int) []formatter.Row {
	var out []formatter.Row
	for _, row := range rows {
		if row.Rect.Column == lane {
			out = append(out, row)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rect.Offset < out[j].Rect.Offset
	})
	return out
}

// viewport maps axis pixels onto terminal cells. When the whole day does
// not fit at minCellsPerHour it shows a slice starting at the report's
// scroll position.
type viewport struct {
	start float64
	span  float64
	total float64
	cells int
}

func newViewport(report *formatter.Report, cells int) viewport {
	v := viewport{span: report.TotalLength, total: report.TotalLength, cells: cells}
	if report.ScalePerHour <= 0 || report.TotalLength <= 0 {
		v.span, v.total = 1, 1
		return v
	}

	hours := report.TotalLength / report.ScalePerHour
	if float64(cells) >= hours*minCellsPerHour {
		return v
	}
	v.span = float64(cells) / minCellsPerHour * report.ScalePerHour
	v.start = math.Max(0, math.Min(report.Scroll, report.TotalLength-v.span))
	return v
}

func (v viewport) full() bool {
	return v.start == 0 && v.span >= v.total
}

func (v viewport) cell(px float64) int {
	return int(math.Floor((px - v.start) / v.span * float64(v.cells)))
}

func (v viewport) cellEnd(px float64) int {
	return int(math.Ceil((px - v.start) / v.span * float64(v.cells)))
}

// lane draws jobs as reversed status-coloured blocks labelled with the job
// type. Gaps show the now marker when it falls in them.
func (v viewport) lane(rows []formatter.Row, nowCell int) string {
	var b strings.Builder
	cursor := 0
	for _, row := range rows {
		from := max(v.cell(row.Rect.Offset), cursor, 0)
		to := min(v.cellEnd(row.Rect.Offset+row.Rect.Length), v.cells)
		if from >= v.cells || to <= 0 {
			continue
		}
		if to <= from {
			to = from + 1
		}
		v.gap(&b, cursor, from, nowCell)

		text := util.PadRight(row.Job.JobType(), to-from)
		b.WriteString(util.Colorize(util.StatusColor(row.Job.Status)+util.ColorReverse, text))
		cursor = to
	}
	v.gap(&b, cursor, v.cells, nowCell)
	return b.String()
}

func (v viewport) gap(b *strings.Builder, from, to, nowCell int) {
	if from >= to {
		return
	}
	if nowCell < from || nowCell >= to {
		b.WriteString(strings.Repeat(" ", to-from))
		return
	}
	b.WriteString(strings.Repeat(" ", nowCell-from))
	b.WriteString(util.Colorize(util.ColorRed, "│"))
	b.WriteString(strings.Repeat(" ", to-nowCell-1))
}

// ruler labels each visible hour with its two digit number.
func (v viewport) ruler(report *formatter.Report) string {
	line := []rune(strings.Repeat(" ", v.cells))
	if report.ScalePerHour <= 0 {
		return string(line)
	}

	startHour := report.Window.Start.Hour()
	hours := int(math.Round(report.TotalLength / report.ScalePerHour))
	next := 0
	for i := 0; i <= hours; i++ {
		c := v.cell(float64(i) * report.ScalePerHour)
		if c < next || c+2 > v.cells {
			continue
		}
		copy(line[c:], []rune(fmt.Sprintf("%02d", (startHour+i)%24)))
		next = c + 3
	}
	return string(line)
}

func (v viewport) rangeLabel(report *formatter.Report) string {
	from := report.Window.Start.Add(pixelsToDuration(v.start, report.ScalePerHour))
	to := report.Window.Start.Add(pixelsToDuration(v.start+v.span, report.ScalePerHour))
	return util.FormatTimeRange(from, to)
}
