// Package layout turns jobs into render rectangles for the day view and the
// dispatch board.
package layout

import (
	"errors"
	"fmt"
	"sort"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/cluster"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/columns"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/geometry"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/model"
)

var (
	// ErrUnknownResource marks a dispatch job whose staff member has no row.
	ErrUnknownResource = errors.New("job staff member has no row on the board")
	// ErrDuplicateID marks a job whose ID was already taken by an earlier job.
	ErrDuplicateID = errors.New("duplicate job id")
)

// Mode selects the presentation a layout is computed for.
type Mode int

const (
	// ModeDay lays jobs along a vertical axis and resolves overlaps across
	// every visible job at once.
	ModeDay Mode = iota
	// ModeDispatch lays jobs along a horizontal axis, one row per staff
	// member, resolving overlaps inside each row only.
	ModeDispatch
)

func (m Mode) String() string {
	switch m {
	case ModeDay:
		return "day"
	case ModeDispatch:
		return "dispatch"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Options configures a layout pass.
type Options struct {
	Mode Mode
	Axis geometry.Axis

	// Rows fixes the dispatch row order by staff ID. When empty the rows
	// are the distinct staff IDs of the jobs in sorted order.
	Rows []string

	// Gap is the pixel spacing between side-by-side jobs.
	Gap float64
}

// Result is the output of one layout pass.
type Result struct {
	Rects   []model.Rect
	Invalid []model.InvalidEvent
	Rows    []string
}

// ByID indexes the rectangles by event ID.
func (r Result) ByID() map[string]model.Rect {
	out := make(map[string]model.Rect, len(r.Rects))
	for _, rect := range r.Rects {
		out[rect.EventID] = rect
	}
	return out
}

// Project runs clustering, column assignment and geometry for the given mode.
// Jobs failing validation are reported in Result.Invalid and never reach
// the geometry functions. The input slice is not modified.
func Project(jobs []model.Job, opts Options) Result {
	valid, invalid := partition(jobs)
	result := Result{Invalid: invalid}

	switch opts.Mode {
	case ModeDispatch:
		rows := opts.Rows
		if len(rows) == 0 {
			rows = deriveRows(valid)
		}
		result.Rows = rows

		rowIndex := make(map[string]int, len(rows))
		for i, id := range rows {
			rowIndex[id] = i
		}

		var placed []model.Job
		for _, job := range valid {
			if _, ok := rowIndex[job.StaffID]; !ok {
				result.Invalid = append(result.Invalid, model.InvalidEvent{
					EventID: job.ID,
					Err:     fmt.Errorf("%w: %s", ErrUnknownResource, job.StaffID),
				})
				continue
			}
			placed = append(placed, job)
		}

		groups := cluster.GroupByResource(placed)
		for _, staffID := range rows {
			rects := projectGroup(groups[staffID], opts.Axis, opts.Gap, model.Horizontal)
			for i := range rects {
				rects[i].Row = rowIndex[staffID]
			}
			result.Rects = append(result.Rects, rects...)
		}
	default:
		result.Rects = projectGroup(valid, opts.Axis, opts.Gap, model.Vertical)
	}

	sortRects(result.Rects)
	return result
}

// DayView lays out jobs for a single day column.
func DayView(jobs []model.Job, axis geometry.Axis, gap float64) Result {
	return Project(jobs, Options{Mode: ModeDay, Axis: axis, Gap: gap})
}

// DispatchView lays out jobs as staff rows on a horizontal time axis.
func DispatchView(jobs []model.Job, rows []string, axis geometry.Axis, gap float64) Result {
	return Project(jobs, Options{Mode: ModeDispatch, Axis: axis, Rows: rows, Gap: gap})
}

func projectGroup(jobs []model.Job, axis geometry.Axis, gap float64, orientation model.Orientation) []model.Rect {
	var rects []model.Rect
	for _, c := range cluster.Build(jobs) {
		assignment := columns.Assign(c)
		width := 1 / float64(assignment.TotalColumns)

		for i, job := range assignment.Jobs {
			col := assignment.Columns[i]
			rect := model.Rect{
				EventID:      job.ID,
				ResourceID:   job.StaffID,
				Offset:       axis.PositionOf(job.Start),
				Length:       axis.LengthOf(job.Start, job.End),
				Column:       col,
				TotalColumns: assignment.TotalColumns,
				Left:         float64(col) * width,
				Width:        width,
				WidthInset:   gap,
				Orientation:  orientation,
			}
			if col > 0 {
				rect.LeftInset = gap / 2
			}
			rects = append(rects, rect)
		}
	}
	return rects
}

// Validate returns the jobs a layout pass would place, in input order, and
// the failures it would report.
func Validate(jobs []model.Job) ([]model.Job, []model.InvalidEvent) {
	return partition(jobs)
}

// partition splits jobs into valid ones and failures. The first valid job
// with an ID keeps it; later ones are reported as duplicates.
func partition(jobs []model.Job) ([]model.Job, []model.InvalidEvent) {
	valid := make([]model.Job, 0, len(jobs))
	seen := make(map[string]bool, len(jobs))
	var invalid []model.InvalidEvent
	for _, job := range jobs {
		if err := model.ValidateJob(job); err != nil {
			invalid = append(invalid, model.InvalidEvent{EventID: job.ID, Err: err})
			continue
		}
		if seen[job.ID] {
			invalid = append(invalid, model.InvalidEvent{
				EventID: job.ID,
				Err:     fmt.Errorf("%w: %s", ErrDuplicateID, job.ID),
			})
			continue
		}
		seen[job.ID] = true
		valid = append(valid, job)
	}
	return valid, invalid
}

func deriveRows(jobs []model.Job) []string {
	seen := make(map[string]bool)
	var rows []string
	for _, job := range jobs {
		if !seen[job.StaffID] {
			seen[job.StaffID] = true
			rows = append(rows, job.StaffID)
		}
	}
	sort.Strings(rows)
	return rows
}

func sortRects(rects []model.Rect) {
	sort.SliceStable(rects, func(i, j int) bool {
		a, b := rects[i], rects[j]
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		if a.Day != b.Day {
			return a.Day < b.Day
		}
		if a.Offset != b.Offset {
			return a.Offset < b.Offset
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		return a.EventID < b.EventID
	})
}
