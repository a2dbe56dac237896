package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/config"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/cluster"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/constants"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/geometry"
	sched "github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/layout"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/model"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/nowline"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/data/ics"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/presentation/formatter"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/util"
)

// ViewDispatch is the horizontal staff-row rendering of a single day.
const ViewDispatch = "dispatch"

// BuildOptions selects what a report shows.
type BuildOptions struct {
	// View is day, dispatch, week, 2week or month.
	View string
	Date time.Time
	Now  time.Time

	StaffIDs []string
	Query    string

	// Staff is the roster in row order. Staff IDs found only on jobs are
	// appended in sorted order.
	Staff    []model.Staff
	Settings *config.Config
}

// Build expands recurring jobs over the visible range, applies the filters
// and lays the result out for the selected view.
func Build(jobs []model.Job, opts BuildOptions) (*formatter.Report, error) {
	settings := config.DefaultConfig()
	if opts.Settings != nil {
		normalized := *opts.Settings
		normalized.Normalize()
		settings = &normalized
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	loc, err := settings.Location()
	if err != nil {
		return nil, err
	}

	dispatch := opts.View == ViewDispatch
	mode, err := sched.ParseViewMode(opts.View)
	if err != nil {
		return nil, err
	}

	date := sched.StartOfDay(opts.Date.In(loc))
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.In(loc)

	days := sched.DayColumns(mode, date)
	rangeStart, rangeEnd := date, date.AddDate(0, 0, 1)
	if len(days) > 0 {
		rangeStart, rangeEnd = days[0], days[len(days)-1].AddDate(0, 0, 1)
	}

	expanded, err := ics.Expand(jobs, ics.ExpandConfig{RangeStart: rangeStart, RangeEnd: rangeEnd})
	if err != nil {
		return nil, fmt.Errorf("expand recurring jobs: %w", err)
	}

	filter := sched.Filter{
		StaffIDs: staffSet(opts.StaffIDs),
		Query:    opts.Query,
		Range:    model.Window{Start: rangeStart, End: rangeEnd},
	}
	visibleJobs := cluster.Sort(filter.Apply(expanded))
	roster := filter.VisibleStaff(Roster(opts.Staff, visibleJobs))

	report := &formatter.Report{
		View:         string(mode),
		Date:         date,
		RangeLabel:   sched.RangeLabel(mode, date),
		Generated:    now,
		Staff:        roster,
		Jobs:         visibleJobs,
		StatusCounts: sched.StatusCounts(visibleJobs),
	}
	if dispatch {
		report.View = ViewDispatch
	}

	var result sched.Result
	switch mode {
	case sched.ViewMonth:
		report.Days = days
		valid, invalid := sched.Validate(visibleJobs)
		report.Month = sched.MonthGrid(valid, date, now, constants.MonthCellJobs)
		result.Invalid = invalid
	case sched.ViewWeek, sched.ViewFortnight:
		window := settings.Window(days[0])
		report.Days = days
		report.Window = window
		report.Orientation = model.Vertical
		report.ScalePerHour = settings.WeekHourHeightPx
		report.TotalLength = window.Duration().Hours() * settings.WeekHourHeightPx
		result = sched.WeekView(visibleJobs, days, settings.StartHour, settings.EndHour,
			settings.WeekHourHeightPx, settings.GapPx)
	default:
		window := settings.Window(date)
		scale := settings.HourHeightPx
		if dispatch {
			scale = settings.HourWidthPx()
		}
		axis := geometry.NewAxis(window, scale, settings.MinLengthPx)

		report.Window = window
		report.ScalePerHour = scale
		report.TotalLength = axis.TotalLength()

		if dispatch {
			report.Orientation = model.Horizontal
			report.RowHeight = settings.RowHeightPx
			result = sched.DispatchView(visibleJobs, sched.StaffIDs(roster), axis, settings.GapPx)
		} else {
			report.Orientation = model.Vertical
			result = sched.DayView(visibleJobs, axis, settings.GapPx)
		}

		position := nowline.New(axis, nowline.ClockFunc(func() time.Time { return now })).Compute()
		report.NowVisible = position.Visible
		report.NowOffset = position.Offset
		if position.Visible && dispatch {
			report.Scroll = sched.ScrollTarget(position.Offset, constants.ScrollLeadPx)
		}
	}

	index := formatter.JobIndex(visibleJobs)
	for _, rect := range result.Rects {
		job := index[rect.EventID]
		report.Rows = append(report.Rows, formatter.Row{
			Job:       job,
			Rect:      rect,
			StaffName: formatter.StaffName(roster, job.StaffID),
		})
	}
	for _, inv := range result.Invalid {
		util.LogWarnf("Skipping job %s: %v", inv.EventID, inv.Err)
		report.Invalid = append(report.Invalid, formatter.InvalidRow{ID: inv.EventID, Reason: inv.Err.Error()})
	}

	return report, nil
}

// Roster returns staff in order followed by any staff IDs that appear only
// on jobs, sorted, named after their ID.
func Roster(staff []model.Staff, jobs []model.Job) []model.Staff {
	out := make([]model.Staff, 0, len(staff))
	known := make(map[string]bool, len(staff))
	for _, s := range staff {
		out = append(out, s)
		known[s.ID] = true
	}

	var extra []string
	for _, job := range jobs {
		if job.StaffID == "" || known[job.StaffID] {
			continue
		}
		known[job.StaffID] = true
		extra = append(extra, job.StaffID)
	}
	sort.Strings(extra)
	for _, id := range extra {
		out = append(out, model.Staff{ID: id, Name: id})
	}
	return out
}

func staffSet(ids []string) map[string]bool {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
