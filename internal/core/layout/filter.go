package layout

import (
	"strings"
	"time"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/model"
)

// Filter narrows the jobs shown on the schedule.
type Filter struct {
	// StaffIDs selects staff members; empty means everyone.
	StaffIDs map[string]bool
	// Query matches title or location, case-insensitive.
	Query string
	// Day keeps only jobs starting on that day when non-zero.
	Day time.Time
	// Range keeps only jobs intersecting the window when non-zero. Jobs that
	// do not end after they start are kept when they start inside it, so the
	// layout can report them.
	Range model.Window
}

// Apply returns the jobs matching every set criterion, in input order.
func (f Filter) Apply(jobs []model.Job) []model.Job {
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]model.Job, 0, len(jobs))
	for _, job := range jobs {
		if len(f.StaffIDs) > 0 && !f.StaffIDs[job.StaffID] {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(job.Title), query) &&
			!strings.Contains(strings.ToLower(job.Location), query) {
			continue
		}
		if !f.Day.IsZero() && !SameDay(f.Day, job.Start) {
			continue
		}
		if !f.Range.Start.IsZero() && !f.inRange(job) {
			continue
		}
		out = append(out, job)
	}
	return out
}

func (f Filter) inRange(job model.Job) bool {
	if !job.End.After(job.Start) {
		return !job.Start.Before(f.Range.Start) && job.Start.Before(f.Range.End)
	}
	return f.Range.Intersects(job)
}

// VisibleStaff returns the staff rows selected by the filter, keeping roster order.
func (f Filter) VisibleStaff(staff []model.Staff) []model.Staff {
	if len(f.StaffIDs) == 0 {
		return staff
	}
	out := make([]model.Staff, 0, len(f.StaffIDs))
	for _, s := range staff {
		if f.StaffIDs[s.ID] {
			out = append(out, s)
		}
	}
	return out
}

// StaffIDs lists the IDs of the given staff in order.
func StaffIDs(staff []model.Staff) []string {
	ids := make([]string, len(staff))
	for i, s := range staff {
		ids[i] = s.ID
	}
	return ids
}

// StatusCounts tallies jobs per status.
func StatusCounts(jobs []model.Job) map[string]int {
	counts := map[string]int{
		model.StatusCompleted:  0,
		model.StatusInProgress: 0,
		model.StatusUpcoming:   0,
		model.StatusCancelled:  0,
	}
	for _, job := range jobs {
		counts[job.Status]++
	}
	return counts
}

// JobsPerStaff counts jobs per staff ID.
func JobsPerStaff(jobs []model.Job) map[string]int {
	counts := make(map[string]int)
	for _, job := range jobs {
		counts[job.StaffID]++
	}
	return counts
}

// ScrollTarget returns the dispatch board scroll offset that brings now into
// view with lead pixels of context before it, never negative.
func ScrollTarget(positionOfNow, lead float64) float64 {
	if target := positionOfNow - lead; target > 0 {
		return target
	}
	return 0
}
