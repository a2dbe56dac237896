package formatter

import (
	"fmt"
	"time"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/layout"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/model"
)

// Report is a laid out schedule ready for rendering.
type Report struct {
	View       string
	Date       time.Time
	RangeLabel string
	Generated  time.Time

	// Window is the visible time range of a single-day axis. Multi-day
	// views use Days with the same hours on every column.
	Window model.Window
	Days   []time.Time

	Orientation  model.Orientation
	ScalePerHour float64
	TotalLength  float64
	RowHeight    float64

	Staff []model.Staff
	Jobs  []model.Job
	Rows  []Row
	Month []layout.MonthCell

	Invalid      []InvalidRow
	StatusCounts map[string]int

	NowVisible bool
	NowOffset  float64

	// Scroll is the dispatch board position that brings now into view.
	Scroll float64
}

// Row is one placed job.
type Row struct {
	Job       model.Job
	Rect      model.Rect
	StaffName string
}

// Lane renders the column position as "2/3".
func (r Row) Lane() string {
	return fmt.Sprintf("%d/%d", r.Rect.Column+1, r.Rect.TotalColumns)
}

// InvalidRow is a job left out of the layout.
type InvalidRow struct {
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// Formatter renders a report.
type Formatter interface {
	Format(report *Report) error
}

// StaffName looks up a staff member's display name, falling back to the ID.
func StaffName(staff []model.Staff, id string) string {
	for _, s := range staff {
		if s.ID == id {
			if s.Name != "" {
				return s.Name
			}
			break
		}
	}
	return id
}

// JobIndex maps job IDs to jobs. The first job with an ID wins, matching
// the job the layout keeps.
func JobIndex(jobs []model.Job) map[string]model.Job {
	index := make(map[string]model.Job, len(jobs))
	for _, j := range jobs {
		if _, ok := index[j.ID]; !ok {
			index[j.ID] = j
		}
	}
	return index
}
