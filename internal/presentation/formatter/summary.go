package formatter

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/model"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/util"
)

// SummaryFormatter prints totals for the jobs in a report.
type SummaryFormatter struct {
	w io.Writer
}

func NewSummaryFormatter(w io.Writer) *SummaryFormatter {
	return &SummaryFormatter{w: w}
}

// StaffSummary aggregates the jobs of one staff member.
type StaffSummary struct {
	StaffID  string
	Name     string
	Jobs     int
	Booked   time.Duration
	MaxLanes int
}

// Summarize groups report jobs per staff member. Cancelled jobs count as
// jobs but not as booked time. Staff in the roster without jobs are listed
// with zero totals; the result keeps roster order, then unknown IDs sorted.
func Summarize(report *Report) []StaffSummary {
	index := make(map[string]*StaffSummary)
	var order []string

	add := func(id, name string) *StaffSummary {
		if s, ok := index[id]; ok {
			return s
		}
		s := &StaffSummary{StaffID: id, Name: name}
		index[id] = s
		order = append(order, id)
		return s
	}

	for _, s := range report.Staff {
		add(s.ID, StaffName(report.Staff, s.ID))
	}

	var extra []string
	for _, job := range report.Jobs {
		if _, ok := index[job.StaffID]; !ok {
			extra = append(extra, job.StaffID)
			add(job.StaffID, job.StaffID)
		}
		s := index[job.StaffID]
		s.Jobs++
		if job.Status != model.StatusCancelled {
			s.Booked += job.Duration()
		}
	}
	for _, row := range report.Rows {
		if s, ok := index[row.Job.StaffID]; ok && row.Rect.TotalColumns > s.MaxLanes {
			s.MaxLanes = row.Rect.TotalColumns
		}
	}

	// Roster entries first, then staff IDs only seen on jobs.
	rosterLen := len(order) - len(extra)
	sort.Strings(order[rosterLen:])

	out := make([]StaffSummary, len(order))
	for i, id := range order {
		out[i] = *index[id]
	}
	return out
}

func (f *SummaryFormatter) Format(report *Report) error {
	line := strings.Repeat("=", 60)

	fmt.Fprintln(f.w, line)
	fmt.Fprintln(f.w, "Schedule Summary Report")
	fmt.Fprintln(f.w, line)
	fmt.Fprintln(f.w)
	fmt.Fprintf(f.w, "Range: %s\n", report.RangeLabel)
	fmt.Fprintln(f.w)

	if len(report.Jobs) == 0 {
		fmt.Fprintln(f.w, "No jobs to summarize")
		fmt.Fprintln(f.w)
		fmt.Fprintln(f.w, line)
		return nil
	}

	var booked time.Duration
	for _, job := range report.Jobs {
		if job.Status != model.StatusCancelled {
			booked += job.Duration()
		}
	}

	fmt.Fprintln(f.w, "Status Breakdown:")
	for _, status := range model.Statuses {
		fmt.Fprintf(f.w, "  %-12s %d\n", model.StatusLabel(status)+":", report.StatusCounts[status])
	}
	fmt.Fprintf(f.w, "  %-12s %d\n", "Total:", len(report.Jobs))
	fmt.Fprintf(f.w, "  %-12s %s\n", "Booked:", util.FormatDuration(booked))
	fmt.Fprintln(f.w)

	fmt.Fprintln(f.w, "Staff:")
	fmt.Fprintln(f.w, strings.Repeat("-", 60))
	for _, s := range Summarize(report) {
		fmt.Fprintf(f.w, "\n%s:\n", s.Name)
		fmt.Fprintf(f.w, "  Jobs:      %d\n", s.Jobs)
		fmt.Fprintf(f.w, "  Booked:    %s\n", util.FormatDuration(s.Booked))
		if s.MaxLanes > 1 {
			fmt.Fprintf(f.w, "  Overlaps:  up to %d at once\n", s.MaxLanes)
		}
	}

	if len(report.Invalid) > 0 {
		fmt.Fprintln(f.w)
		fmt.Fprintf(f.w, "Skipped %d job(s):\n", len(report.Invalid))
		for _, inv := range report.Invalid {
			fmt.Fprintf(f.w, "  %s: %s\n", inv.ID, inv.Reason)
		}
	}

	fmt.Fprintln(f.w)
	fmt.Fprintln(f.w, line)
	return nil
}
