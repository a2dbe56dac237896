package interaction

import (
	"sort"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/model"
)

// SortField represents the order of dispatch board rows
type SortField int

const (
	SortByRoster SortField = iota
	SortByName
	SortByJobs
)

var sortLabels = map[SortField]string{
	SortByRoster: "roster",
	SortByName:   "name",
	SortByJobs:   "jobs",
}

func (f SortField) String() string {
	if label, ok := sortLabels[f]; ok {
		return label
	}
	return "roster"
}

// Next cycles roster → name → jobs → roster.
func (f SortField) Next() SortField {
	return (f + 1) % SortField(len(sortLabels))
}

// StaffSorter orders the staff rows of the board
type StaffSorter struct {
	field SortField
}

// NewStaffSorter creates a new staff sorter
func NewStaffSorter(field SortField) *StaffSorter {
	return &StaffSorter{field: field}
}

// Sort returns a sorted copy of staff. Roster order is kept as is; the job
// count order puts the busiest member first.
func (s *StaffSorter) Sort(staff []model.Staff, jobs []model.Job) []model.Staff {
	out := make([]model.Staff, len(staff))
	copy(out, staff)

	switch s.field {
	case SortByName:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Name < out[j].Name
		})
	case SortByJobs:
		counts := make(map[string]int, len(staff))
		for _, job := range jobs {
			counts[job.StaffID]++
		}
		sort.SliceStable(out, func(i, j int) bool {
			return counts[out[i].ID] > counts[out[j].ID]
		})
	}
	return out
}
