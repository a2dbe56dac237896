package layout

import (
	"testing"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/model"
	"github.com/stretchr/testify/assert"
)

func filterFixture() []model.Job {
	return []model.Job{
		{ID: "j1", StaffID: "s1", Title: "Regular Clean – Mrs. Patterson", Location: "14 Riverside Rd, NR1",
			Start: at(8, 30), End: at(10, 0), Status: model.StatusCompleted},
		{ID: "j2", StaffID: "s2", Title: "Deep Clean – Blyth & Sons Ltd", Location: "Unit 4, Wherry Rd, NR1",
			Start: at(13, 30), End: at(15, 30), Status: model.StatusUpcoming},
		{ID: "j3", StaffID: "s3", Title: "Window Clean – Norwich Cathedral", Location: "The Close, NR1 4DH",
			Start: at(10, 0).AddDate(0, 0, 1), End: at(12, 30).AddDate(0, 0, 1), Status: model.StatusInProgress},
	}
}

func jobIDs(jobs []model.Job) []string {
	out := make([]string, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.ID)
	}
	return out
}

func TestFilterApply(t *testing.T) {
	jobs := filterFixture()

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"no_filter", Filter{}, []string{"j1", "j2", "j3"}},
		{"staff", Filter{StaffIDs: map[string]bool{"s2": true, "s3": true}}, []string{"j2", "j3"}},
		{"query_title", Filter{Query: "deep"}, []string{"j2"}},
		{"query_location", Filter{Query: "WHERRY"}, []string{"j2"}},
		{"query_blank", Filter{Query: "   "}, []string{"j1", "j2", "j3"}},
		{"day", Filter{Day: at(0, 0)}, []string{"j1", "j2"}},
		{"range", Filter{Range: model.Window{Start: at(9, 0), End: at(14, 0)}}, []string{"j1", "j2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, jobIDs(tt.filter.Apply(jobs)))
		})
	}
}

func TestFilterRangeKeepsBrokenJobs(t *testing.T) {
	jobs := []model.Job{
		{ID: "typo", StaffID: "s1", Start: at(9, 0), End: at(9, 0).AddDate(0, 0, -1)},
		{ID: "zero", StaffID: "s1", Start: at(12, 0), End: at(12, 0)},
		{ID: "elsewhere", StaffID: "s1", Start: at(9, 0).AddDate(0, 0, 2), End: at(8, 0)},
	}
	filter := Filter{Range: model.Window{Start: at(0, 0), End: at(0, 0).AddDate(0, 0, 1)}}

	assert.Equal(t, []string{"typo", "zero"}, jobIDs(filter.Apply(jobs)))
}

func TestVisibleStaff(t *testing.T) {
	staff := []model.Staff{{ID: "s1"}, {ID: "s2"}, {ID: "s3"}}

	assert.Len(t, Filter{}.VisibleStaff(staff), 3)

	visible := Filter{StaffIDs: map[string]bool{"s3": true, "s1": true}}.VisibleStaff(staff)
	assert.Equal(t, []string{"s1", "s3"}, StaffIDs(visible))
}

func TestStatusCounts(t *testing.T) {
	counts := StatusCounts(filterFixture())
	assert.Equal(t, 1, counts[model.StatusCompleted])
	assert.Equal(t, 1, counts[model.StatusUpcoming])
	assert.Equal(t, 1, counts[model.StatusInProgress])
	assert.Equal(t, 0, counts[model.StatusCancelled])
}

func TestJobsPerStaff(t *testing.T) {
	counts := JobsPerStaff(filterFixture())
	assert.Equal(t, map[string]int{"s1": 1, "s2": 1, "s3": 1}, counts)
}

func TestScrollTarget(t *testing.T) {
	assert.InDelta(t, 0.0, ScrollTarget(120, 200), 1e-9)
	assert.InDelta(t, 300.0, ScrollTarget(500, 200), 1e-9)
}
