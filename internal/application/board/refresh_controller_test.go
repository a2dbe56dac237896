package board

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/model"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/data/demo"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/presentation/interaction"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/report"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/util"
)

// stubSource serves fixed jobs and counts reloads
type stubSource struct {
	jobs    []model.Job
	staff   []model.Staff
	stats   *report.LoadStats
	err     error
	reloads int
	resets  int
}

func (s *stubSource) Reload() (*report.LoadStats, error) {
	s.reloads++
	return s.stats, s.err
}

func (s *stubSource) Reset() (*report.LoadStats, error) {
	s.resets++
	return s.stats, s.err
}

func (s *stubSource) Jobs() []model.Job    { return s.jobs }
func (s *stubSource) Staff() []model.Staff { return s.staff }

func newDemoController(source *stubSource) *RefreshController {
	clock := util.NewFixedTimeProvider(at(10, 15), nil)
	return NewRefreshController(source, utcSettings(), "", clock)
}

func TestRefreshControllerReload(t *testing.T) {
	stats := report.NewLoadStats()
	stats.IncrementTotal()
	stats.IncrementTotal()
	stats.IncrementParsed()
	stats.IncrementHit()

	source := &stubSource{jobs: demo.Jobs(day), stats: stats}
	rc := newDemoController(source)

	jobs, msg, err := rc.Reload()
	require.NoError(t, err)
	assert.Len(t, jobs, 10)
	assert.Equal(t, "Loaded 2 files (1 parsed, 1 cached)", msg)
	assert.Equal(t, 1, source.reloads)

	_, _, err = rc.Reset()
	require.NoError(t, err)
	assert.Equal(t, 1, source.resets)

	source.err = errors.New("permission denied")
	_, _, err = rc.Reload()
	assert.EqualError(t, err, "permission denied")
}

func TestLoadMessage(t *testing.T) {
	assert.Equal(t, "Jobs reloaded", loadMessage(report.NewLoadStats()))

	stats := report.NewLoadStats()
	stats.IncrementTotal()
	stats.IncrementFailure("/jobs/broken.json", errors.New("unexpected end of JSON input"))
	assert.Equal(t, "Loaded 1 files (0 parsed, 0 cached), 1 failed", loadMessage(stats))
}

func TestRefreshControllerRoster(t *testing.T) {
	jobs := demo.Jobs(day)
	jobs = append(jobs, model.Job{ID: "extra", StaffID: "s9", Start: at(9, 0), End: at(10, 0)})
	rc := newDemoController(&stubSource{jobs: jobs, staff: demo.Staff()})

	ids := func(staff []model.Staff) []string {
		out := make([]string, len(staff))
		for i, s := range staff {
			out[i] = s.ID
		}
		return out
	}

	roster := rc.Roster(jobs, interaction.InteractionState{})
	assert.Equal(t, []string{"s1", "s2", "s3", "s4", "s5", "s9"}, ids(roster))

	roster = rc.Roster(jobs, interaction.InteractionState{Sort: interaction.SortByJobs})
	assert.Equal(t, "s4", ids(roster)[len(roster)-1])
}

func TestRefreshControllerBuildFrame(t *testing.T) {
	jobs := demo.Jobs(day)
	rc := newDemoController(&stubSource{jobs: jobs, staff: demo.Staff()})

	t.Run("dispatch", func(t *testing.T) {
		frame, err := rc.BuildFrame(jobs, interaction.InteractionState{View: report.ViewDispatch, Date: day})
		require.NoError(t, err)
		assert.Len(t, frame.Staff, 5)
		assert.Len(t, frame.Rows, 10)
		assert.True(t, frame.NowVisible)
		assert.Equal(t, 520.0, frame.NowOffset)
	})

	t.Run("selected staff", func(t *testing.T) {
		frame, err := rc.BuildFrame(jobs, interaction.InteractionState{
			View:     report.ViewDispatch,
			Date:     day,
			Selected: map[string]bool{"s2": true},
		})
		require.NoError(t, err)
		for _, row := range frame.Rows {
			assert.Equal(t, "s2", row.Job.StaffID)
		}
		assert.NotEmpty(t, frame.Rows)
	})

	t.Run("month", func(t *testing.T) {
		frame, err := rc.BuildFrame(jobs, interaction.InteractionState{View: "month", Date: day})
		require.NoError(t, err)
		assert.NotEmpty(t, frame.Month)
	})

	t.Run("unknown view", func(t *testing.T) {
		_, err := rc.BuildFrame(jobs, interaction.InteractionState{View: "year", Date: day})
		assert.Error(t, err)
	})
}
