package board

import (
	"fmt"
	"sync"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/config"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/model"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/nowline"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/presentation/formatter"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/presentation/interaction"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/report"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/util"
)

// RefreshController reloads jobs and lays out frames for the board
type RefreshController struct {
	source   JobSource
	settings *config.Config
	query    string
	clock    nowline.Clock

	refreshMutex sync.Mutex // Prevent concurrent reloads
}

// NewRefreshController creates a new RefreshController instance
func NewRefreshController(source JobSource, settings *config.Config, query string, clock nowline.Clock) *RefreshController {
	return &RefreshController{
		source:   source,
		settings: settings,
		query:    query,
		clock:    clock,
	}
}

// Reload rescans the job source and returns the jobs with a summary line
func (rc *RefreshController) Reload() ([]model.Job, string, error) {
	rc.refreshMutex.Lock()
	defer rc.refreshMutex.Unlock()

	stats, err := rc.source.Reload()
	if err != nil {
		return nil, "", err
	}
	return rc.source.Jobs(), loadMessage(stats), nil
}

// Reset drops cached jobs and parses every file again
func (rc *RefreshController) Reset() ([]model.Job, string, error) {
	rc.refreshMutex.Lock()
	defer rc.refreshMutex.Unlock()

	stats, err := rc.source.Reset()
	if err != nil {
		return nil, "", err
	}
	return rc.source.Jobs(), loadMessage(stats), nil
}

// Roster orders the staff rows the way the state asks for. Staff IDs that
// only appear on jobs are included.
func (rc *RefreshController) Roster(jobs []model.Job, state interaction.InteractionState) []model.Staff {
	roster := report.Roster(rc.source.Staff(), jobs)
	return interaction.NewStaffSorter(state.Sort).Sort(roster, jobs)
}

// BuildFrame lays out jobs for the state's view, date and staff selection
func (rc *RefreshController) BuildFrame(jobs []model.Job, state interaction.InteractionState) (*formatter.Report, error) {
	roster := rc.Roster(jobs, state)
	rep, err := report.Build(jobs, report.BuildOptions{
		View:     state.View,
		Date:     state.Date,
		Now:      rc.clock.Now(),
		StaffIDs: state.SelectedIDs(roster),
		Query:    rc.query,
		Staff:    roster,
		Settings: rc.settings,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build %s frame: %w", state.View, err)
	}
	return rep, nil
}

func loadMessage(stats *report.LoadStats) string {
	if stats.Total() == 0 {
		return "Jobs reloaded"
	}
	msg := fmt.Sprintf("Loaded %d files (%d parsed, %d cached)", stats.Total(), stats.Parsed(), stats.Hits())
	if n := stats.Failures(); n > 0 {
		msg += fmt.Sprintf(", %d failed", n)
		for _, failed := range stats.Failed() {
			util.LogWarnf("Job file %s: %v", failed.Path, failed.Err)
		}
	}
	return msg
}
