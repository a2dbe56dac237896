package board

import (
	"fmt"
	"sync"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/model"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/data/demo"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/report"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/util"
)

// DataLoader keeps the board's jobs loaded from the jobs directory, or the
// demo fixtures when there is none
type DataLoader struct {
	config *BoardConfig
	loader *report.Loader

	mu   sync.RWMutex
	jobs []model.Job
}

// NewDataLoader creates a new DataLoader instance
func NewDataLoader(config *BoardConfig) (*DataLoader, error) {
	dl := &DataLoader{config: config}
	if config.Demo {
		return dl, nil
	}

	loc, err := config.Settings.Location()
	if err != nil {
		return nil, err
	}
	dl.loader = report.NewLoader(config.JobsDir, config.Concurrency, loc)
	return dl, nil
}

// Demo reports whether the loader serves the demo fixtures
func (dl *DataLoader) Demo() bool {
	return dl.loader == nil
}

// Dir is the watched jobs directory, empty in demo mode
func (dl *DataLoader) Dir() string {
	if dl.loader == nil {
		return ""
	}
	return dl.loader.Dir()
}

// Matches reports whether a changed path is a job file
func (dl *DataLoader) Matches(path string) bool {
	return dl.loader != nil && dl.loader.Matches(path)
}

func (dl *DataLoader) Reload() (*report.LoadStats, error) {
	if dl.loader == nil {
		return dl.loadDemo(), nil
	}
	stats, err := dl.loader.Refresh()
	if err != nil {
		return nil, fmt.Errorf("failed to reload %s: %w", dl.loader.Dir(), err)
	}
	dl.setJobs(dl.loader.Jobs())
	return stats, nil
}

func (dl *DataLoader) Reset() (*report.LoadStats, error) {
	if dl.loader == nil {
		return dl.loadDemo(), nil
	}
	stats, err := dl.loader.Reset()
	if err != nil {
		return nil, fmt.Errorf("failed to reset %s: %w", dl.loader.Dir(), err)
	}
	dl.setJobs(dl.loader.Jobs())
	return stats, nil
}

func (dl *DataLoader) loadDemo() *report.LoadStats {
	util.LogInfo("Using demo jobs")
	dl.setJobs(demo.Jobs(dl.config.Date))
	return report.NewLoadStats()
}

func (dl *DataLoader) setJobs(jobs []model.Job) {
	dl.mu.Lock()
	defer dl.mu.Unlock()
	dl.jobs = jobs
}

func (dl *DataLoader) Jobs() []model.Job {
	dl.mu.RLock()
	defer dl.mu.RUnlock()

	jobs := make([]model.Job, len(dl.jobs))
	copy(jobs, dl.jobs)
	return jobs
}

// Staff returns the configured roster, or the demo roster in demo mode
// when none is configured
func (dl *DataLoader) Staff() []model.Staff {
	if len(dl.config.Settings.Staff) == 0 && dl.Demo() {
		return demo.Staff()
	}
	return dl.config.Settings.Staff
}
