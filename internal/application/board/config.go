package board

import (
	"fmt"
	"runtime"
	"time"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/config"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/report"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/util"
)

// Views the board can open with
var boardViews = map[string]bool{
	report.ViewDispatch: true,
	"day":               true,
	"week":              true,
	"2week":             true,
	"month":             true,
}

// BoardConfig contains configuration for the board command
type BoardConfig struct {
	// Job source; Demo uses the built-in fixtures
	JobsDir string
	Demo    bool

	// Opening view and filters
	View     string
	Date     time.Time
	StaffIDs []string
	Query    string

	// Display settings
	TimeFormat string
	Width      int
	Height     int

	// Debounce coalesces bursts of file events into one reload
	Debounce time.Duration

	Concurrency int
	Settings    *config.Config
}

// Validate fills defaults and rejects unknown views
func (c *BoardConfig) Validate() error {
	if c.Settings == nil {
		c.Settings = config.DefaultConfig()
	}
	if err := c.Settings.Validate(); err != nil {
		return err
	}
	if c.JobsDir == "" {
		c.JobsDir = c.Settings.JobsDir
	}
	if c.JobsDir == "" {
		c.Demo = true
	}
	if c.View == "" {
		c.View = report.ViewDispatch
	}
	if !boardViews[c.View] {
		return fmt.Errorf("invalid view '%s': must be one of dispatch, day, week, 2week, month", c.View)
	}
	if c.Date.IsZero() {
		c.Date = util.GetTimeProvider().Today()
	}
	if c.TimeFormat == "" {
		c.TimeFormat = "24h"
	}
	if c.Debounce <= 0 {
		c.Debounce = 250 * time.Millisecond
	}
	if c.Concurrency <= 0 {
		c.Concurrency = runtime.NumCPU()
	}
	return nil
}
