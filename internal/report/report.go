// Package report loads jobs, lays them out and writes a schedule report.
package report

import (
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/config"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/model"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/data/demo"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/presentation/formatter"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/util"
)

// Output formats
const (
	OutputTable   = "table"
	OutputJSON    = "json"
	OutputCSV     = "csv"
	OutputSVG     = "svg"
	OutputICS     = "ics"
	OutputSummary = "summary"
)

// OutputFormats lists the accepted --output values.
func OutputFormats() []string {
	return []string{OutputTable, OutputJSON, OutputCSV, OutputSVG, OutputICS, OutputSummary}
}

type Config struct {
	JobsDir      string
	Demo         bool
	OutputFormat string
	View         string
	Date         time.Time
	StaffIDs     []string
	Query        string
	Concurrency  int
	Settings     *config.Config
}

type Reporter struct {
	config *Config
	loader *Loader
	now    func() time.Time
}

func New(cfg *Config) (*Reporter, error) {
	if cfg.Settings == nil {
		cfg.Settings = config.DefaultConfig()
	}
	if err := cfg.Settings.Validate(); err != nil {
		return nil, err
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = runtime.NumCPU()
	}
	if cfg.Date.IsZero() {
		cfg.Date = util.GetTimeProvider().Today()
	}
	if _, err := NewFormatter(cfg.OutputFormat, io.Discard); err != nil {
		return nil, err
	}

	loc, err := cfg.Settings.Location()
	if err != nil {
		return nil, err
	}

	r := &Reporter{
		config: cfg,
		now:    util.GetTimeProvider().Now,
	}
	if !cfg.Demo {
		r.loader = NewLoader(cfg.JobsDir, cfg.Concurrency, loc)
	}
	return r, nil
}

// LoadJobs returns the demo fixtures or the jobs found under the jobs directory.
func (r *Reporter) LoadJobs() ([]model.Job, error) {
	if r.config.Demo {
		util.LogInfo("Using demo jobs")
		return demo.Jobs(r.config.Date), nil
	}

	start := time.Now()
	files, err := r.loader.Scan()
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", r.loader.Dir(), err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoJobFiles, r.loader.Dir())
	}
	util.LogInfof("Found %d job files", len(files))

	stats := r.loader.Load(files)
	if stats.Failures() == stats.Total() {
		return nil, fmt.Errorf("none of the %d job files could be parsed", stats.Total())
	}

	jobs := r.loader.Jobs()
	util.LogDebugf("Loaded %d jobs in %v", len(jobs), time.Since(start))
	return jobs, nil
}

// Staff returns the configured roster, or the demo roster in demo mode
// when none is configured.
func (r *Reporter) Staff() []model.Staff {
	if len(r.config.Settings.Staff) == 0 && r.config.Demo {
		return demo.Staff()
	}
	return r.config.Settings.Staff
}

// Build loads the jobs and lays them out without writing anything.
func (r *Reporter) Build() (*formatter.Report, error) {
	jobs, err := r.LoadJobs()
	if err != nil {
		return nil, err
	}

	return Build(jobs, BuildOptions{
		View:     r.config.View,
		Date:     r.config.Date,
		Now:      r.now(),
		StaffIDs: r.config.StaffIDs,
		Query:    r.config.Query,
		Staff:    r.Staff(),
		Settings: r.config.Settings,
	})
}

// Run builds the report and writes it to w in the configured format.
func (r *Reporter) Run(w io.Writer) error {
	start := time.Now()
	util.LogInfo("Building schedule report...")

	rep, err := r.Build()
	if err != nil {
		return err
	}

	f, err := NewFormatter(r.config.OutputFormat, w)
	if err != nil {
		return err
	}
	if err := f.Format(rep); err != nil {
		return fmt.Errorf("write %s report: %w", r.config.OutputFormat, err)
	}

	util.LogDebugf("Report %s (%d jobs, %d skipped) written in %v",
		rep.RangeLabel, len(rep.Jobs), len(rep.Invalid), time.Since(start))
	return nil
}

// NewFormatter returns the formatter for an output format name.
func NewFormatter(format string, w io.Writer) (formatter.Formatter, error) {
	switch strings.ToLower(format) {
	case "", OutputTable:
		return formatter.NewTableFormatter(w), nil
	case OutputJSON:
		return formatter.NewJSONFormatter(w), nil
	case OutputCSV:
		return formatter.NewCSVFormatter(w), nil
	case OutputSVG:
		return formatter.NewSVGFormatter(w, formatter.DefaultSVGConfig()), nil
	case OutputICS:
		return formatter.NewICSFormatter(w), nil
	case OutputSummary:
		return formatter.NewSummaryFormatter(w), nil
	}
	return nil, fmt.Errorf("invalid output format '%s': must be one of %s",
		format, strings.Join(OutputFormats(), ", "))
}
