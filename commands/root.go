package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/config"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/report"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/util"
)

var (
	// Logging related
	debug     bool
	logFormat string

	// Settings file
	configPath string

	// Job source
	jobsDir  string
	demoJobs bool

	// View and filtering
	view     string
	date     string
	staffIDs []string
	search   string

	// Output related
	outputFormat string
	timezone     string

	rootCmd = &cobra.Command{
		Use:   "norfolk-cleaners [flags]",
		Short: "Cleaning job schedule layout tool",
		Long: `norfolk-cleaners lays out cleaning jobs on a schedule without overlaps.

Jobs are read from JSON, YAML, CSV and ICS files in the jobs directory. Jobs
that overlap share the width of their slot in side-by-side lanes. Without a
jobs directory the built-in demo rota is used.

Examples:
  norfolk-cleaners --demo                              # Today's demo rota as a table
  norfolk-cleaners --jobs ./jobs --date 2026-02-25     # Lay out one day from job files
  norfolk-cleaners --view dispatch --output svg        # Staff rows as an SVG timeline
  norfolk-cleaners --view week --staff s1,s2           # Two staff members for the week
  norfolk-cleaners --view month --output json          # Month grid with overflow counts
  norfolk-cleaners --search "deep clean" -o csv        # Matching jobs as CSV`,
		RunE:         runReport,
		SilenceUsage: true,
	}
)

const (
	defaultLogFile = "~/.norfolk-cleaners/logs/app.log"
)

func init() {
	// Settings and job source
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath,
		"Settings file path")
	rootCmd.PersistentFlags().StringVar(&jobsDir, "jobs", "",
		"Jobs directory (defaults to jobs_dir from the settings file)")
	rootCmd.PersistentFlags().BoolVar(&demoJobs, "demo", false,
		"Use the built-in demo jobs")

	// View and filtering
	rootCmd.PersistentFlags().StringVar(&view, "view", "",
		"View mode (dispatch, day, week, 2week, month)")
	rootCmd.PersistentFlags().StringVar(&date, "date", "today",
		"Selected day (YYYY-MM-DD, today, tomorrow, yesterday)")
	rootCmd.PersistentFlags().StringSliceVar(&staffIDs, "staff", nil,
		"Only show these staff IDs (comma separated)")
	rootCmd.PersistentFlags().StringVar(&search, "search", "",
		"Only show jobs whose title or location contains this text")
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "",
		"Timezone override (e.g., Europe/London, UTC, Local)")

	// Output configuration
	rootCmd.Flags().StringVarP(&outputFormat, "output", "o", report.OutputTable,
		"Output format ("+strings.Join(report.OutputFormats(), ", ")+")")
	rootCmd.Flags().StringVar(&outputFormat, "format", "",
		"Alias for --output")

	// System and debugging
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false,
		"Enable debug mode")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", string(util.FormatText),
		"Log format (text, json)")
}

func runReport(cmd *cobra.Command, args []string) error {
	// Handle format alias
	if format := cmd.Flags().Lookup("format"); format != nil && format.Changed {
		outputFormat = format.Value.String()
	}

	settings, err := setup(cmd)
	if err != nil {
		return err
	}

	selected, err := util.GetTimeProvider().ParseDate(date)
	if err != nil {
		return err
	}

	viewName := view
	if viewName == "" {
		viewName = settings.DefaultView
	}

	dir, useDemo := jobSource(settings)
	cfg := &report.Config{
		JobsDir:      dir,
		Demo:         useDemo,
		OutputFormat: outputFormat,
		View:         viewName,
		Date:         selected,
		StaffIDs:     staffIDs,
		Query:        search,
		Concurrency:  runtime.NumCPU(),
		Settings:     settings,
	}

	// Create and run reporter
	r, err := report.New(cfg)
	if err != nil {
		return err
	}
	return r.Run(cmd.OutOrStdout())
}

// setup initializes logging, loads the settings file, applies flag
// overrides and sets the global timezone
func setup(cmd *cobra.Command) (*config.Config, error) {
	if logFormat != string(util.FormatText) && logFormat != string(util.FormatJSON) {
		return nil, fmt.Errorf("invalid log format '%s': must be either 'text' or 'json'", logFormat)
	}

	// Determine log level based on debug flag
	logLevel := "info"
	if debug {
		logLevel = "debug"
	}

	// Initialize logging
	logFile := expandPath(defaultLogFile)
	if err := ensureDir(filepath.Dir(logFile)); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	if err := util.InitLogger(util.LoggerOptions{
		Level:   logLevel,
		File:    logFile,
		Format:  util.LogFormat(logFormat),
		Console: debug,
	}); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	settings, err := config.Load(expandPath(configPath))
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if cmd.Flags().Changed("timezone") {
		settings.Timezone = timezone
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	if err := util.InitializeTimeProvider(settings.Timezone); err != nil {
		return nil, err
	}
	return settings, nil
}

// jobSource resolves the jobs directory. Demo jobs are used when asked
// for or when no directory is configured.
func jobSource(settings *config.Config) (string, bool) {
	if demoJobs {
		if jobsDir != "" {
			util.LogWarn("Both --demo and --jobs given, using demo jobs")
		}
		return "", true
	}
	dir := jobsDir
	if dir == "" {
		dir = settings.JobsDir
	}
	if dir == "" {
		util.LogInfo("No jobs directory configured, using demo jobs")
		return "", true
	}
	return expandPath(dir), false
}

func Execute() error {
	return rootCmd.Execute()
}

// Helper functions

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path[2:])
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return absPath
}

func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}
