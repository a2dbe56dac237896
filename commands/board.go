package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/application/board"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/util"
)

var (
	// Display related flags
	boardTimeFormat string

	// Reload related flags
	boardRefresh  string
	boardDebounce time.Duration
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Live dispatch board in the terminal",
	Long: `Shows the day's jobs as one row per staff member, with overlapping jobs
in separate lanes and a marker at the current time.

The board redraws when the current-time marker moves, when a job file
changes, and on the refresh schedule from the settings file.

Keys:
  d g w f m    dispatch, day, week, fortnight, month
  [ ] ← →      previous / next range, t for today
  1-9 a        toggle a staff row, a shows everyone
  s l          sort rows, compact layout
  r c p        reload, clear the job cache, pause
  h q          help, quit`,
	RunE: runBoard,
}

func init() {
	rootCmd.AddCommand(boardCmd)

	// Display flags
	boardCmd.Flags().StringVar(&boardTimeFormat, "time-format", "24h",
		"Time format (12h or 24h)")

	// Reload flags
	boardCmd.Flags().StringVar(&boardRefresh, "refresh", "",
		"Reload schedule in cron format (defaults to refresh from the config file)")
	boardCmd.Flags().DurationVar(&boardDebounce, "debounce", 250*time.Millisecond,
		"Wait this long after a job file changes before reloading")
}

func runBoard(cmd *cobra.Command, args []string) error {
	// Validate time format
	if boardTimeFormat != "12h" && boardTimeFormat != "24h" {
		return fmt.Errorf("invalid time format '%s': must be either '12h' or '24h'", boardTimeFormat)
	}

	settings, err := setup(cmd)
	if err != nil {
		return err
	}
	if boardRefresh != "" {
		settings.RefreshCron = boardRefresh
	}

	selected, err := util.GetTimeProvider().ParseDate(date)
	if err != nil {
		return err
	}

	dir, useDemo := jobSource(settings)
	config := &board.BoardConfig{
		JobsDir:     dir,
		Demo:        useDemo,
		View:        view,
		Date:        selected,
		StaffIDs:    staffIDs,
		Query:       search,
		TimeFormat:  boardTimeFormat,
		Debounce:    boardDebounce,
		Concurrency: runtime.NumCPU(),
		Settings:    settings,
	}

	orchestrator, err := board.NewOrchestrator(config, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	// Set up signal handling
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return orchestrator.Run(ctx)
}
