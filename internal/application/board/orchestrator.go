package board

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/geometry"
	sched "github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/layout"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/model"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/nowline"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/presentation/display"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/presentation/interaction"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/report"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/util"
)

// Orchestrator coordinates all components of the board command
type Orchestrator struct {
	config *BoardConfig

	// Core components
	dataLoader   *DataLoader
	refreshCtrl  *RefreshController
	stateManager *StateManager
	clock        nowline.Clock

	// UI components
	display  DisplayController
	keyboard InputHandler

	// Background triggers
	indicator *nowline.Indicator
	nowTicks  chan nowline.Position
	scheduler *ReloadScheduler
	watcher   FileMonitor

	// roster is the row order of the last frame, used by the number keys
	roster []model.Staff
}

// NewOrchestrator creates a new Orchestrator drawing to out
func NewOrchestrator(config *BoardConfig, out io.Writer) (*Orchestrator, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	dataLoader, err := NewDataLoader(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create data loader: %w", err)
	}

	loc, err := config.Settings.Location()
	if err != nil {
		return nil, err
	}
	scheduler, err := NewReloadScheduler(config.Settings.RefreshCron, loc)
	if err != nil {
		return nil, err
	}

	clock := nowline.ClockFunc(func() time.Time { return util.GetTimeProvider().Now() })

	selected := make(map[string]bool, len(config.StaffIDs))
	for _, id := range config.StaffIDs {
		selected[id] = true
	}
	stateManager := NewStateManager(interaction.InteractionState{
		View:     config.View,
		Date:     config.Date,
		Selected: selected,
	})

	termDisplay := display.NewTerminalDisplay(out, &display.DisplayConfig{
		Timezone:   config.Settings.Timezone,
		TimeFormat: config.TimeFormat,
		Width:      config.Width,
		Height:     config.Height,
	})

	o := &Orchestrator{
		config:       config,
		dataLoader:   dataLoader,
		refreshCtrl:  NewRefreshController(dataLoader, config.Settings, config.Query, clock),
		stateManager: stateManager,
		clock:        clock,
		display:      termDisplay,
		scheduler:    scheduler,
		nowTicks:     make(chan nowline.Position, 1),
	}
	o.indicator = nowline.New(o.dayAxis(config.Date), clock)
	o.indicator.Interval = config.Settings.NowInterval
	return o, nil
}

// dayAxis is the dispatch axis of a day, used to place the now line
func (o *Orchestrator) dayAxis(day time.Time) geometry.Axis {
	settings := o.config.Settings
	return geometry.NewAxis(settings.Window(day), settings.HourWidthPx(), settings.MinLengthPx)
}

// Run starts the orchestrator main loop. It returns when ctx is cancelled
// or the user quits; every ticker and watcher is stopped on return.
func (o *Orchestrator) Run(ctx context.Context) error {
	util.LogInfo("Starting Norfolk Cleaners board...")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer o.Close()

	// Phase 1: Initialize keyboard
	keyboard, err := interaction.NewKeyboardReader()
	if err != nil {
		return fmt.Errorf("failed to initialize keyboard: %w", err)
	}
	o.keyboard = keyboard
	defer o.keyboard.Close()

	o.display.EnterAlternateScreen()
	defer o.display.ExitAlternateScreen()

	// Phase 2: Load jobs
	if err := o.Preload(); err != nil {
		return err
	}

	// Phase 3: Background triggers
	o.startWatcher()
	o.scheduler.Start()
	defer o.scheduler.Stop()
	go o.indicator.Run(ctx, o.onNowTick)

	o.updateDisplay()

	// Phase 4: Main event loop
	var fileEvents <-chan FileEvent
	if o.watcher != nil {
		fileEvents = o.watcher.Events()
	}
	var debounce <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			util.LogInfo("Shutting down board...")
			return nil

		case <-o.nowTicks:
			if !o.stateManager.GetInteractionState().IsPaused {
				o.updateDisplay()
			}

		case <-o.scheduler.Ticks():
			if !o.stateManager.GetInteractionState().IsPaused {
				util.LogDebugf("Scheduled reload, next at %s", o.scheduler.Next().Format(time.RFC3339))
				o.reload("Reloading jobs...")
			}

		case event, ok := <-fileEvents:
			if !ok {
				fileEvents = nil
				continue
			}
			util.LogDebugf("Job file changed: %s (%s)", event.Path, event.Operation)
			if debounce == nil {
				debounce = time.After(o.config.Debounce)
			}

		case <-debounce:
			debounce = nil
			if !o.stateManager.GetInteractionState().IsPaused {
				o.reload("Job files changed, reloading...")
			}

		case keyEvent := <-o.keyboard.Events():
			if o.handleKeyboard(keyEvent) {
				return nil
			}
			o.updateDisplay()
		}
	}
}

// Preload shows the loading screen and performs the first load
func (o *Orchestrator) Preload() error {
	o.stateManager.SetLoadingState(true, "Loading jobs...")
	o.updateDisplay()

	jobs, msg, err := o.refreshCtrl.Reload()
	if err != nil {
		o.stateManager.SetLoadingState(false, "")
		return fmt.Errorf("preload failed: %w", err)
	}
	util.LogInfo(msg)

	o.stateManager.SetJobs(jobs)
	o.stateManager.SetLoadingState(false, "")
	return nil
}

func (o *Orchestrator) onNowTick(pos nowline.Position) {
	select {
	case o.nowTicks <- pos:
	default:
	}
}

// updateDisplay lays out the current jobs and draws them
func (o *Orchestrator) updateDisplay() {
	isLoading, loadingMessage := o.stateManager.GetLoadingState()
	state := o.stateManager.GetInteractionState()
	state.IsLoading = isLoading
	state.LoadingMessage = loadingMessage

	if isLoading {
		o.display.RenderWithState(nil, state)
		return
	}

	jobs := o.stateManager.GetJobsForDisplay()
	o.roster = o.refreshCtrl.Roster(jobs, state)

	frame, err := o.refreshCtrl.BuildFrame(jobs, state)
	if err != nil {
		util.LogError(err.Error())
		state.StatusMessage = err.Error()
	}
	o.display.RenderWithState(frame, state)
}

// reload rescans the jobs directory, keeping the current jobs on failure
func (o *Orchestrator) reload(message string) {
	util.LogInfo(message)

	jobs, msg, err := o.refreshCtrl.Reload()
	if err != nil {
		util.LogErrorf("Failed to reload jobs: %v", err)
		o.setStatus(fmt.Sprintf("Reload failed: %v", err))
		o.updateDisplay()
		return
	}

	o.stateManager.SetJobs(jobs)
	o.setStatus(msg)
	o.updateDisplay()
}

func (o *Orchestrator) setStatus(message string) {
	o.stateManager.UpdateInteractionState(func(s *interaction.InteractionState) {
		s.StatusMessage = message
	})
}

// setView switches the view mode
func (o *Orchestrator) setView(view string) {
	o.stateManager.UpdateInteractionState(func(s *interaction.InteractionState) {
		s.View = view
		s.StatusMessage = ""
	})
}

// setDate moves to a day and re-anchors the now line on it
func (o *Orchestrator) setDate(day time.Time) {
	o.stateManager.UpdateInteractionState(func(s *interaction.InteractionState) {
		s.Date = day
		s.StatusMessage = ""
	})
	o.indicator.SetAxis(o.dayAxis(day))
}

func (o *Orchestrator) navigate(dir int) {
	state := o.stateManager.GetInteractionState()
	mode, err := sched.ParseViewMode(state.View)
	if err != nil {
		return
	}
	o.setDate(sched.Navigate(mode, state.Date, dir))
}

// toggleStaff shows or hides the nth staff row of the last frame
func (o *Orchestrator) toggleStaff(n int) {
	if n < 0 || n >= len(o.roster) {
		return
	}
	member := o.roster[n]
	o.stateManager.UpdateInteractionState(func(s *interaction.InteractionState) {
		if s.Selected == nil {
			s.Selected = make(map[string]bool)
		}
		if s.Selected[member.ID] {
			delete(s.Selected, member.ID)
			s.StatusMessage = "Hiding " + member.Name
			if len(s.Selected) == 0 {
				s.StatusMessage = "Showing all staff"
			}
		} else {
			s.Selected[member.ID] = true
			s.StatusMessage = "Showing " + member.Name
		}
	})
}

// handleKeyboard handles keyboard events, returning true to quit
func (o *Orchestrator) handleKeyboard(event interaction.KeyEvent) bool {
	state := o.stateManager.GetInteractionState()

	// Handle confirm dialog inputs first
	if state.ConfirmDialog != nil {
		switch {
		case event.Type == interaction.KeyChar && (event.Key == 'y' || event.Key == 'Y'):
			if state.ConfirmDialog.OnConfirm != nil {
				state.ConfirmDialog.OnConfirm()
			}
			o.display.ClearScreen()
		case event.Type == interaction.KeyEscape,
			event.Type == interaction.KeyChar && (event.Key == 'n' || event.Key == 'N'):
			if state.ConfirmDialog.OnCancel != nil {
				state.ConfirmDialog.OnCancel()
			}
			o.display.ClearScreen()
		}
		return false // Ignore other keys when dialog is open
	}

	switch event.Type {
	case interaction.KeyEscape:
		// If help is shown, close it; otherwise quit
		if state.ShowHelp {
			o.stateManager.UpdateInteractionState(func(s *interaction.InteractionState) {
				s.ShowHelp = false
			})
			return false
		}
		return true
	case interaction.KeyLeft:
		o.navigate(-1)
		return false
	case interaction.KeyRight:
		o.navigate(1)
		return false
	case interaction.KeyChar:
	default:
		return false
	}

	if event.IsQuit() {
		return true
	}

	switch key := event.Key; key {
	case 'd', 'D':
		o.setView(report.ViewDispatch)
	case 'g', 'G':
		o.setView(string(sched.ViewDay))
	case 'w', 'W':
		o.setView(string(sched.ViewWeek))
	case 'f', 'F':
		o.setView(string(sched.ViewFortnight))
	case 'm', 'M':
		o.setView(string(sched.ViewMonth))
	case '[':
		o.navigate(-1)
	case ']':
		o.navigate(1)
	case 't', 'T':
		o.setDate(sched.StartOfDay(o.clock.Now()))
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		o.toggleStaff(int(key - '1'))
	case 'a', 'A':
		o.stateManager.UpdateInteractionState(func(s *interaction.InteractionState) {
			s.Selected = nil
			s.StatusMessage = "Showing all staff"
		})
	case 's', 'S':
		o.stateManager.UpdateInteractionState(func(s *interaction.InteractionState) {
			s.Sort = s.Sort.Next()
			s.StatusMessage = "Sorted by " + s.Sort.String()
		})
	case 'l', 'L':
		// Cycle through layout styles
		o.stateManager.UpdateInteractionState(func(s *interaction.InteractionState) {
			s.LayoutStyle = (s.LayoutStyle + 1) % 2
		})
	case 'r', 'R':
		o.reload("Reloading jobs...")
	case 'c', 'C':
		o.confirmReset()
	case 'p', 'P':
		o.stateManager.UpdateInteractionState(func(s *interaction.InteractionState) {
			s.IsPaused = !s.IsPaused
		})
	case 'h', 'H':
		o.stateManager.UpdateInteractionState(func(s *interaction.InteractionState) {
			s.ShowHelp = !s.ShowHelp
		})
	}
	return false
}

// confirmReset asks before dropping the job cache
func (o *Orchestrator) confirmReset() {
	closeDialog := func() {
		o.stateManager.UpdateInteractionState(func(s *interaction.InteractionState) {
			s.ConfirmDialog = nil
		})
	}

	o.stateManager.UpdateInteractionState(func(s *interaction.InteractionState) {
		s.ConfirmDialog = &interaction.ConfirmDialog{
			Title:   "Clear Job Cache",
			Message: "This will drop every cached job and parse all job files again. Continue?",
			OnConfirm: func() {
				closeDialog()
				o.stateManager.SetLoadingState(true, "Clearing job cache...")
				o.updateDisplay()

				jobs, msg, err := o.refreshCtrl.Reset()
				o.stateManager.SetLoadingState(false, "")
				if err != nil {
					util.LogErrorf("Failed to reset job cache: %v", err)
					o.setStatus(fmt.Sprintf("Reset failed: %v", err))
					return
				}
				o.stateManager.SetJobs(jobs)
				o.setStatus(msg)
				util.LogInfo("Job cache cleared and jobs reloaded")
			},
			OnCancel: closeDialog,
		}
	})
}

// startWatcher watches the jobs directory; a missing directory only
// disables live updates
func (o *Orchestrator) startWatcher() {
	if o.dataLoader.Demo() {
		return
	}
	watcher, err := NewFileWatcher(o.dataLoader.Dir(), o.dataLoader.Matches)
	if err != nil {
		util.LogWarnf("Not watching %s: %v", o.dataLoader.Dir(), err)
		return
	}
	o.watcher = watcher
}

// Close cleans up all resources
func (o *Orchestrator) Close() error {
	if o.watcher != nil {
		if err := o.watcher.Close(); err != nil {
			return fmt.Errorf("failed to close file watcher: %w", err)
		}
		o.watcher = nil
	}
	return nil
}
