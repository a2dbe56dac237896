package board

import (
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/model"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/presentation/formatter"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/presentation/interaction"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/report"
)

// JobSource manages job loading and caching
type JobSource interface {
	// Reload rescans the source, reparsing only changed files
	Reload() (*report.LoadStats, error)
	// Reset drops every cached job and parses all files again
	Reset() (*report.LoadStats, error)
	// Jobs returns the loaded jobs
	Jobs() []model.Job
	// Staff returns the roster in row order
	Staff() []model.Staff
}

// DisplayController handles terminal display operations
type DisplayController interface {
	EnterAlternateScreen()
	ExitAlternateScreen()
	ClearScreen()
	// RenderWithState draws a frame; a nil report shows the loading screen
	RenderWithState(report *formatter.Report, state interaction.InteractionState)
}

// StateStore manages board state
type StateStore interface {
	SetJobs(jobs []model.Job)
	GetJobsForDisplay() []model.Job
	GetLoadingState() (bool, string)
	SetLoadingState(isLoading bool, message string)
	GetInteractionState() interaction.InteractionState
	UpdateInteractionState(updateFunc func(*interaction.InteractionState))
}

// InputHandler processes keyboard input events
type InputHandler interface {
	Events() <-chan interaction.KeyEvent
	Close() error
}

// FileMonitor watches the jobs directory
type FileMonitor interface {
	Events() <-chan FileEvent
	Close() error
}
