package board

import (
	"sync"
	"time"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/core/model"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/presentation/interaction"
)

// StateManager manages board state in a thread-safe manner
type StateManager struct {
	mu sync.RWMutex

	jobs         []model.Job
	previousJobs []model.Job // Keep previous jobs on screen during a reload

	isLoading      bool
	loadingMessage string

	interactionState interaction.InteractionState

	lastDataUpdate time.Time
}

// NewStateManager creates a new StateManager starting from the given view
func NewStateManager(initial interaction.InteractionState) *StateManager {
	return &StateManager{
		jobs:             make([]model.Job, 0),
		previousJobs:     make([]model.Job, 0),
		interactionState: initial,
	}
}

// GetJobs returns the current jobs
func (sm *StateManager) GetJobs() []model.Job {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return cloneJobs(sm.jobs)
}

// SetJobs replaces the current jobs, keeping the old set as previous
func (sm *StateManager) SetJobs(jobs []model.Job) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if len(sm.jobs) > 0 {
		sm.previousJobs = cloneJobs(sm.jobs)
	}
	sm.jobs = jobs
	sm.lastDataUpdate = time.Now()
}

// GetJobsForDisplay returns the previous jobs while a reload is running
// and nothing has been loaded yet
func (sm *StateManager) GetJobsForDisplay() []model.Job {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if sm.isLoading && len(sm.jobs) == 0 && len(sm.previousJobs) > 0 {
		return cloneJobs(sm.previousJobs)
	}
	return cloneJobs(sm.jobs)
}

func (sm *StateManager) GetLoadingState() (bool, string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.isLoading, sm.loadingMessage
}

func (sm *StateManager) SetLoadingState(isLoading bool, message string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.isLoading = isLoading
	sm.loadingMessage = message
}

// GetInteractionState returns a copy of the interaction state
func (sm *StateManager) GetInteractionState() interaction.InteractionState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	state := sm.interactionState
	if sm.interactionState.Selected != nil {
		state.Selected = make(map[string]bool, len(sm.interactionState.Selected))
		for id, on := range sm.interactionState.Selected {
			state.Selected[id] = on
		}
	}
	return state
}

// UpdateInteractionState updates specific fields of interaction state
func (sm *StateManager) UpdateInteractionState(updateFunc func(*interaction.InteractionState)) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	updateFunc(&sm.interactionState)
}

// GetLastDataUpdate returns when jobs were last replaced
func (sm *StateManager) GetLastDataUpdate() time.Time {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.lastDataUpdate
}

func cloneJobs(jobs []model.Job) []model.Job {
	out := make([]model.Job, len(jobs))
	copy(out, jobs)
	return out
}
