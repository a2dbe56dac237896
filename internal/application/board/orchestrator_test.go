package board

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/presentation/interaction"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/report"
	"github.com/Arcscribe-Web-Solutions/norfolk-cleaners/internal/util"
)

func newTestOrchestrator(t *testing.T) (*Orchestrator, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	o, err := NewOrchestrator(&BoardConfig{
		Date:     day,
		Width:    100,
		Height:   30,
		Settings: utcSettings(),
	}, &out)
	require.NoError(t, err)

	clock := util.NewFixedTimeProvider(at(10, 15), time.UTC)
	o.clock = clock
	o.refreshCtrl.clock = clock
	o.indicator.Clock = clock

	require.NoError(t, o.Preload())
	o.updateDisplay()
	return o, &out
}

func char(r rune) interaction.KeyEvent {
	return interaction.KeyEvent{Key: r, Type: interaction.KeyChar}
}

func TestOrchestratorPreload(t *testing.T) {
	o, out := newTestOrchestrator(t)

	assert.Len(t, o.stateManager.GetJobs(), 10)
	assert.Len(t, o.roster, 5)
	assert.Contains(t, out.String(), "NORFOLK CLEANERS")
	assert.Contains(t, out.String(), "Harvey Washington")
	require.NoError(t, o.Close())
}

func TestOrchestratorHandleKeyboard(t *testing.T) {
	tests := []struct {
		name     string
		keys     []interaction.KeyEvent
		wantQuit bool
		check    func(t *testing.T, state interaction.InteractionState)
	}{
		{
			name:     "q quits",
			keys:     []interaction.KeyEvent{char('q')},
			wantQuit: true,
		},
		{
			name:     "ctrl+c quits",
			keys:     []interaction.KeyEvent{char(3)},
			wantQuit: true,
		},
		{
			name:     "escape quits",
			keys:     []interaction.KeyEvent{{Type: interaction.KeyEscape}},
			wantQuit: true,
		},
		{
			name: "escape closes help",
			keys: []interaction.KeyEvent{char('h'), {Type: interaction.KeyEscape}},
			check: func(t *testing.T, state interaction.InteractionState) {
				assert.False(t, state.ShowHelp)
			},
		},
		{
			name: "help toggles",
			keys: []interaction.KeyEvent{char('h')},
			check: func(t *testing.T, state interaction.InteractionState) {
				assert.True(t, state.ShowHelp)
			},
		},
		{
			name: "view keys",
			keys: []interaction.KeyEvent{char('w')},
			check: func(t *testing.T, state interaction.InteractionState) {
				assert.Equal(t, "week", state.View)
			},
		},
		{
			name: "fortnight then month then dispatch",
			keys: []interaction.KeyEvent{char('f'), char('m'), char('d')},
			check: func(t *testing.T, state interaction.InteractionState) {
				assert.Equal(t, report.ViewDispatch, state.View)
			},
		},
		{
			name: "day view",
			keys: []interaction.KeyEvent{char('g')},
			check: func(t *testing.T, state interaction.InteractionState) {
				assert.Equal(t, "day", state.View)
			},
		},
		{
			name: "next day",
			keys: []interaction.KeyEvent{char(']')},
			check: func(t *testing.T, state interaction.InteractionState) {
				assert.Equal(t, day.AddDate(0, 0, 1), state.Date)
			},
		},
		{
			name: "arrow keys step a week in week view",
			keys: []interaction.KeyEvent{char('w'), {Type: interaction.KeyLeft}, {Type: interaction.KeyLeft}, {Type: interaction.KeyRight}},
			check: func(t *testing.T, state interaction.InteractionState) {
				assert.Equal(t, day.AddDate(0, 0, -7), state.Date)
			},
		},
		{
			name: "today",
			keys: []interaction.KeyEvent{char('['), char('['), char('t')},
			check: func(t *testing.T, state interaction.InteractionState) {
				assert.Equal(t, day, state.Date)
			},
		},
		{
			name: "number toggles staff",
			keys: []interaction.KeyEvent{char('2'), char('3'), char('3')},
			check: func(t *testing.T, state interaction.InteractionState) {
				assert.Equal(t, map[string]bool{"s2": true}, state.Selected)
				assert.Equal(t, "Hiding James Cole", state.StatusMessage)
			},
		},
		{
			name: "number past roster is ignored",
			keys: []interaction.KeyEvent{char('9')},
			check: func(t *testing.T, state interaction.InteractionState) {
				assert.Empty(t, state.Selected)
			},
		},
		{
			name: "a shows all staff",
			keys: []interaction.KeyEvent{char('1'), char('a')},
			check: func(t *testing.T, state interaction.InteractionState) {
				assert.Empty(t, state.Selected)
				assert.Equal(t, "Showing all staff", state.StatusMessage)
			},
		},
		{
			name: "sort cycles",
			keys: []interaction.KeyEvent{char('s')},
			check: func(t *testing.T, state interaction.InteractionState) {
				assert.Equal(t, interaction.SortByName, state.Sort)
				assert.Equal(t, "Sorted by name", state.StatusMessage)
			},
		},
		{
			name: "layout toggles",
			keys: []interaction.KeyEvent{char('l')},
			check: func(t *testing.T, state interaction.InteractionState) {
				assert.Equal(t, 1, state.LayoutStyle)
			},
		},
		{
			name: "pause toggles",
			keys: []interaction.KeyEvent{char('p'), char('p'), char('p')},
			check: func(t *testing.T, state interaction.InteractionState) {
				assert.True(t, state.IsPaused)
			},
		},
		{
			name: "reload",
			keys: []interaction.KeyEvent{char('r')},
			check: func(t *testing.T, state interaction.InteractionState) {
				assert.Equal(t, "Jobs reloaded", state.StatusMessage)
			},
		},
		{
			name: "clear cache asks first",
			keys: []interaction.KeyEvent{char('c')},
			check: func(t *testing.T, state interaction.InteractionState) {
				require.NotNil(t, state.ConfirmDialog)
				assert.Equal(t, "Clear Job Cache", state.ConfirmDialog.Title)
			},
		},
		{
			name: "dialog ignores other keys",
			keys: []interaction.KeyEvent{char('c'), char('q'), char('w')},
			check: func(t *testing.T, state interaction.InteractionState) {
				assert.NotNil(t, state.ConfirmDialog)
				assert.Equal(t, report.ViewDispatch, state.View)
			},
		},
		{
			name: "dialog cancelled",
			keys: []interaction.KeyEvent{char('c'), char('n')},
			check: func(t *testing.T, state interaction.InteractionState) {
				assert.Nil(t, state.ConfirmDialog)
			},
		},
		{
			name: "dialog cancelled with escape",
			keys: []interaction.KeyEvent{char('c'), {Type: interaction.KeyEscape}},
			check: func(t *testing.T, state interaction.InteractionState) {
				assert.Nil(t, state.ConfirmDialog)
			},
		},
		{
			name: "dialog confirmed",
			keys: []interaction.KeyEvent{char('c'), char('y')},
			check: func(t *testing.T, state interaction.InteractionState) {
				assert.Nil(t, state.ConfirmDialog)
				assert.Equal(t, "Jobs reloaded", state.StatusMessage)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, _ := newTestOrchestrator(t)

			quit := false
			for _, key := range tt.keys {
				quit = o.handleKeyboard(key)
				o.updateDisplay()
			}

			assert.Equal(t, tt.wantQuit, quit)
			if tt.check != nil {
				tt.check(t, o.stateManager.GetInteractionState())
			}
		})
	}
}

func TestOrchestratorSetDateMovesNowLine(t *testing.T) {
	o, _ := newTestOrchestrator(t)

	assert.True(t, o.indicator.Compute().Visible)

	o.handleKeyboard(char(']'))
	assert.False(t, o.indicator.Compute().Visible)

	o.handleKeyboard(char('t'))
	assert.True(t, o.indicator.Compute().Visible)
}
